package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// GraphOverlay marks nodes to highlight on the rendered graph.
type GraphOverlay struct {
	// Finals are the question nodes routed into submission.
	Finals []string
	// Current is a single node to emphasize.
	Current string
}

// GenerateMermaid produces a Mermaid flowchart of a compiled workflow.
// It applies semantic styling:
// - Start: ((Circle))
// - Tool: [[Subroutine]]
// - Question: [/Parallelogram/]
// - Default: [Rectangle]
// Edges into the decline path are dotted. Overlay styles are applied if provided.
func GenerateMermaid(wf *domain.Workflow, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range wf.Nodes {
		safeID := sanitizeMermaidID(node.Name)

		opener, closer := "[", "]"
		switch {
		case node.IsStart:
			opener, closer = "((", "))"
		case node.Type == domain.NodeTypeTool:
			opener, closer = "[[", "]]"
		case node.Role() == domain.RoleQuestion:
			opener, closer = "[/", "/]"
		}

		label := node.Name
		if node.Role() == domain.RoleQuestion && node.Metadata[domain.MetaCriteria] != "" {
			label = fmt.Sprintf("%s <br/> %s", node.Name, node.Metadata[domain.MetaCriteria])
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer))
	}

	for _, e := range wf.Edges {
		dotted := e.To == domain.NodeDeclineConversation || e.To == domain.NodeDeclineHangup

		arrow := "-->"
		if dotted {
			arrow = "-.->"
		}
		if e.Condition != "" {
			cond := escapeLabel(e.Condition)
			arrow = fmt.Sprintf("-- \"%s\" -->", cond)
			if dotted {
				arrow = fmt.Sprintf("-. \"%s\" .->", cond)
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(e.From), arrow, sanitizeMermaidID(e.To)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef final fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Finals {
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s final;\n", safeID))
			}
		}

		if overlay.Current != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Current)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	// "end" is a reserved word in Mermaid flowcharts.
	if s == "end" {
		s = "end_"
	}
	return s
}

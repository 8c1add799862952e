package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Describe renders a markdown summary of a compiled workflow: call settings,
// the question nodes with their captured variable, and the edge table.
func Describe(wf *domain.Workflow) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", wf.Name)

	sb.WriteString("| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Nodes | %d |\n", len(wf.Nodes))
	fmt.Fprintf(&sb, "| Edges | %d |\n", len(wf.Edges))
	fmt.Fprintf(&sb, "| Max duration | %ds |\n", wf.MaxDurationSeconds)
	fmt.Fprintf(&sb, "| Language | %s |\n", wf.Transcriber.Language)
	fmt.Fprintf(&sb, "| Voice | %s/%s |\n", wf.Voice.Provider, wf.Voice.VoiceID)
	fmt.Fprintf(&sb, "| Model | %s/%s |\n", wf.Model.Provider, wf.Model.Model)

	questions := wf.QuestionNodes()
	sb.WriteString("\n## Questions\n\n")
	if len(questions) == 0 {
		sb.WriteString("_No questions._\n")
	}
	for i, n := range questions {
		fmt.Fprintf(&sb, "%d. **%s** (`%s`, %s)", i+1, n.Metadata[domain.MetaQuestionID], n.Name, n.Metadata[domain.MetaCriteria])
		if n.Extraction != nil && len(n.Extraction.Output) > 0 && len(n.Extraction.Output[0].Enum) > 0 {
			fmt.Fprintf(&sb, ": %s", strings.Join(n.Extraction.Output[0].Enum, " / "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n## Edges\n\n| From | To | Condition |\n|---|---|---|\n")
	for _, e := range wf.Edges {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", e.From, e.To, strings.ReplaceAll(e.Condition, "|", "\\|"))
	}

	return sb.String()
}

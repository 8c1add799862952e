package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Issue is a single problem found in a compiled workflow.
type Issue struct {
	Node    string `json:"node,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Node == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Node, i.Message)
}

// Diagnose inspects a compiled workflow and lists every structural problem:
// duplicate or missing node names, start node count, dangling edges, duplicate edge
// triples, question nodes reaching the end without submitting, and nodes the crawler
// cannot reach from the start node.
func Diagnose(wf *domain.Workflow) []Issue {
	var issues []Issue

	nodes := make(map[string]domain.Node, len(wf.Nodes))
	var starts []string
	for _, n := range wf.Nodes {
		if n.Name == "" {
			issues = append(issues, Issue{Message: "node without a name"})
			continue
		}
		if _, dup := nodes[n.Name]; dup {
			issues = append(issues, Issue{Node: n.Name, Message: "duplicate node name"})
			continue
		}
		nodes[n.Name] = n
		if n.IsStart {
			starts = append(starts, n.Name)
		}
	}

	switch len(starts) {
	case 0:
		issues = append(issues, Issue{Message: "no start node"})
	case 1:
	default:
		issues = append(issues, Issue{Message: fmt.Sprintf("multiple start nodes: %s", strings.Join(starts, ", "))})
	}

	for _, name := range []string{domain.NodeSubmission, domain.NodeEnd} {
		if _, ok := nodes[name]; !ok {
			issues = append(issues, Issue{Node: name, Message: "missing structural node"})
		}
	}

	seen := make(map[domain.Edge]bool, len(wf.Edges))
	adjacency := make(map[string][]string)
	for _, e := range wf.Edges {
		if seen[e] {
			issues = append(issues, Issue{Node: e.From, Message: fmt.Sprintf("duplicate edge to %s (%q)", e.To, e.Condition)})
			continue
		}
		seen[e] = true

		if _, ok := nodes[e.From]; !ok {
			issues = append(issues, Issue{Node: e.From, Message: "edge from unknown node"})
		}
		if _, ok := nodes[e.To]; !ok {
			issues = append(issues, Issue{Node: e.From, Message: fmt.Sprintf("edge to unknown node %s", e.To)})
		}
		if strings.TrimSpace(e.Condition) == "" {
			issues = append(issues, Issue{Node: e.From, Message: fmt.Sprintf("edge to %s has no condition", e.To)})
		}
		if e.To == domain.NodeEnd && nodes[e.From].Role() == domain.RoleQuestion {
			issues = append(issues, Issue{Node: e.From, Message: "question reaches the end without submitting answers"})
		}
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	if len(starts) > 0 {
		visited := crawl(starts[0], adjacency)
		for _, n := range wf.Nodes {
			if n.Name != "" && !visited[n.Name] {
				issues = append(issues, Issue{Node: n.Name, Message: "unreachable from start"})
			}
		}
	}

	return issues
}

// crawl visits every node reachable from start, breadth first.
func crawl(start string, adjacency map[string][]string) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range adjacency[current] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	return visited
}

// ValidateWorkflow returns an error listing every issue Diagnose finds, or nil.
func ValidateWorkflow(wf *domain.Workflow) error {
	issues := Diagnose(wf)
	if len(issues) == 0 {
		return nil
	}

	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(issues), strings.Join(lines, "\n- "))
}

package compiler

import "github.com/aretw0/surveyflow/pkg/domain"

// Finalize guarantees that every final question reaches the end only through submission.
//
// Every edge from a final node to end is redirected to submission, keeping its condition.
// A final node left without any edge to submission gets one guarded by answered.
// Duplicate triples are collapsed. The input slice is not modified and running Finalize
// on its own output returns an identical edge list.
func Finalize(edges []domain.Edge, finals []string, submission, end, answered string) []domain.Edge {
	isFinal := make(map[string]bool, len(finals))
	for _, f := range finals {
		isFinal[f] = true
	}

	out := make([]domain.Edge, 0, len(edges)+len(finals))
	seen := make(map[domain.Edge]struct{}, len(edges))
	submits := make(map[string]bool, len(finals))

	push := func(e domain.Edge) {
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		if e.To == submission {
			submits[e.From] = true
		}
		out = append(out, e)
	}

	for _, e := range edges {
		if isFinal[e.From] && e.To == end {
			e.To = submission
		}
		push(e)
	}

	for _, f := range finals {
		if !submits[f] {
			push(domain.Edge{From: f, To: submission, Condition: answered})
		}
	}

	return out
}

package compiler

import "github.com/aretw0/surveyflow/pkg/domain"

func open(id string, order int) domain.Question {
	return domain.Question{ID: id, Text: "Tell me about " + id, Criteria: domain.CriteriaOpen, Order: order}
}

func categorical(id string, order int, categories ...string) domain.Question {
	return domain.Question{ID: id, Text: "Pick one for " + id, Criteria: domain.CriteriaCategorical, Categories: categories, Order: order}
}

func scale(id string, order, max int) domain.Question {
	return domain.Question{ID: id, Text: "Rate " + id, Criteria: domain.CriteriaScale, ScaleMax: max, Order: order}
}

func child(q domain.Question, parent string, trigger ...string) domain.Question {
	q.ParentID = parent
	q.TriggerCategoryTexts = trigger
	return q
}

// threeQuestions is the reference survey: an open question, a categorical Good/Bad
// question, and an open follow-up asked only on Bad.
func threeQuestions() []domain.Question {
	return []domain.Question{
		open("q1", 1),
		categorical("q2", 2, "Good", "Bad"),
		child(open("q3", 3), "q2", "Bad"),
	}
}

func edge(from, to, condition string) domain.Edge {
	return domain.Edge{From: from, To: to, Condition: condition}
}

func hasEdge(edges []domain.Edge, from, to string) bool {
	for _, e := range edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

func edgesBetween(edges []domain.Edge, from, to string) []domain.Edge {
	var out []domain.Edge
	for _, e := range edges {
		if e.From == from && e.To == to {
			out = append(out, e)
		}
	}
	return out
}

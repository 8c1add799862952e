package domain

// Edge is a directed, condition-guarded transition between two nodes.
// The Condition is a natural-language predicate evaluated by the downstream engine;
// the compiler never evaluates it.
//
// Edges are comparable: two edges are the same edge when From, To and Condition match.
type Edge struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Condition string `json:"condition"`
}

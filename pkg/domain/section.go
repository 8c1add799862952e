package domain

// Section is a grouping produced by the section grouper.
// It is either a RegularSection or a ConditionalSection.
type Section interface {
	// Members returns every question index owned by the section.
	Members() []int
	isSection()
}

// RegularSection wraps a single unconditional question with no children.
type RegularSection struct {
	Question int
}

// ConditionalSection wraps a parent question and the children asked when the parent's
// answer falls in Trigger. Several sections may share the same parent.
//
// Skip lists the parent categories that trigger none of the parent's sections: the
// parent's categories minus the union of every sibling section's Trigger. It is empty for
// an unconditional section.
type ConditionalSection struct {
	Parent   int
	Trigger  []string
	Skip     []string
	Children []int
}

func (RegularSection) isSection()     {}
func (ConditionalSection) isSection() {}

// Members returns the wrapped question index.
func (s RegularSection) Members() []int {
	return []int{s.Question}
}

// Members returns the parent followed by the children.
func (s ConditionalSection) Members() []int {
	out := make([]int, 0, len(s.Children)+1)
	out = append(out, s.Parent)
	return append(out, s.Children...)
}

// Unconditional reports whether the children are asked regardless of the parent's answer.
func (s ConditionalSection) Unconditional() bool {
	return len(s.Trigger) == 0
}

package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Plan is the grouped view of one compilation. It is computed once and shared by the
// node synthesizer, the edge router and the finalizer.
type Plan struct {
	Questions []domain.Question
	Sections  []domain.Section

	names   []string
	nested  []bool
	parents map[int]bool
}

// NewPlan orders the questions by Order (stable), groups them and names their nodes.
// The input slice is not modified.
func NewPlan(questions []domain.Question) *Plan {
	ordered := append([]domain.Question(nil), questions...)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Order < ordered[b].Order
	})

	p := &Plan{
		Questions: ordered,
		Sections:  Group(ordered),
		names:     make([]string, len(ordered)),
		nested:    nestedFlags(ordered),
		parents:   make(map[int]bool),
	}
	for i, q := range ordered {
		p.names[i] = QuestionNodeName(i, q.ID)
	}
	for _, s := range p.Sections {
		if c, ok := s.(domain.ConditionalSection); ok {
			p.parents[c.Parent] = true
		}
	}
	return p
}

// NodeName returns the node name of the question at index i.
func (p *Plan) NodeName(i int) string {
	return p.names[i]
}

// IsChild reports whether the question at index i hangs under a parent of this plan.
// Orphans are not children.
func (p *Plan) IsChild(i int) bool {
	return p.nested[i]
}

// IsParent reports whether the question at index i heads a conditional section.
func (p *Plan) IsParent(i int) bool {
	return p.parents[i]
}

// FindNext returns the node that follows question i: the first later question that is
// not a child, or the end node when none remain.
func (p *Plan) FindNext(i int) string {
	for j := i + 1; j < len(p.Questions); j++ {
		if p.nested[j] {
			continue
		}
		return p.names[j]
	}
	return domain.NodeEnd
}

// Convergence returns the node a conditional section flows into once it is done or skipped:
// the first non-child question past every index the section uses.
func (p *Plan) Convergence(s domain.ConditionalSection) string {
	last := s.Parent
	for _, m := range s.Members() {
		if m > last {
			last = m
		}
	}
	return p.FindNext(last)
}

// First returns the node the survey starts with, or "" when there is no top-level question.
func (p *Plan) First() string {
	if next := p.FindNext(-1); next != domain.NodeEnd {
		return next
	}
	return ""
}

// Finals returns the question nodes whose answered continuation would be the end node:
// regular questions with nothing after them, parents whose skip path reaches the end, and
// the last child of sections converging on the end.
func (p *Plan) Finals() []string {
	var finals []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			finals = append(finals, name)
		}
	}

	for _, s := range p.Sections {
		switch s := s.(type) {
		case domain.RegularSection:
			if p.FindNext(s.Question) == domain.NodeEnd {
				add(p.names[s.Question])
			}
		case domain.ConditionalSection:
			if p.Convergence(s) != domain.NodeEnd {
				continue
			}
			if len(s.Skip) > 0 {
				add(p.names[s.Parent])
			}
			add(p.names[s.Children[len(s.Children)-1]])
		}
	}
	return finals
}

// QuestionNodeName derives the node name of a question from its position and id.
func QuestionNodeName(index int, id string) string {
	return fmt.Sprintf("question_%d_%s", index+1, sanitizeName(id))
}

const maxNameSuffix = 40

func sanitizeName(id string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	s := strings.Trim(sb.String(), "_")
	if len(s) > maxNameSuffix {
		s = s[:maxNameSuffix]
	}
	return s
}

package compiler

import (
	"github.com/aretw0/surveyflow/pkg/domain"
)

// edgeSet accumulates edges in insertion order without duplicates.
type edgeSet struct {
	edges []domain.Edge
	seen  map[domain.Edge]struct{}
	pairs map[[2]string]struct{}
}

func newEdgeSet() *edgeSet {
	return &edgeSet{
		seen:  make(map[domain.Edge]struct{}),
		pairs: make(map[[2]string]struct{}),
	}
}

// add appends e unless the same (from, to, condition) triple is already present.
func (s *edgeSet) add(e domain.Edge) bool {
	if _, ok := s.seen[e]; ok {
		return false
	}
	s.seen[e] = struct{}{}
	s.pairs[[2]string{e.From, e.To}] = struct{}{}
	s.edges = append(s.edges, e)
	return true
}

// addPair appends e unless any edge already connects the same two nodes.
func (s *edgeSet) addPair(e domain.Edge) bool {
	if _, ok := s.pairs[[2]string{e.From, e.To}]; ok {
		return false
	}
	return s.add(e)
}

// Route wires the nodes of a plan together.
//
// It emits the fixed scaffolding, a forward edge for every regular section, the
// trigger/chain/convergence/skip edges of every conditional section, and finally a
// sequential pass over top-level questions that only fills in missing connections.
// Edges towards the end node are left in place; Finalize redirects them.
func Route(p *Plan, c Conditions) []domain.Edge {
	set := newEdgeSet()

	set.add(domain.Edge{From: domain.NodeEntry, To: domain.NodeOpening, Condition: c.IdentityConfirmed})
	set.add(domain.Edge{From: domain.NodeOpening, To: domain.NodeDeclineConversation, Condition: c.Declined})
	set.add(domain.Edge{From: domain.NodeDeclineConversation, To: domain.NodeDeclineHangup, Condition: c.WrapUpDone})

	if first := p.First(); first != "" {
		set.add(domain.Edge{From: domain.NodeOpening, To: first, Condition: c.Agreed})
	} else {
		set.add(domain.Edge{From: domain.NodeOpening, To: domain.NodeSubmission, Condition: c.Agreed})
	}

	for _, s := range p.Sections {
		switch s := s.(type) {
		case domain.RegularSection:
			set.add(domain.Edge{
				From:      p.NodeName(s.Question),
				To:        p.FindNext(s.Question),
				Condition: c.Answered,
			})
		case domain.ConditionalSection:
			routeSection(set, p, s, c)
		}
	}

	// Sequential pass: parents route by category and children are wired by their section.
	for i := range p.Questions {
		if p.IsChild(i) || p.IsParent(i) {
			continue
		}
		set.addPair(domain.Edge{From: p.NodeName(i), To: p.FindNext(i), Condition: c.Answered})
	}

	set.add(domain.Edge{From: domain.NodeSubmission, To: domain.NodeEnd, Condition: c.Submitted})

	return set.edges
}

func routeSection(set *edgeSet, p *Plan, s domain.ConditionalSection, c Conditions) {
	parent := p.NodeName(s.Parent)
	target := p.Convergence(s)

	entry := c.Answered
	if !s.Unconditional() {
		entry = c.MatchAny(s.Trigger)
	}
	set.add(domain.Edge{From: parent, To: p.NodeName(s.Children[0]), Condition: entry})

	for k := 0; k+1 < len(s.Children); k++ {
		set.add(domain.Edge{
			From:      p.NodeName(s.Children[k]),
			To:        p.NodeName(s.Children[k+1]),
			Condition: c.Answered,
		})
	}

	last := s.Children[len(s.Children)-1]
	set.add(domain.Edge{From: p.NodeName(last), To: target, Condition: c.Answered})

	if len(s.Skip) > 0 {
		set.add(domain.Edge{From: parent, To: target, Condition: c.MatchAny(s.Skip)})
	}
}

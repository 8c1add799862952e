package compiler

import (
	"sort"
	"strings"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Group partitions an ordered question list into sections.
//
// Output order follows the first appearance of each regular or parent question. A parent's
// children are grouped by their trigger-category list (groups in first-encounter order,
// children within a group sorted by Order) and each group becomes one ConditionalSection.
// A question whose parent id names no other question in the list is an orphan and is
// grouped as a regular question. Only one level of nesting is recognised: a question whose
// parent is itself a child is not placed in any section.
func Group(questions []domain.Question) []domain.Section {
	nested := nestedFlags(questions)
	children := make(map[string][]int)
	for i, q := range questions {
		if nested[i] {
			children[q.ParentID] = append(children[q.ParentID], i)
		}
	}

	processed := make([]bool, len(questions))
	var sections []domain.Section

	for i, q := range questions {
		if processed[i] || nested[i] {
			continue
		}
		processed[i] = true

		kids := children[q.ID]
		if len(kids) == 0 {
			sections = append(sections, domain.RegularSection{Question: i})
			continue
		}

		groups := groupByTrigger(questions, kids)
		skip := skipCategories(q.Categories, groups)

		for _, g := range groups {
			sort.SliceStable(g.children, func(a, b int) bool {
				return questions[g.children[a]].Order < questions[g.children[b]].Order
			})

			section := domain.ConditionalSection{
				Parent:   i,
				Trigger:  g.trigger,
				Children: g.children,
			}
			if len(g.trigger) > 0 {
				section.Skip = append([]string(nil), skip...)
			}
			sections = append(sections, section)
		}

		for _, k := range kids {
			processed[k] = true
		}
	}

	return sections
}

// nestedFlags reports, per question, whether its parent id names another question of
// the list. Orphans and self-parented questions are not nested.
func nestedFlags(questions []domain.Question) []bool {
	ids := make(map[string]bool, len(questions))
	for _, q := range questions {
		ids[q.ID] = true
	}
	nested := make([]bool, len(questions))
	for i, q := range questions {
		nested[i] = q.IsChild() && q.ParentID != q.ID && ids[q.ParentID]
	}
	return nested
}

type triggerGroup struct {
	trigger  []string
	children []int
}

// groupByTrigger buckets children by their trigger tuple, in first-encounter order.
// The empty tuple is a group like any other.
func groupByTrigger(questions []domain.Question, kids []int) []*triggerGroup {
	var groups []*triggerGroup
	index := make(map[string]*triggerGroup)

	for _, k := range kids {
		trigger := questions[k].TriggerCategoryTexts
		key := strings.Join(trigger, "\x1f")
		g, ok := index[key]
		if !ok {
			g = &triggerGroup{trigger: append([]string(nil), trigger...)}
			index[key] = g
			groups = append(groups, g)
		}
		g.children = append(g.children, k)
	}
	return groups
}

// skipCategories returns the parent categories that trigger none of the groups,
// in the parent's category order.
func skipCategories(categories []string, groups []*triggerGroup) []string {
	var skip []string
	for _, c := range categories {
		triggered := false
		for _, g := range groups {
			if containsFold(g.trigger, c) {
				triggered = true
				break
			}
		}
		if !triggered {
			skip = append(skip, c)
		}
	}
	return skip
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}

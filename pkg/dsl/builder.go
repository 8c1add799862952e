package dsl

import (
	"fmt"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Builder manages the question-set construction.
type Builder struct {
	questions []*QuestionBuilder
	byID      map[string]*QuestionBuilder
}

// New creates a new question-set builder.
func New() *Builder {
	return &Builder{
		byID: make(map[string]*QuestionBuilder),
	}
}

// Add creates a new question. Questions are ordered in the sequence they are added.
// If the question already exists, it returns the existing builder.
func (b *Builder) Add(id string) *QuestionBuilder {
	if qb, ok := b.byID[id]; ok {
		return qb
	}
	qb := &QuestionBuilder{
		question: domain.Question{
			ID:    id,
			Order: len(b.questions) + 1,
		},
		builder: b,
	}
	b.questions = append(b.questions, qb)
	b.byID[id] = qb
	return qb
}

// Build returns the questions in insertion order.
// It fails when a conditional question references a parent that was never added.
func (b *Builder) Build() ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(b.questions))
	for _, qb := range b.questions {
		q := qb.Build()
		if q.ParentID != "" {
			if _, ok := b.byID[q.ParentID]; !ok {
				return nil, fmt.Errorf("question %s: parent %s not found", q.ID, q.ParentID)
			}
		}
		out = append(out, q)
	}
	return out, nil
}

// MustBuild is like Build but panics on error. Intended for tests and examples.
func (b *Builder) MustBuild() []domain.Question {
	qs, err := b.Build()
	if err != nil {
		panic(err)
	}
	return qs
}

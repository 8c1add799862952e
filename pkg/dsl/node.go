package dsl

import "github.com/aretw0/surveyflow/pkg/domain"

// QuestionBuilder provides a fluent API for configuring a question.
type QuestionBuilder struct {
	question domain.Question
	builder  *Builder
}

// Open sets the text of the question and marks it as free-form.
func (q *QuestionBuilder) Open(text string) *QuestionBuilder {
	q.question.Text = text
	q.question.Criteria = domain.CriteriaOpen
	q.question.ScaleMax = 0
	q.question.Categories = nil
	return q
}

// Scale sets the text of the question and asks for a rating in [1, max].
func (q *QuestionBuilder) Scale(text string, max int) *QuestionBuilder {
	q.question.Text = text
	q.question.Criteria = domain.CriteriaScale
	q.question.ScaleMax = max
	q.question.Categories = nil
	return q
}

// Categorical sets the text of the question and its answer categories.
func (q *QuestionBuilder) Categorical(text string, categories ...string) *QuestionBuilder {
	q.question.Text = text
	q.question.Criteria = domain.CriteriaCategorical
	q.question.ScaleMax = 0
	q.question.Categories = categories
	return q
}

// When makes the question conditional on parentID. It is asked only when the parent's
// answer is one of categories; with no categories it is asked whenever the parent is answered.
func (q *QuestionBuilder) When(parentID string, categories ...string) *QuestionBuilder {
	q.question.ParentID = parentID
	q.question.TriggerCategoryTexts = categories
	return q
}

// Order overrides the insertion order.
func (q *QuestionBuilder) Order(order int) *QuestionBuilder {
	q.question.Order = order
	return q
}

// Add continues with a new question on the same builder.
func (q *QuestionBuilder) Add(id string) *QuestionBuilder {
	return q.builder.Add(id)
}

// Build returns the underlying domain.Question.
// This is primarily used by the Builder, but exposed for advanced usage.
func (q *QuestionBuilder) Build() domain.Question {
	out := q.question
	out.Categories = append([]string(nil), q.question.Categories...)
	out.TriggerCategoryTexts = append([]string(nil), q.question.TriggerCategoryTexts...)
	if len(out.Categories) == 0 {
		out.Categories = nil
	}
	if len(out.TriggerCategoryTexts) == 0 {
		out.TriggerCategoryTexts = nil
	}
	return out
}

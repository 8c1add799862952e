package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/surveyflow/internal/compiler"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/aretw0/surveyflow/pkg/schema"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// ValidateRequest checks a build request before compilation.
//
// Field constraints come from the struct tags of the domain types. On top of them it
// rejects unsupported languages, duplicate or self-referencing ids, references to
// unknown parents, conditional questions nested under another conditional question and
// top-level questions ordered inside a conditional section.
// Every failure is reported; the result is a *schema.AggregateError whose members wrap
// the matching domain sentinel.
func ValidateRequest(req domain.BuildRequest) error {
	var errs []error

	if err := validate.Struct(req); err != nil {
		errs = append(errs, formatValidationErrors(err)...)
	}

	if req.Language != "" && !compiler.SupportsLanguage(req.Language) {
		errs = append(errs, fmt.Errorf("language %q: %w", req.Language, domain.ErrUnsupportedLanguage))
	}

	errs = append(errs, questionErrors(req.Questions)...)

	if len(errs) == 0 {
		return nil
	}
	return &schema.AggregateError{Errors: errs}
}

// ValidateQuestions runs the structural question checks only.
func ValidateQuestions(questions []domain.Question) error {
	errs := questionErrors(questions)
	if len(errs) == 0 {
		return nil
	}
	return &schema.AggregateError{Errors: errs}
}

func questionErrors(questions []domain.Question) []error {
	var errs []error

	byID := make(map[string]domain.Question, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.ID) == "" {
			errs = append(errs, fmt.Errorf("question at index %d: empty id: %w", i, domain.ErrInvalidQuestion))
			continue
		}
		if _, dup := byID[q.ID]; dup {
			errs = append(errs, fmt.Errorf("question %q: %w", q.ID, domain.ErrDuplicateQuestion))
			continue
		}
		byID[q.ID] = q
	}

	for _, q := range questions {
		if !q.IsChild() {
			continue
		}
		if q.ParentID == q.ID {
			errs = append(errs, fmt.Errorf("question %q: parent is itself: %w", q.ID, domain.ErrInvalidQuestion))
			continue
		}
		parent, ok := byID[q.ParentID]
		if !ok {
			errs = append(errs, fmt.Errorf("question %q: parent %q: %w", q.ID, q.ParentID, domain.ErrUnknownParent))
			continue
		}
		if parent.IsChild() {
			errs = append(errs, fmt.Errorf("question %q: parent %q is conditional: %w", q.ID, q.ParentID, domain.ErrNestedConditional))
		}
	}

	errs = append(errs, interleaveErrors(questions, byID)...)

	return errs
}

// interleaveErrors rejects top-level questions that, once ordered, sit between a parent
// and its last conditional question. The section converges past them, so nothing would
// route into them.
func interleaveErrors(questions []domain.Question, byID map[string]domain.Question) []error {
	ordered := make([]int, len(questions))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return questions[ordered[a]].Order < questions[ordered[b]].Order
	})

	// Furthest position of a child, per well-formed parent.
	lastChild := make(map[string]int)
	for pos, i := range ordered {
		q := questions[i]
		if !q.IsChild() || q.ParentID == q.ID {
			continue
		}
		if parent, ok := byID[q.ParentID]; !ok || parent.IsChild() {
			continue
		}
		lastChild[q.ParentID] = pos
	}

	var errs []error
	reported := make(map[int]bool)
	for pos, i := range ordered {
		parentID := questions[i].ID
		end, ok := lastChild[parentID]
		if !ok || questions[i].IsChild() {
			continue
		}
		delete(lastChild, parentID)
		for _, j := range ordered[pos+1 : max(end, pos+1)] {
			q := questions[j]
			if q.IsChild() || reported[j] {
				continue
			}
			reported[j] = true
			errs = append(errs, fmt.Errorf("question %q: ordered inside the section of %q: %w", q.ID, parentID, domain.ErrInterleavedSection))
		}
	}
	return errs
}

// formatValidationErrors converts validator errors to a more user-friendly format
func formatValidationErrors(err error) []error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{err}
	}

	out := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		var reason string
		switch e.Tag() {
		case "required":
			reason = "field is required"
		case "max":
			reason = "must not exceed " + param
		case "gte":
			reason = "must be at least " + param
		case "lte":
			reason = "must be at most " + param
		case "url":
			reason = "must be a valid URL"
		default:
			reason = fmt.Sprintf("validation failed (%s)", e.Tag())
		}
		out = append(out, &schema.ValidationError{Key: field, Reason: reason})
	}
	return out
}

package domain

import "errors"

// ErrWorkflowNotFound is returned when a compiled workflow cannot be found in a store.
var ErrWorkflowNotFound = errors.New("workflow not found")

// ErrUnsupportedLanguage is returned when a request names a language without a profile.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrInvalidQuestion is returned when a question record fails boundary validation.
var ErrInvalidQuestion = errors.New("invalid question")

// ErrDuplicateQuestion is returned when two questions share an id.
var ErrDuplicateQuestion = errors.New("duplicate question id")

// ErrUnknownParent is returned when a question references a parent that is not in the set.
var ErrUnknownParent = errors.New("unknown parent question")

// ErrNestedConditional is returned when a conditional question's parent is itself conditional.
// Only one level of nesting is supported.
var ErrNestedConditional = errors.New("nested conditional question")

// ErrInterleavedSection is returned when a top-level question is ordered between a parent
// and one of its conditional questions.
var ErrInterleavedSection = errors.New("question ordered inside a conditional section")

package domain

import (
	"context"
	"time"
)

// CompileEvent describes one compilation.
type CompileEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SurveyID  string    `json:"survey_id"`
	Language  Language  `json:"language"`

	Questions int `json:"questions"`
	Sections  int `json:"sections,omitempty"`
	Nodes     int `json:"nodes,omitempty"`
	Edges     int `json:"edges,omitempty"`

	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// CompileHooks defines callbacks for compiler observability.
type CompileHooks struct {
	OnCompileStart func(context.Context, *CompileEvent)
	OnCompileEnd   func(context.Context, *CompileEvent)
}

package domain

import "time"

// WorkflowRecord is a compiled workflow kept by a WorkflowStore.
type WorkflowRecord struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"survey_id"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	// Finals are the question nodes routed into submission.
	Finals   []string  `json:"finals,omitempty"`
	Workflow *Workflow `json:"workflow,omitempty"`

	// Sealed holds the encrypted record when the store encrypts at rest.
	Sealed string `json:"sealed,omitempty"`
}

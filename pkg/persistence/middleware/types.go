// Package middleware wraps a WorkflowStore with additional behavior.
package middleware

import "github.com/aretw0/surveyflow/pkg/ports"

// Middleware allows wrapping a WorkflowStore to add behavior.
type Middleware func(ports.WorkflowStore) ports.WorkflowStore

package ports

import (
	"context"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// WorkflowStore defines the interface for keeping compiled workflows.
// The compiler itself is stateless; stores back the HTTP and MCP surfaces.
type WorkflowStore interface {
	// Save persists the record under id, replacing any previous one.
	Save(ctx context.Context, id string, rec *domain.WorkflowRecord) error

	// Load retrieves the record stored under id.
	// Returns domain.ErrWorkflowNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.WorkflowRecord, error)

	// Delete removes the record stored under id.
	// Returns domain.ErrWorkflowNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns the ids of the stored records.
	List(ctx context.Context) ([]string, error)
}

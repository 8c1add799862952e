package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRecord(id string) *domain.WorkflowRecord {
	return &domain.WorkflowRecord{
		ID:        id,
		SurveyID:  "survey-" + id,
		Language:  domain.LanguageEnglish,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Finals:    []string{"question_1_q1"},
		Workflow: &domain.Workflow{
			Name:               "Contract",
			MaxDurationSeconds: 600,
			Nodes: []domain.Node{
				{Name: domain.NodeEntry, Type: domain.NodeTypeConversation, IsStart: true, Prompt: "Hello"},
				{Name: "question_1_q1", Type: domain.NodeTypeConversation, Metadata: map[string]string{domain.MetaRole: domain.RoleQuestion}},
				{Name: domain.NodeSubmission, Type: domain.NodeTypeTool, Tool: &domain.Tool{Type: domain.ToolAPIRequest, URL: "https://example.com"}},
			},
			Edges: []domain.Edge{
				{From: domain.NodeEntry, To: "question_1_q1", Condition: "confirmed"},
				{From: "question_1_q1", To: domain.NodeSubmission, Condition: "answered"},
			},
		},
	}
}

// RunWorkflowStoreContract runs a suite of tests to verify that a WorkflowStore
// implementation adheres to the defined interface contract.
func RunWorkflowStoreContract(t *testing.T, store WorkflowStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := contractRecord(id)

		err := store.Save(ctx, id, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.SurveyID, loaded.SurveyID)
		assert.Equal(t, rec.Finals, loaded.Finals)
		assert.True(t, rec.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, rec.Workflow, loaded.Workflow)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		loaded.Workflow.Nodes[0].Name = "mutated"

		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.NodeEntry, again.Workflow.Nodes[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractRecord(id)))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrWorkflowNotFound, "Load after Delete should return ErrWorkflowNotFound")

		err = store.Delete(ctx, id)
		assert.ErrorIs(t, err, domain.ErrWorkflowNotFound, "second Delete should return ErrWorkflowNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, contractRecord(id1)))
		require.NoError(t, store.Save(ctx, id2, contractRecord(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

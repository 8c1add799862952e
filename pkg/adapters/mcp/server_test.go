package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/pkg/adapters/memory"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rideSurvey = `
survey_id: ride-feedback
language: en
template:
  organization: Acme Rides
questions:
  - id: q1
    text: How was your ride?
    criteria: open
    order: 1
  - id: q2
    text: Was the driver friendly?
    criteria: categorical
    categories: ["Good", "Bad"]
    order: 2
  - id: q3
    text: What went wrong?
    criteria: open
    order: 3
    parent_id: q2
    trigger_category_texts: ["Bad"]
`

func newTestServer() (*Server, *memory.Store) {
	store := memory.NewStore()
	return NewServer(surveyflow.New(), store), store
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestCompileSurvey(t *testing.T) {
	s, store := newTestServer()
	ctx := context.Background()

	resp, err := s.handleCompile(ctx, mcp.CallToolRequest{}, CompileArgs{Survey: rideSurvey})
	require.NoError(t, err)
	assert.Empty(t, resp.ID)
	assert.ElementsMatch(t, []string{"question_2_q2", "question_3_q3"}, resp.Finals)
	require.NotNil(t, resp.Workflow)
	assert.Len(t, resp.Workflow.QuestionNodes(), 3)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCompileSurvey_Store(t *testing.T) {
	s, store := newTestServer()
	ctx := context.Background()

	resp, err := s.handleCompile(ctx, mcp.CallToolRequest{}, CompileArgs{Survey: rideSurvey, Store: true})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	rec, err := store.Load(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "ride-feedback", rec.SurveyID)
	assert.Equal(t, resp.Finals, rec.Finals)
}

func TestCompileSurvey_Rejected(t *testing.T) {
	s, _ := newTestServer()

	handler := mcp.NewStructuredToolHandler(s.handleCompile)
	res, err := handler(context.Background(), toolRequest(map[string]any{
		"survey": "questions:\n  - id: q1\n    text: a\n  - id: q1\n    text: b\n",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "duplicate question id")
}

func TestRenderGraph_FromSurvey(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleRenderGraph(context.Background(), toolRequest(map[string]any{"survey": rideSurvey}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "graph TD"))
	assert.Contains(t, text, "question_2_q2")
}

func TestRenderGraph_FromStore(t *testing.T) {
	s, _ := newTestServer()
	ctx := context.Background()

	resp, err := s.handleCompile(ctx, mcp.CallToolRequest{}, CompileArgs{Survey: rideSurvey, Store: true})
	require.NoError(t, err)

	res, err := s.handleRenderGraph(ctx, toolRequest(map[string]any{"workflow_id": resp.ID}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "submit_answers")

	res, err = s.handleRenderGraph(ctx, toolRequest(map[string]any{"workflow_id": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRenderGraph_NoInput(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleRenderGraph(context.Background(), toolRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

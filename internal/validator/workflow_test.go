package validator

import (
	"testing"

	"github.com/aretw0/surveyflow/internal/compiler"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compiled(t *testing.T) *domain.Workflow {
	t.Helper()
	return compiler.Compile(validRequest()).Workflow
}

func messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}

func TestDiagnose_CompiledWorkflowIsClean(t *testing.T) {
	wf := compiled(t)

	assert.Empty(t, Diagnose(wf))
	assert.NoError(t, ValidateWorkflow(wf))
}

func TestDiagnose_EmptySurveyIsClean(t *testing.T) {
	wf := compiler.Compile(domain.BuildRequest{}).Workflow
	assert.Empty(t, Diagnose(wf))
}

func TestDiagnose_DanglingEdge(t *testing.T) {
	wf := compiled(t)
	wf.Edges = append(wf.Edges, domain.Edge{From: domain.NodeOpening, To: "ghost", Condition: "never"})

	assert.Contains(t, messages(Diagnose(wf)), "opening: edge to unknown node ghost")
}

func TestDiagnose_DuplicateEdge(t *testing.T) {
	wf := compiled(t)
	wf.Edges = append(wf.Edges, wf.Edges[0])

	issues := Diagnose(wf)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.NodeEntry, issues[0].Node)
	assert.Contains(t, issues[0].Message, "duplicate edge")
}

func TestDiagnose_QuestionReachingEnd(t *testing.T) {
	wf := compiled(t)
	for i, e := range wf.Edges {
		if e.To == domain.NodeSubmission && e.From == "question_3_q3" {
			wf.Edges[i].To = domain.NodeEnd
		}
	}

	assert.Contains(t, messages(Diagnose(wf)), "question_3_q3: question reaches the end without submitting answers")
}

func TestDiagnose_Unreachable(t *testing.T) {
	wf := compiled(t)
	var kept []domain.Edge
	for _, e := range wf.Edges {
		if e.To != "question_3_q3" {
			kept = append(kept, e)
		}
	}
	wf.Edges = kept

	assert.Contains(t, messages(Diagnose(wf)), "question_3_q3: unreachable from start")
}

func TestDiagnose_StartNodes(t *testing.T) {
	wf := compiled(t)
	wf.Nodes[0].IsStart = false
	assert.Contains(t, messages(Diagnose(wf)), "no start node")

	wf = compiled(t)
	wf.Nodes[1].IsStart = true
	assert.Contains(t, messages(Diagnose(wf)), "multiple start nodes: introduction, opening")
}

func TestDiagnose_DuplicateNodeName(t *testing.T) {
	wf := compiled(t)
	wf.Nodes = append(wf.Nodes, wf.Nodes[4])

	assert.Contains(t, messages(Diagnose(wf)), "question_1_q1: duplicate node name")
}

func TestValidateWorkflow_Error(t *testing.T) {
	wf := compiled(t)
	wf.Nodes = wf.Nodes[:len(wf.Nodes)-1]

	err := ValidateWorkflow(wf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_call: missing structural node")
}

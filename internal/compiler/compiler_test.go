package compiler

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(questions ...domain.Question) domain.BuildRequest {
	return domain.BuildRequest{
		SurveyID:    "survey-42",
		Language:    domain.LanguageEnglish,
		CallbackURL: "https://example.com/answers",
		Template: domain.TemplateConfig{
			Organization: "Acme Rides",
			Purpose:      "improving driver quality",
		},
		Respondent: domain.Respondent{Name: "Sam", Reference: "your ride on March 3rd"},
		Questions:  questions,
	}
}

func TestCompile_ThreeQuestionScenario(t *testing.T) {
	res := Compile(request(threeQuestions()...))
	wf := res.Workflow

	require.Len(t, wf.Nodes, 3+domain.StructuralNodeCount)
	assert.Equal(t, []domain.Edge{
		edge(domain.NodeEntry, domain.NodeOpening, en.IdentityConfirmed),
		edge(domain.NodeOpening, domain.NodeDeclineConversation, en.Declined),
		edge(domain.NodeDeclineConversation, domain.NodeDeclineHangup, en.WrapUpDone),
		edge(domain.NodeOpening, "question_1_q1", en.Agreed),
		edge("question_1_q1", "question_2_q2", en.Answered),
		edge("question_2_q2", "question_3_q3", "The person's answer matches: Bad"),
		edge("question_3_q3", domain.NodeSubmission, en.Answered),
		edge("question_2_q2", domain.NodeSubmission, "The person's answer matches: Good"),
		edge(domain.NodeSubmission, domain.NodeEnd, en.Submitted),
	}, wf.Edges)
}

func TestCompile_NodeOrder(t *testing.T) {
	wf := Compile(request(threeQuestions()...)).Workflow

	names := make([]string, len(wf.Nodes))
	for i, n := range wf.Nodes {
		names[i] = n.Name
	}
	assert.Equal(t, []string{
		domain.NodeEntry,
		domain.NodeOpening,
		domain.NodeDeclineConversation,
		domain.NodeDeclineHangup,
		"question_1_q1",
		"question_2_q2",
		"question_3_q3",
		domain.NodeSubmission,
		domain.NodeEnd,
	}, names)

	starts := 0
	for _, n := range wf.Nodes {
		if n.IsStart {
			starts++
			assert.Equal(t, domain.NodeEntry, n.Name)
		}
	}
	assert.Equal(t, 1, starts)
}

func TestCompile_LinearChain(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		t.Run(fmt.Sprintf("%d questions", n), func(t *testing.T) {
			questions := make([]domain.Question, n)
			for i := range questions {
				questions[i] = open(fmt.Sprintf("q%d", i+1), i+1)
			}

			wf := Compile(request(questions...)).Workflow
			assert.Len(t, wf.Nodes, n+domain.StructuralNodeCount)

			assert.Contains(t, wf.Edges, edge(domain.NodeOpening, "question_1_q1", en.Agreed))
			for i := 1; i < n; i++ {
				from := QuestionNodeName(i-1, fmt.Sprintf("q%d", i))
				to := QuestionNodeName(i, fmt.Sprintf("q%d", i+1))
				assert.Equal(t, []domain.Edge{edge(from, to, en.Answered)}, wf.EdgesFrom(from))
			}
			last := QuestionNodeName(n-1, fmt.Sprintf("q%d", n))
			assert.Equal(t, []domain.Edge{edge(last, domain.NodeSubmission, en.Answered)}, wf.EdgesFrom(last))
			assert.Equal(t, []domain.Edge{edge(domain.NodeSubmission, domain.NodeEnd, en.Submitted)}, wf.EdgesFrom(domain.NodeSubmission))
		})
	}
}

func TestCompile_EmptySurvey(t *testing.T) {
	wf := Compile(request()).Workflow

	assert.Len(t, wf.Nodes, domain.StructuralNodeCount)
	assert.Contains(t, wf.Edges, edge(domain.NodeOpening, domain.NodeSubmission, en.Agreed))
	assert.Contains(t, wf.Edges, edge(domain.NodeSubmission, domain.NodeEnd, en.Submitted))
}

func TestCompile_OnlyFinalQuestionsReachSubmission(t *testing.T) {
	res := Compile(request(
		open("a", 1),
		categorical("p", 2, "Yes", "No"),
		child(open("why", 3), "p", "No"),
		open("z", 4),
	))
	wf := res.Workflow

	for _, e := range wf.Edges {
		if e.To == domain.NodeEnd {
			assert.Equal(t, domain.NodeSubmission, e.From, "only submission reaches the end: %v", e)
		}
		if e.To == domain.NodeSubmission && e.From != domain.NodeOpening {
			assert.Equal(t, "question_4_z", e.From)
		}
	}
}

func TestCompile_TimeLimit(t *testing.T) {
	req := request(open("a", 1))
	assert.Equal(t, DefaultTimeLimitMinutes*60, Compile(req).Workflow.MaxDurationSeconds)

	req.Template.TimeLimitMinutes = 3
	wf := Compile(req).Workflow
	assert.Equal(t, 180, wf.MaxDurationSeconds)
	assert.Contains(t, wf.GlobalPrompt, "under 3 minutes")
}

func TestCompile_LanguageProfiles(t *testing.T) {
	req := request(open("a", 1))

	req.Language = domain.LanguageSpanish
	es := Compile(req).Workflow
	assert.Equal(t, "es", es.Transcriber.Language)
	assert.Equal(t, "paula", es.Voice.VoiceID)
	assert.Contains(t, es.Edges, edge(domain.NodeOpening, "question_1_a", ConditionsFor(domain.LanguageSpanish).Agreed))

	req.Language = "fr"
	fallback := Compile(req).Workflow
	assert.Equal(t, "en", fallback.Transcriber.Language)
	assert.Contains(t, fallback.Edges, edge(domain.NodeOpening, "question_1_a", en.Agreed))

	req.Language = ""
	assert.Equal(t, "en", Compile(req).Workflow.Transcriber.Language)
}

func TestCompile_WorkflowName(t *testing.T) {
	req := request()
	assert.Equal(t, DefaultWorkflowName, Compile(req).Workflow.Name)

	req.Template.Name = "Ride feedback"
	assert.Equal(t, "Ride feedback", Compile(req).Workflow.Name)
}

func TestCompile_DoesNotMutateInput(t *testing.T) {
	questions := []domain.Question{open("b", 2), open("a", 1)}
	Compile(request(questions...))

	assert.Equal(t, "b", questions[0].ID)
}

func TestCompile_JSONShape(t *testing.T) {
	wf := Compile(request(threeQuestions()...)).Workflow

	data, err := json.Marshal(wf)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "office", doc["backgroundSound"])
	assert.Equal(t, float64(600), doc["maxDurationSeconds"])
	assert.Len(t, doc["nodes"], 9)
	assert.Len(t, doc["edges"], 9)

	first := doc["nodes"].([]any)[0].(map[string]any)
	assert.Equal(t, true, first["isStart"])
}

func TestCompile_Deterministic(t *testing.T) {
	a, err := json.Marshal(Compile(request(threeQuestions()...)).Workflow)
	require.NoError(t, err)
	b, err := json.Marshal(Compile(request(threeQuestions()...)).Workflow)
	require.NoError(t, err)

	assert.JSONEq(t, string(a), string(b))
}

func TestCompile_SingleSectionParentHasTwoEdges(t *testing.T) {
	wf := Compile(request(
		categorical("p", 1, "Yes", "No"),
		child(open("c", 2), "p", "Yes"),
		open("next", 3),
	)).Workflow

	assert.Equal(t, []domain.Edge{
		edge("question_1_p", "question_2_c", "The person's answer matches: Yes"),
		edge("question_1_p", "question_3_next", "The person's answer matches: No"),
	}, wf.EdgesFrom("question_1_p"))
}

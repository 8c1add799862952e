package surveyflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/internal/config"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "How was your ride?", Criteria: domain.CriteriaOpen, Order: 1},
		{ID: "q2", Text: "Was the driver friendly?", Criteria: domain.CriteriaCategorical, Categories: []string{"Good", "Bad"}, Order: 2},
		{ID: "q3", Text: "What went wrong?", Criteria: domain.CriteriaOpen, Order: 3, ParentID: "q2", TriggerCategoryTexts: []string{"Bad"}},
	}
}

func pairs(wf *domain.Workflow) map[[2]string]string {
	out := make(map[[2]string]string, len(wf.Edges))
	for _, e := range wf.Edges {
		out[[2]string{e.From, e.To}] = e.Condition
	}
	return out
}

func TestFacade_BuildWorkflowConfig(t *testing.T) {
	wf, err := surveyflow.BuildWorkflowConfig(
		"survey-1",
		scenario(),
		"https://hooks.example.com/answers",
		domain.TemplateConfig{Organization: "Acme Rides", TimeLimitMinutes: 5},
		domain.Respondent{Name: "Sam"},
		domain.LanguageEnglish,
	)
	if err != nil {
		t.Fatalf("BuildWorkflowConfig failed: %v", err)
	}

	if len(wf.Nodes) != 9 {
		t.Fatalf("expected 9 nodes, got %d", len(wf.Nodes))
	}
	if wf.MaxDurationSeconds != 300 {
		t.Errorf("expected 300 seconds, got %d", wf.MaxDurationSeconds)
	}

	p := pairs(wf)
	want := map[[2]string]string{
		{domain.NodeOpening, "question_1_q1"}:         "The person agreed to participate in the survey",
		{"question_1_q1", "question_2_q2"}:            "The person answered the question",
		{"question_2_q2", "question_3_q3"}:            "The person's answer matches: Bad",
		{"question_2_q2", domain.NodeSubmission}:      "The person's answer matches: Good",
		{"question_3_q3", domain.NodeSubmission}:      "The person answered the question",
		{domain.NodeSubmission, domain.NodeEnd}:       "The answers were submitted",
	}
	for pair, cond := range want {
		got, ok := p[pair]
		if !ok {
			t.Errorf("missing edge %s -> %s", pair[0], pair[1])
			continue
		}
		if got != cond {
			t.Errorf("edge %s -> %s: condition %q, want %q", pair[0], pair[1], got, cond)
		}
	}
	for _, from := range []string{"question_2_q2", "question_3_q3"} {
		if _, ok := p[[2]string{from, domain.NodeEnd}]; ok {
			t.Errorf("unexpected edge %s -> end", from)
		}
	}

	sub, ok := wf.Node(domain.NodeSubmission)
	if !ok {
		t.Fatal("submission node missing")
	}
	if sub.Tool.URL != "https://hooks.example.com/answers" {
		t.Errorf("unexpected callback URL %q", sub.Tool.URL)
	}
}

func TestFacade_EmptySurvey(t *testing.T) {
	wf, err := surveyflow.New().Build(context.Background(), domain.BuildRequest{SurveyID: "empty"})
	require.NoError(t, err)

	assert.Len(t, wf.Nodes, domain.StructuralNodeCount)
	assert.Empty(t, wf.QuestionNodes())
	assert.Equal(t, []domain.Edge{
		{From: domain.NodeOpening, To: domain.NodeDeclineConversation, Condition: "The person wants to end the call or does not want to participate"},
		{From: domain.NodeOpening, To: domain.NodeSubmission, Condition: "The person agreed to participate in the survey"},
	}, wf.EdgesFrom(domain.NodeOpening))
}

func TestFacade_CallbackURLFallbacks(t *testing.T) {
	submissionURL := func(c *surveyflow.Compiler, requested string) string {
		wf, err := c.Build(context.Background(), domain.BuildRequest{CallbackURL: requested})
		require.NoError(t, err)
		n, ok := wf.Node(domain.NodeSubmission)
		require.True(t, ok)
		return n.Tool.URL
	}

	t.Setenv(config.EnvCallbackURL, "")
	assert.Equal(t, domain.DefaultCallbackURL, submissionURL(surveyflow.New(), ""))

	t.Setenv(config.EnvCallbackURL, "https://env.example.com/answers")
	assert.Equal(t, "https://env.example.com/answers", submissionURL(surveyflow.New(), ""))
	assert.Equal(t, "https://opt.example.com/answers",
		submissionURL(surveyflow.New(surveyflow.WithCallbackURL("https://opt.example.com/answers")), ""))
	assert.Equal(t, "https://req.example.com/answers",
		submissionURL(surveyflow.New(), "https://req.example.com/answers"))
}

func TestFacade_Validation(t *testing.T) {
	questions := scenario()
	questions[2].ParentID = "ghost"
	req := domain.BuildRequest{SurveyID: "broken", Questions: questions}

	_, err := surveyflow.New().Build(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownParent))
	assert.Contains(t, err.Error(), `invalid survey "broken"`)

	// Without validation the orphan is routed as a regular question.
	wf, err := surveyflow.New(surveyflow.WithoutValidation()).Build(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, wf.Nodes, 9)
	edges := pairs(wf)
	assert.Contains(t, edges, [2]string{"question_2_q2", "question_3_q3"})
	assert.Contains(t, edges, [2]string{"question_3_q3", domain.NodeSubmission})
}

func TestFacade_RejectsQuestionInsideSection(t *testing.T) {
	questions := scenario()
	questions[0].Order = 2
	questions[1].Order = 1

	_, err := surveyflow.New().Build(context.Background(), domain.BuildRequest{SurveyID: "interleaved", Questions: questions})
	assert.ErrorIs(t, err, domain.ErrInterleavedSection)
}

func TestFacade_UnsupportedLanguage(t *testing.T) {
	req := domain.BuildRequest{Language: "fr", Questions: scenario()}

	_, err := surveyflow.New().Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)

	wf, err := surveyflow.New(surveyflow.WithoutValidation()).Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "en", wf.Transcriber.Language)
}

func TestFacade_Hooks(t *testing.T) {
	var started, ended *domain.CompileEvent
	c := surveyflow.New(surveyflow.WithHooks(domain.CompileHooks{
		OnCompileStart: func(_ context.Context, e *domain.CompileEvent) { started = e },
		OnCompileEnd:   func(_ context.Context, e *domain.CompileEvent) { ended = e },
	}))

	_, err := c.Build(context.Background(), domain.BuildRequest{SurveyID: "s", Questions: scenario()})
	require.NoError(t, err)

	require.NotNil(t, started)
	require.NotNil(t, ended)
	assert.Equal(t, "s", ended.SurveyID)
	assert.Equal(t, domain.LanguageEnglish, ended.Language)
	assert.Equal(t, 3, ended.Questions)
	assert.Equal(t, 2, ended.Sections)
	assert.Equal(t, 9, ended.Nodes)
	assert.Equal(t, 9, ended.Edges)
	assert.NoError(t, ended.Err)

	_, err = c.Build(context.Background(), domain.BuildRequest{Language: "xx"})
	require.Error(t, err)
	assert.ErrorIs(t, ended.Err, domain.ErrUnsupportedLanguage)
}

func TestFacade_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := surveyflow.New().Build(ctx, domain.BuildRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFacade_CompileOutput(t *testing.T) {
	out, err := surveyflow.New().Compile(context.Background(), domain.BuildRequest{Questions: scenario()})
	require.NoError(t, err)

	assert.Equal(t, []string{"question_2_q2", "question_3_q3"}, out.Finals)
	require.Len(t, out.Sections, 2)
	assert.IsType(t, domain.RegularSection{}, out.Sections[0])
	assert.IsType(t, domain.ConditionalSection{}, out.Sections[1])
}

func TestFacade_SanitizesText(t *testing.T) {
	questions := []domain.Question{{ID: "q1", Text: "How\x1b[31m was\x00 it?", Criteria: domain.CriteriaOpen}}

	wf, err := surveyflow.New().Build(context.Background(), domain.BuildRequest{Questions: questions})
	require.NoError(t, err)

	n, ok := wf.Node("question_1_q1")
	require.True(t, ok)
	assert.Contains(t, n.Prompt, `"How[31m was it?"`)
	assert.Equal(t, "How\x1b[31m was\x00 it?", questions[0].Text, "input must not be modified")
}

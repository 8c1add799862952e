package surveyflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/surveyflow/internal/compiler"
	"github.com/aretw0/surveyflow/internal/config"
	"github.com/aretw0/surveyflow/internal/validator"
	"github.com/aretw0/surveyflow/pkg/domain"
)

// DefaultCatchAll lists the catch-all answer literals stripped from trigger lists.
var DefaultCatchAll = []string{"None of the above", "Ninguna de las anteriores"}

// Compiler is the high-level entry point for the surveyflow library.
// It wraps the internal compiler with input validation, preprocessing and observability.
// A Compiler is safe for concurrent use.
type Compiler struct {
	logger      *slog.Logger
	hooks       domain.CompileHooks
	callbackURL string
	catchAll    []string
	validate    bool
}

// Option defines a functional option for configuring the Compiler.
type Option func(*Compiler)

// WithLogger sets a custom structured logger for the compiler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.CompileHooks) Option {
	return func(c *Compiler) {
		c.hooks = hooks
	}
}

// WithCallbackURL sets the callback URL used when a request does not name one.
// It takes precedence over the SURVEYFLOW_CALLBACK_URL environment variable.
func WithCallbackURL(url string) Option {
	return func(c *Compiler) {
		c.callbackURL = url
	}
}

// WithCatchAll replaces the catch-all literals stripped from trigger lists.
// Calling it without arguments disables stripping.
func WithCatchAll(literals ...string) Option {
	return func(c *Compiler) {
		c.catchAll = literals
	}
}

// WithoutValidation skips input validation. Malformed input then compiles into
// degenerate nodes and edges instead of failing.
func WithoutValidation() Option {
	return func(c *Compiler) {
		c.validate = false
	}
}

// New initializes a new Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		callbackURL: os.Getenv(config.EnvCallbackURL),
		catchAll:    DefaultCatchAll,
		validate:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return c
}

// Output is the result of a compilation.
type Output struct {
	Workflow *domain.Workflow
	// Sections is the grouping the workflow was routed from.
	Sections []domain.Section
	// Finals are the question nodes routed into the submission node.
	Finals []string
}

// Compile validates and preprocesses req, then compiles it.
func (c *Compiler) Compile(ctx context.Context, req domain.BuildRequest) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.Language == "" {
		req.Language = domain.DefaultLanguage
	}
	event := &domain.CompileEvent{
		Timestamp: time.Now(),
		SurveyID:  req.SurveyID,
		Language:  req.Language,
		Questions: len(req.Questions),
	}
	if c.hooks.OnCompileStart != nil {
		c.hooks.OnCompileStart(ctx, event)
	}

	out, err := c.compile(req)

	event.Duration = time.Since(event.Timestamp)
	event.Err = err
	if out != nil {
		event.Sections = len(out.Sections)
		event.Nodes = len(out.Workflow.Nodes)
		event.Edges = len(out.Workflow.Edges)
	}
	if c.hooks.OnCompileEnd != nil {
		c.hooks.OnCompileEnd(ctx, event)
	}

	if err != nil {
		c.logger.Warn("survey rejected", "survey_id", req.SurveyID, "error", err)
		return nil, err
	}
	c.logger.Debug("survey compiled",
		"survey_id", req.SurveyID,
		"language", req.Language,
		"nodes", event.Nodes,
		"edges", event.Edges,
		"duration", event.Duration,
	)
	return out, nil
}

func (c *Compiler) compile(req domain.BuildRequest) (*Output, error) {
	if c.validate {
		if err := validator.ValidateRequest(req); err != nil {
			return nil, fmt.Errorf("invalid survey %q: %w", req.SurveyID, err)
		}
	}

	req.CallbackURL = config.ResolveCallbackURL(req.CallbackURL, c.callbackURL)
	req.Questions = c.prepareQuestions(req.Questions)
	req.Template = sanitizeTemplate(req.Template)

	res := compiler.Compile(req)
	return &Output{
		Workflow: res.Workflow,
		Sections: res.Plan.Sections,
		Finals:   res.Plan.Finals(),
	}, nil
}

// Build compiles req and returns the workflow document.
func (c *Compiler) Build(ctx context.Context, req domain.BuildRequest) (*domain.Workflow, error) {
	out, err := c.Compile(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Workflow, nil
}

// prepareQuestions copies the questions, cleans their text and strips catch-all
// literals from trigger lists. A trigger list made only of catch-alls is kept as is.
func (c *Compiler) prepareQuestions(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.Text = sanitizeText(q.Text)
		q.Categories = append([]string(nil), q.Categories...)
		q.TriggerCategoryTexts = c.stripCatchAll(q.TriggerCategoryTexts)
		out[i] = q
	}
	return out
}

func (c *Compiler) stripCatchAll(trigger []string) []string {
	if len(trigger) == 0 || len(c.catchAll) == 0 {
		return append([]string(nil), trigger...)
	}

	kept := make([]string, 0, len(trigger))
	for _, t := range trigger {
		if !c.isCatchAll(t) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return append([]string(nil), trigger...)
	}
	return kept
}

func (c *Compiler) isCatchAll(s string) bool {
	s = strings.TrimSpace(s)
	for _, literal := range c.catchAll {
		if strings.EqualFold(s, literal) {
			return true
		}
	}
	return false
}

// BuildWorkflowConfig compiles one survey call with the default Compiler.
func BuildWorkflowConfig(
	surveyID string,
	questions []domain.Question,
	callbackURL string,
	template domain.TemplateConfig,
	respondent domain.Respondent,
	language domain.Language,
) (*domain.Workflow, error) {
	return New().Build(context.Background(), domain.BuildRequest{
		SurveyID:    surveyID,
		Language:    language,
		CallbackURL: callbackURL,
		Template:    template,
		Respondent:  respondent,
		Questions:   questions,
	})
}

package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/internal/presentation/graph"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/aretw0/surveyflow/pkg/ports"
	"github.com/aretw0/surveyflow/pkg/schema"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger loads and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// Compiler compiles survey definitions. *surveyflow.Compiler satisfies it.
type Compiler interface {
	Compile(ctx context.Context, req domain.BuildRequest) (*surveyflow.Output, error)
}

// Server serves the compile API over a WorkflowStore.
type Server struct {
	compiler    Compiler
	store       ports.WorkflowStore
	logger      *slog.Logger
	limiter     *rate.Limiter
	gatherer    prometheus.Gatherer
	maxBodySize int64
	timeout     time.Duration
	apiVersion  string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit bounds the accepted request rate across all clients.
// A non-positive limit disables limiting.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		if limit <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
}

// WithMetrics exposes the collectors of g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithMaxBodySize caps request bodies, in bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		s.maxBodySize = n
	}
}

// WithTimeout bounds the handling time of each request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewHandler creates the HTTP handler of the compile API.
func NewHandler(compiler Compiler, store ports.WorkflowStore, opts ...Option) http.Handler {
	s := &Server{
		compiler:    compiler,
		store:       store,
		logger:      slog.Default(),
		maxBodySize: 1 << 20,
		timeout:     10 * time.Second,
		apiVersion:  "unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		s.apiVersion = swagger.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "error", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.rateLimit)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", s.ListWorkflows)
		r.Post("/", s.CompileWorkflow)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetWorkflow)
			r.Delete("/", s.DeleteWorkflow)
			r.Get("/graph", s.GetWorkflowGraph)
			r.Post("/answers/validate", s.ValidateAnswers)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const requestIDHeader = "X-Request-Id"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "surveyflow-http",
		"version":     strings.TrimSpace(surveyflow.Version),
		"api_version": s.apiVersion,
	})
}

// CompileWorkflow handles the POST /workflows request.
func (s *Server) CompileWorkflow(w http.ResponseWriter, r *http.Request) {
	var req domain.BuildRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.SurveyID == "" {
		req.SurveyID = uuid.NewString()
	}

	out, err := s.compiler.Compile(r.Context(), req)
	if err != nil {
		var aggr *schema.AggregateError
		if errors.As(err, &aggr) {
			writeError(w, http.StatusUnprocessableEntity, "invalid survey", errorStrings(aggr.Errors)...)
			return
		}
		s.logger.Error("Compile failed", "survey_id", req.SurveyID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	language := req.Language
	if language == "" {
		language = domain.DefaultLanguage
	}
	rec := &domain.WorkflowRecord{
		ID:        uuid.NewString(),
		SurveyID:  req.SurveyID,
		Language:  language,
		CreatedAt: time.Now().UTC(),
		Finals:    out.Finals,
		Workflow:  out.Workflow,
	}
	if err := s.store.Save(r.Context(), rec.ID, rec); err != nil {
		s.logger.Error("Save failed", "id", rec.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store workflow")
		return
	}

	s.logger.Info("Workflow compiled", "id", rec.ID, "survey_id", rec.SurveyID, "nodes", len(rec.Workflow.Nodes))
	w.Header().Set("Location", "/workflows/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// ListWorkflows handles the GET /workflows request.
func (s *Server) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("List failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list workflows")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	sort.Strings(ids)
	writeJSON(w, http.StatusOK, map[string][]string{"workflows": ids})
}

// GetWorkflow handles the GET /workflows/{id} request.
func (s *Server) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteWorkflow handles the DELETE /workflows/{id} request.
func (s *Server) DeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrWorkflowNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("Delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete workflow")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetWorkflowGraph handles the GET /workflows/{id}/graph request.
func (s *Server) GetWorkflowGraph(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(rec.Workflow, &graph.GraphOverlay{Finals: rec.Finals})))
}

// ValidateAnswers handles the POST /workflows/{id}/answers/validate request.
// The body is checked against the submission schema of the workflow.
func (s *Server) ValidateAnswers(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.load(w, r)
	if !ok {
		return
	}
	var payload map[string]any
	if !s.decode(w, r, &payload) {
		return
	}

	submission, found := rec.Workflow.Node(domain.NodeSubmission)
	if !found || submission.Tool == nil {
		writeError(w, http.StatusInternalServerError, "workflow has no submission node")
		return
	}
	sch, err := schema.FromDocument(submission.Tool.Body)
	if err != nil {
		s.logger.Error("Submission schema unreadable", "id", rec.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "invalid submission schema")
		return
	}

	if err := schema.Validate(sch, payload); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, answerValidation{
			Valid:  false,
			Errors: errorStrings(schema.ValidationErrors(err)),
		})
		return
	}
	writeJSON(w, http.StatusOK, answerValidation{Valid: true})
}

type answerValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.WorkflowRecord, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrWorkflowNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return nil, false
		}
		s.logger.Error("Load failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load workflow")
		return nil, false
	}
	return rec, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

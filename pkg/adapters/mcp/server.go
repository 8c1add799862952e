package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/internal/compiler"
	"github.com/aretw0/surveyflow/internal/presentation/graph"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/aretw0/surveyflow/pkg/ports"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// WorkflowsURI is the resource listing cached workflow ids.
const WorkflowsURI = "surveyflow://workflows"

// CompileArgs are the arguments of the compile_survey tool.
type CompileArgs struct {
	Survey string `json:"survey"`
	Store  bool   `json:"store,omitempty"`
}

// CompileResponse is the structured result of the compile_survey tool.
type CompileResponse struct {
	ID       string           `json:"id,omitempty" jsonschema_description:"Id of the cached workflow, set when store was requested"`
	Finals   []string         `json:"finals" jsonschema_description:"Question nodes routed into submission"`
	Workflow *domain.Workflow `json:"workflow" jsonschema_description:"The compiled workflow document"`
}

// Compiler compiles survey definitions. *surveyflow.Compiler satisfies it.
type Compiler interface {
	Compile(ctx context.Context, req domain.BuildRequest) (*surveyflow.Output, error)
}

// Server exposes the survey compiler as an MCP Server.
type Server struct {
	compiler  Compiler
	store     ports.WorkflowStore
	parser    *compiler.Parser
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(c Compiler, store ports.WorkflowStore) *Server {
	s := &Server{
		compiler:  c,
		store:     store,
		parser:    compiler.NewParser(),
		mcpServer: server.NewMCPServer("surveyflow-mcp", strings.TrimSpace(surveyflow.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: compile_survey
	compileTool := mcp.NewTool("compile_survey",
		mcp.WithDescription("Compile a survey definition (YAML or JSON) into a voice-workflow graph."),
		mcp.WithString("survey", mcp.Required(), mcp.Description("The survey definition document")),
		mcp.WithBoolean("store", mcp.Description("Cache the compiled workflow and return its id")),
		mcp.WithOutputSchema[CompileResponse](),
	)
	s.mcpServer.AddTool(compileTool, mcp.NewStructuredToolHandler(s.handleCompile))

	// TOOL: render_graph
	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render a workflow as a Mermaid flowchart, from a cached id or a survey definition."),
		mcp.WithString("workflow_id", mcp.Description("Id of a cached workflow")),
		mcp.WithString("survey", mcp.Description("A survey definition to compile and render")),
	), s.handleRenderGraph)
}

func (s *Server) handleCompile(ctx context.Context, _ mcp.CallToolRequest, args CompileArgs) (CompileResponse, error) {
	out, err := s.compile(ctx, args.Survey)
	if err != nil {
		return CompileResponse{}, err
	}

	resp := CompileResponse{Finals: out.Finals, Workflow: out.Workflow}
	if !args.Store {
		return resp, nil
	}

	rec := &domain.WorkflowRecord{
		ID:        uuid.NewString(),
		SurveyID:  out.SurveyID,
		Language:  out.Language,
		CreatedAt: time.Now().UTC(),
		Finals:    out.Finals,
		Workflow:  out.Workflow,
	}
	if err := s.store.Save(ctx, rec.ID, rec); err != nil {
		return CompileResponse{}, fmt.Errorf("store failed: %w", err)
	}
	resp.ID = rec.ID
	return resp, nil
}

func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("workflow_id", "")
	survey := request.GetString("survey", "")

	var (
		wf     *domain.Workflow
		finals []string
	)
	switch {
	case id != "":
		rec, err := s.store.Load(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrWorkflowNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("workflow %q not found", id)), nil
			}
			return nil, fmt.Errorf("load failed: %w", err)
		}
		wf, finals = rec.Workflow, rec.Finals
	case survey != "":
		out, err := s.compile(ctx, survey)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		wf, finals = out.Workflow, out.Finals
	default:
		return mcp.NewToolResultError("one of workflow_id or survey is required"), nil
	}

	return mcp.NewToolResultText(graph.GenerateMermaid(wf, &graph.GraphOverlay{Finals: finals})), nil
}

type compiled struct {
	*surveyflow.Output
	SurveyID string
	Language domain.Language
}

func (s *Server) compile(ctx context.Context, survey string) (*compiled, error) {
	req, err := s.parser.Parse([]byte(survey))
	if err != nil {
		return nil, err
	}
	if req.SurveyID == "" {
		req.SurveyID = uuid.NewString()
	}
	if req.Language == "" {
		req.Language = domain.DefaultLanguage
	}

	out, err := s.compiler.Compile(ctx, *req)
	if err != nil {
		slog.Warn("MCP Compile: survey rejected", "survey_id", req.SurveyID, "error", err)
		return nil, fmt.Errorf("compile failed: %w", err)
	}
	return &compiled{Output: out, SurveyID: req.SurveyID, Language: req.Language}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: surveyflow://workflows
	s.mcpServer.AddResource(mcp.NewResource(WorkflowsURI, "Cached Workflows",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list workflows: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      WorkflowsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/internal/presentation/graph"
	"github.com/aretw0/surveyflow/internal/presentation/tui"
	"github.com/aretw0/surveyflow/internal/validator"
	"github.com/aretw0/surveyflow/pkg/domain"
)

// GraphOptions configures RunGraph.
type GraphOptions struct {
	Source
	Path string
	// Finals highlights the question nodes routed into submission.
	Finals bool
}

// RunGraph compiles a survey and writes its Mermaid flowchart.
func RunGraph(ctx context.Context, w io.Writer, c *surveyflow.Compiler, opts GraphOptions) error {
	out, err := opts.CompileFile(ctx, c, opts.Path)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Finals {
		overlay = &graph.GraphOverlay{Finals: out.Finals}
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(out.Workflow, overlay))
	return err
}

// ValidateOptions configures RunValidate.
type ValidateOptions struct {
	Source
	Path string
	// Compiled treats Path as a compiled workflow document instead of a survey definition.
	Compiled bool
}

// RunValidate checks a survey, or a compiled workflow document, for consistency.
// Survey definitions are validated and compiled first; the resulting graph is then
// checked against the workflow schema and crawled from its start node.
func RunValidate(ctx context.Context, c *surveyflow.Compiler, opts ValidateOptions) error {
	dv, err := validator.NewDocumentValidator()
	if err != nil {
		return err
	}

	var wf *domain.Workflow
	if opts.Compiled {
		data, err := opts.read(opts.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.Path, err)
		}
		if err := dv.ValidateJSON(data); err != nil {
			return err
		}
		wf = &domain.Workflow{}
		if err := json.Unmarshal(data, wf); err != nil {
			return fmt.Errorf("failed to decode workflow: %w", err)
		}
	} else {
		out, err := opts.CompileFile(ctx, c, opts.Path)
		if err != nil {
			return err
		}
		wf = out.Workflow
		if err := dv.Validate(wf); err != nil {
			return err
		}
	}

	return validator.ValidateWorkflow(wf)
}

// DescribeOptions configures RunDescribe.
type DescribeOptions struct {
	Source
	Path string
	// Render styles the markdown for a terminal of the given width.
	Render bool
	Width  int
}

// RunDescribe writes a markdown summary of a compiled survey.
func RunDescribe(ctx context.Context, w io.Writer, c *surveyflow.Compiler, opts DescribeOptions) error {
	out, err := opts.CompileFile(ctx, c, opts.Path)
	if err != nil {
		return err
	}

	doc := tui.Describe(out.Workflow)
	if opts.Render {
		render, err := tui.NewRenderer(opts.Width)
		if err != nil {
			return err
		}
		styled, err := render(doc)
		if err != nil {
			return fmt.Errorf("failed to render description: %w", err)
		}
		doc = styled
	}
	_, err = io.WriteString(w, doc)
	return err
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/itchyny/gojq"
	"golang.org/x/sync/errgroup"
)

// CompileOptions configures RunCompile.
type CompileOptions struct {
	Source
	Files []string
	// OutputDir receives one <name>.json per input file. Empty writes to the command output.
	OutputDir string
	// Query is a jq expression applied to each compiled workflow.
	Query    string
	Language domain.Language
	// Parallelism bounds concurrent compilations; 0 uses the number of CPUs.
	Parallelism int
}

// RunCompile compiles every file in opts.Files concurrently.
// Results are written in input order; the first failure cancels the rest.
func RunCompile(ctx context.Context, w io.Writer, c *surveyflow.Compiler, opts CompileOptions) error {
	if len(opts.Files) == 0 {
		return fmt.Errorf("no survey files given")
	}

	var code *gojq.Code
	if opts.Query != "" {
		query, err := gojq.Parse(opts.Query)
		if err != nil {
			return fmt.Errorf("jq parse error in %q: %w", opts.Query, err)
		}
		code, err = gojq.Compile(query, gojq.WithEnvironLoader(func() []string { return nil }))
		if err != nil {
			return fmt.Errorf("jq compile error in %q: %w", opts.Query, err)
		}
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([][]byte, len(opts.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range opts.Files {
		g.Go(func() error {
			req, err := opts.LoadSurvey(path)
			if err != nil {
				return err
			}
			if opts.Language != "" {
				req.Language = opts.Language
			}
			out, err := c.Compile(gctx, *req)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			data, err := render(gctx, out.Workflow, code)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		names := outputNames(opts.Files)
		for i, path := range opts.Files {
			target := filepath.Join(opts.OutputDir, names[i])
			if err := os.WriteFile(target, results[i], 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			fmt.Fprintf(w, "%s -> %s\n", path, target)
		}
		return nil
	}

	for _, data := range results {
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// outputNames maps each input to a distinct <name>.json. When two inputs share a base
// name, later ones get their 1-based input position as a suffix.
func outputNames(files []string) []string {
	names := make([]string, len(files))
	taken := make(map[string]bool, len(files))
	for i, path := range files {
		stem := fmt.Sprintf("stdin-%d", i)
		if path != "-" {
			base := filepath.Base(path)
			stem = strings.TrimSuffix(base, filepath.Ext(base))
		}

		name := stem + ".json"
		for n := i + 1; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d.json", stem, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// render serializes wf, or the results of code run against it, as indented JSON.
func render(ctx context.Context, wf *domain.Workflow, code *gojq.Code) ([]byte, error) {
	if code == nil {
		return marshal(wf)
	}

	raw, err := json.Marshal(wf)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workflow: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode workflow: %w", err)
	}

	var buf []byte
	iter := code.RunWithContext(ctx, doc)
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := val.(error); isErr {
			return nil, fmt.Errorf("jq evaluation failed: %w", err)
		}
		data, err := marshal(val)
		if err != nil {
			return nil, err
		}
		buf = append(buf, data...)
	}
	return buf, nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize output: %w", err)
	}
	return append(data, '\n'), nil
}

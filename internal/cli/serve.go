package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/surveyflow"
	"github.com/aretw0/surveyflow/internal/config"
	"github.com/aretw0/surveyflow/internal/metrics"
	"github.com/aretw0/surveyflow/internal/presentation/tui"
	httpAdapter "github.com/aretw0/surveyflow/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/surveyflow/pkg/adapters/mcp"
	"github.com/aretw0/surveyflow/pkg/adapters/memory"
	"github.com/aretw0/surveyflow/pkg/adapters/redis"
	"github.com/aretw0/surveyflow/pkg/persistence/middleware"
	"github.com/aretw0/surveyflow/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// OpenStore returns the workflow store named by cfg: Redis when a URL is configured,
// memory otherwise. The returned close function releases the store.
// Records are sealed with cfg.EncryptionKey when one is configured.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.WorkflowStore, func() error, error) {
	store, closeStore, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.EncryptionKey) > 0 {
		logger.Info("Encrypting cached workflows at rest")
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: cfg.EncryptionKey})(store)
	}
	return store, closeStore, nil
}

func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.WorkflowStore, func() error, error) {
	if cfg.RedisURL == "" {
		logger.Info("Using in-memory workflow store")
		return memory.NewStore(), func() error { return nil }, nil
	}

	store, err := redis.NewFromURL(cfg.RedisURL, redis.WithTTL(cfg.CacheTTL))
	if err != nil {
		return nil, nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("redis unreachable: %w", err)
	}
	logger.Info("Using redis workflow store", "ttl", cfg.CacheTTL)
	return store, store.Close, nil
}

// NewServerHandler wires the compiler, metrics and store behind the HTTP API.
func NewServerHandler(cfg config.Config, store ports.WorkflowStore, logger *slog.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	compileMetrics := metrics.New(reg)

	compiler := surveyflow.New(
		surveyflow.WithLogger(logger),
		surveyflow.WithCallbackURL(cfg.CallbackURL),
		surveyflow.WithHooks(compileMetrics.Hooks()),
	)

	return httpAdapter.NewHandler(compiler, store,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(reg),
		httpAdapter.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		httpAdapter.WithMaxBodySize(cfg.MaxInputSize),
		httpAdapter.WithTimeout(cfg.RequestTimeout),
	)
}

// RunServe starts the HTTP API and blocks until ctx is cancelled or the listener fails.
func RunServe(ctx context.Context, banner io.Writer, cfg config.Config, logger *slog.Logger) error {
	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if banner != nil {
		tui.PrintBanner(banner)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewServerHandler(cfg, store, logger),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting surveyflow server", "addr", srv.Addr, "version", surveyflow.Version)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("surveyflow server stopped gracefully")
		return nil
	}
}

// MCPOptions configures RunMCP.
type MCPOptions struct {
	Transport string
	Port      int
}

// RunMCP starts the MCP server on the chosen transport.
func RunMCP(ctx context.Context, cfg config.Config, logger *slog.Logger, opts MCPOptions) error {
	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	compiler := surveyflow.New(
		surveyflow.WithLogger(logger),
		surveyflow.WithCallbackURL(cfg.CallbackURL),
	)
	srv := mcpAdapter.NewServer(compiler, store)

	switch opts.Transport {
	case "stdio":
		logger.Info("Starting surveyflow MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting surveyflow MCP Server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}

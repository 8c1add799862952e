// Package metrics exposes Prometheus collectors for survey compilation.
package metrics

import (
	"context"

	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the compile metrics.
type Collectors struct {
	Compilations *prometheus.CounterVec
	Duration     prometheus.Histogram
	Nodes        prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Compilations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveyflow_compilations_total",
				Help: "Total number of survey compilations",
			},
			[]string{"language", "result"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "surveyflow_compile_duration_seconds",
				Help:    "Duration of survey compilations",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		Nodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "surveyflow_workflow_nodes",
				Help:    "Number of nodes in compiled workflows",
				Buckets: prometheus.LinearBuckets(6, 5, 10),
			},
		),
	}
	reg.MustRegister(c.Compilations, c.Duration, c.Nodes)
	return c
}

// Hooks returns compile hooks recording into the collectors.
func (c *Collectors) Hooks() domain.CompileHooks {
	return domain.CompileHooks{
		OnCompileEnd: func(_ context.Context, e *domain.CompileEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			c.Compilations.WithLabelValues(string(e.Language), result).Inc()
			c.Duration.Observe(e.Duration.Seconds())
			if e.Err == nil {
				c.Nodes.Observe(float64(e.Nodes))
			}
		},
	}
}

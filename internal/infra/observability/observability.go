// Package observability provides the scheduler's structured tracing and
// Prometheus metrics: lightweight in-process spans (one per GA generation,
// plus one per API schedule request), plus counters and gauges describing
// search progress.
package observability

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Trace Spans — lightweight span tracking without an external OTel SDK ──

// SpanKind classifies a span.
type SpanKind int

const (
	SpanInternal SpanKind = iota
	SpanServer
	SpanClient
)

// Span represents a unit of work within a trace.
type Span struct {
	TraceID   string            `json:"trace_id"`
	SpanID    string            `json:"span_id"`
	ParentID  string            `json:"parent_id,omitempty"`
	Operation string            `json:"operation"`
	Kind      SpanKind          `json:"kind"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
	Duration  time.Duration     `json:"duration,omitempty"`
	Status    SpanStatus        `json:"status"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// SpanStatus indicates success/failure.
type SpanStatus int

const (
	SpanOK SpanStatus = iota
	SpanError
)

// ─── Tracer ─────────────────────────────────────────────────────────────────

// Tracer records spans in a fixed-size ring buffer for inspection or
// export. It is not a substitute for a full distributed tracing SDK — a
// single scheduler run is single-process, so this is all the run needs.
type Tracer struct {
	mu       sync.Mutex
	spans    []Span
	maxSpans int
	enabled  bool
}

// TracerConfig configures the tracer.
type TracerConfig struct {
	Enabled  bool
	MaxSpans int // ring buffer size (default 10_000)
}

// DefaultTracerConfig returns production defaults.
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		Enabled:  true,
		MaxSpans: 10_000,
	}
}

// NewTracer creates a new tracer.
func NewTracer(cfg TracerConfig) *Tracer {
	return &Tracer{
		spans:    make([]Span, 0, cfg.MaxSpans),
		maxSpans: cfg.MaxSpans,
		enabled:  cfg.Enabled,
	}
}

// StartSpan begins a new span with the given operation name.
// Returns the span (caller must call EndSpan when done).
func (t *Tracer) StartSpan(ctx context.Context, operation string, attrs map[string]string) *Span {
	if !t.enabled {
		return &Span{Operation: operation}
	}

	span := &Span{
		TraceID:   traceIDFromContext(ctx),
		SpanID:    generateID(),
		ParentID:  spanIDFromContext(ctx),
		Operation: operation,
		Kind:      SpanInternal,
		StartTime: time.Now(),
		Status:    SpanOK,
		Attrs:     attrs,
	}

	return span
}

// EndSpan completes a span and records it.
func (t *Tracer) EndSpan(span *Span, err error) {
	if !t.enabled || span == nil {
		return
	}

	span.EndTime = time.Now()
	span.Duration = span.EndTime.Sub(span.StartTime)
	if err != nil {
		span.Status = SpanError
		if span.Attrs == nil {
			span.Attrs = make(map[string]string)
		}
		span.Attrs["error"] = err.Error()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Ring buffer: overwrite oldest if at capacity
	if len(t.spans) >= t.maxSpans {
		t.spans = t.spans[1:]
	}
	t.spans = append(t.spans, *span)
}

// Spans returns a copy of the recent spans.
func (t *Tracer) Spans(limit int) []Span {
	t.mu.Lock()
	defer t.mu.Unlock()

	if limit <= 0 || limit > len(t.spans) {
		limit = len(t.spans)
	}

	// Return most recent spans
	start := len(t.spans) - limit
	out := make([]Span, limit)
	copy(out, t.spans[start:])
	return out
}

// SpanCount returns the number of recorded spans.
func (t *Tracer) SpanCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}

// Reset clears all recorded spans.
func (t *Tracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = t.spans[:0]
}

// ─── Context Helpers ────────────────────────────────────────────────────────

type contextKey string

const (
	traceIDKey contextKey = "eo-trace-id"
	spanIDKey  contextKey = "eo-span-id"
)

// WithTraceID returns a context with the given trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// WithSpanID returns a context with the given span ID.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey, spanID)
}

func traceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return generateID()
}

func spanIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(spanIDKey).(string); ok {
		return v
	}
	return ""
}

// generateID creates a short unique ID (not cryptographically secure — fine for tracing).
var spanCounter atomic.Int64

func generateID() string {
	n := spanCounter.Add(1)
	return fmt.Sprintf("%s-%d", time.Now().Format("20060102150405"), n)
}

// ─── Scheduler Metrics ──────────────────────────────────────────────────────

// GenerationsTotal tracks the cumulative number of GA generations run
// across all Run calls in this process.
var GenerationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "eo",
	Subsystem: "scheduler",
	Name:      "generations_total",
	Help:      "Total GA generations executed across all runs.",
})

// BestMakespan tracks the best makespan found by the most recently
// completed run.
var BestMakespan = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "eo",
	Subsystem: "scheduler",
	Name:      "best_makespan",
	Help:      "Best makespan found by the most recently completed GA run.",
})

// RunDuration tracks wall-clock duration of a complete GA run.
var RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "eo",
	Subsystem: "scheduler",
	Name:      "run_duration_seconds",
	Help:      "Wall-clock duration of a GA run, in seconds.",
	Buckets:   prometheus.DefBuckets,
})

// PopulationFitnessStddev tracks the most recent generation's fitness
// standard deviation, the same convergence signal the adaptive tournament
// size is computed from.
var PopulationFitnessStddev = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "eo",
	Subsystem: "scheduler",
	Name:      "population_fitness_stddev",
	Help:      "Standard deviation of makespan across the current generation's population.",
})

// EvaluatorCalls tracks GA fitness evaluations by phase ("initial" for
// the first population, "generation" for each later batch), so a
// dashboard can see evaluator load by phase. Constructor and refinement
// probes are not counted.
var EvaluatorCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "eo",
	Subsystem: "evaluator",
	Name:      "calls_total",
	Help:      "Total makespan evaluator invocations by calling source.",
}, []string{"source"})

// Package hooks provides ready-made Hook and Logger implementations.
package hooks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avagner/photostamp/core"
)

// ── Structured logger adapter ─────────────────────────────────────────────────

// SlogLogger wraps the standard library slog.Logger to satisfy core.Logger.
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger creates a logger backed by slog.
func NewSlogLogger(l *slog.Logger) *SlogLogger { return &SlogLogger{log: l} }

func (s *SlogLogger) Debug(msg string, fields ...any) { s.log.Debug(msg, fields...) }
func (s *SlogLogger) Info(msg string, fields ...any)  { s.log.Info(msg, fields...) }
func (s *SlogLogger) Warn(msg string, fields ...any)  { s.log.Warn(msg, fields...) }
func (s *SlogLogger) Error(msg string, fields ...any) { s.log.Error(msg, fields...) }

// ── Logging hook ──────────────────────────────────────────────────────────────

// LoggingHook logs before/after each stamping step.
type LoggingHook struct {
	logger core.Logger
}

// NewLoggingHook creates a LoggingHook.
func NewLoggingHook(l core.Logger) *LoggingHook { return &LoggingHook{logger: l} }

func (h *LoggingHook) BeforeStep(_ context.Context, stepName string, job *core.Job) {
	h.logger.Debug("step.start",
		"step", stepName,
		"source", job.SourcePath,
	)
}

func (h *LoggingHook) AfterStep(_ context.Context, stepName string, job *core.Job, d time.Duration, err error) {
	if err != nil {
		// Skips flow through here as the sentinel; they are not errors.
		h.logger.Debug("step.stop",
			"step", stepName,
			"duration_ms", d.Milliseconds(),
			"detail", err.Error(),
		)
		return
	}
	h.logger.Debug("step.done",
		"step", stepName,
		"duration_ms", d.Milliseconds(),
	)
	if job != nil && job.FontNote != "" && stepName == "measure" {
		h.logger.Warn("font fallback", "source", job.SourcePath, "note", job.FontNote)
	}
}

// ── Step counters ─────────────────────────────────────────────────────────────

// StepCounters accumulates per-step call and error counts; safe for
// concurrent use.
type StepCounters struct {
	mu     sync.Mutex
	calls  map[string]int64
	errors map[string]int64
}

// NewStepCounters creates an empty counter set.
func NewStepCounters() *StepCounters {
	return &StepCounters{
		calls:  make(map[string]int64),
		errors: make(map[string]int64),
	}
}

func (c *StepCounters) BeforeStep(_ context.Context, stepName string, _ *core.Job) {
	c.mu.Lock()
	c.calls[stepName]++
	c.mu.Unlock()
}

func (c *StepCounters) AfterStep(_ context.Context, stepName string, _ *core.Job, _ time.Duration, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.errors[stepName]++
	c.mu.Unlock()
}

// Snapshot returns copies of the call and error counts.
func (c *StepCounters) Snapshot() (calls, errs map[string]int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	calls = make(map[string]int64, len(c.calls))
	errs = make(map[string]int64, len(c.errors))
	for k, v := range c.calls {
		calls[k] = v
	}
	for k, v := range c.errors {
		errs[k] = v
	}
	return calls, errs
}

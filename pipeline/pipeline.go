// Package pipeline wires stamping steps together and runs hooks around them.
package pipeline

import (
	"context"
	"time"

	"github.com/avagner/photostamp/core"
	apperrors "github.com/avagner/photostamp/errors"
)

// Pipeline executes a sequence of Steps with hook support. Each step is a
// hard sequence point: no step begins before the previous completes. There
// is no retry machinery; a failed step fails the job once.
type Pipeline struct {
	steps []core.Step
	hooks []core.Hook
}

// New returns an empty Pipeline.
func New() *Pipeline { return &Pipeline{} }

// Use appends steps to the pipeline. Returns the same Pipeline for chaining.
func (p *Pipeline) Use(s ...core.Step) *Pipeline {
	p.steps = append(p.steps, s...)
	return p
}

// AddHook registers an observer.
func (p *Pipeline) AddHook(h core.Hook) *Pipeline {
	p.hooks = append(p.hooks, h)
	return p
}

// Run executes the pipeline on job. It returns the final Job and a map of
// per-step timing observations.
func (p *Pipeline) Run(ctx context.Context, job *core.Job) (*core.Job, map[string]time.Duration, error) {
	timings := make(map[string]time.Duration, len(p.steps))
	current := job

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, timings, apperrors.Wrap(apperrors.CategoryPipeline, step.Name(), err)
		}

		p.callHooksBefore(ctx, step.Name(), current)
		start := time.Now()
		result, err := step.Execute(ctx, current)
		elapsed := time.Since(start)
		timings[step.Name()] = elapsed
		p.callHooksAfter(ctx, step.Name(), result, elapsed, err)

		if err != nil {
			return nil, timings, err
		}
		current = result
	}
	return current, timings, nil
}

// Clone returns a shallow copy of the pipeline so templates can be reused
// safely across callers.
func (p *Pipeline) Clone() *Pipeline {
	cp := &Pipeline{
		steps: make([]core.Step, len(p.steps)),
		hooks: make([]core.Hook, len(p.hooks)),
	}
	copy(cp.steps, p.steps)
	copy(cp.hooks, p.hooks)
	return cp
}

func (p *Pipeline) callHooksBefore(ctx context.Context, name string, job *core.Job) {
	for _, h := range p.hooks {
		h.BeforeStep(ctx, name, job)
	}
}

func (p *Pipeline) callHooksAfter(ctx context.Context, name string, job *core.Job, d time.Duration, err error) {
	for _, h := range p.hooks {
		h.AfterStep(ctx, name, job, d, err)
	}
}

package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Renderer consumes each dashboard the runtime builds.
type Renderer func(*Dashboard) error

type Option func(*Runtime)

// WithInterval overrides the engine's configured refresh interval.
func WithInterval(d time.Duration) Option {
	return func(r *Runtime) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithTicker replaces the wall-clock ticker, mainly for tests.
func WithTicker(tick func(time.Duration) (<-chan time.Time, func())) Option {
	return func(r *Runtime) {
		if tick != nil {
			r.tick = tick
		}
	}
}

// Runtime re-renders the dashboard on a fixed interval until its context is
// cancelled. Repeated builds are served by the engine's caches.
type Runtime struct {
	engine   *Engine
	apiKey   string
	render   Renderer
	interval time.Duration
	tick     func(time.Duration) (<-chan time.Time, func())
	renders  int
}

func NewRuntime(engine *Engine, apiKey string, render Renderer, opts ...Option) (*Runtime, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if render == nil {
		return nil, fmt.Errorf("renderer is required")
	}

	rt := &Runtime{
		engine:   engine,
		apiKey:   apiKey,
		render:   render,
		interval: engine.Config.RefreshInterval,
		tick: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", rt.interval)
	}
	return rt, nil
}

// Run renders once immediately and then on every tick. It returns nil when
// ctx is cancelled and the renderer's error if rendering fails.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.renderOnce(ctx); err != nil {
		return err
	}

	ticks, stop := r.tick(r.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			r.engine.log.Debug("runtime stopped", zap.Int("renders", r.renders))
			return nil
		case <-ticks:
			if err := r.renderOnce(ctx); err != nil {
				return err
			}
		}
	}
}

// Interval returns the effective refresh interval.
func (r *Runtime) Interval() time.Duration {
	return r.interval
}

// Renders reports how many dashboards have been rendered.
func (r *Runtime) Renders() int {
	return r.renders
}

func (r *Runtime) renderOnce(ctx context.Context) error {
	dash := r.engine.Build(ctx, r.apiKey)
	if err := r.render(dash); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	r.renders++
	return nil
}

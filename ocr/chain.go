package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/wudi/attachkit/observability"
)

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithTimeout bounds each individual backend call. Zero (the default) means
// no bound; setting it prevents a hung backend from stalling the whole
// pipeline.
func WithTimeout(d time.Duration) ChainOption {
	return func(c *Chain) { c.timeout = d }
}

// WithLogger attaches a logger to the chain.
func WithLogger(l observability.Logger) ChainOption {
	return func(c *Chain) { c.log = l.With(observability.Component("ocr")) }
}

// Chain tries an ordered list of OCR backends until one produces a result.
// Backends are probed exactly once, at construction; construct the chain
// before any per-page fan-out so engine setup never races. A Chain is safe
// for concurrent use afterwards.
type Chain struct {
	engines []Engine
	timeout time.Duration
	log     observability.Logger
}

// NewChain builds a chain from the given engines in priority order, dropping
// any backend whose availability probe fails.
func NewChain(engines []Engine, opts ...ChainOption) *Chain {
	c := &Chain{log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	for _, e := range engines {
		if p, ok := e.(Prober); ok && !p.Available() {
			c.log.Warn("ocr backend unavailable, skipping", observability.String("engine", e.Name()))
			continue
		}
		c.engines = append(c.engines, e)
	}
	return c
}

// Available reports whether at least one backend survived probing.
func (c *Chain) Available() bool { return len(c.engines) > 0 }

// Names lists the usable backends in priority order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.engines))
	for _, e := range c.engines {
		names = append(names, e.Name())
	}
	return names
}

// Recognize runs the input through the backends in priority order and returns
// the first successful result. When every backend fails, the last failure is
// returned; when no backend is usable at all, ErrBackendUnavailable.
func (c *Chain) Recognize(ctx context.Context, in Input) (Result, error) {
	if len(c.engines) == 0 {
		return Result{}, ErrBackendUnavailable
	}
	var lastErr error
	for _, e := range c.engines {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res, err := c.recognizeOne(ctx, e, in)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		c.log.Warn("ocr backend failed, trying next",
			observability.String("engine", e.Name()),
			observability.Error("cause", err))
		lastErr = err
	}
	return Result{}, fmt.Errorf("all ocr backends failed: %w", lastErr)
}

// recognizeOne invokes a single engine, optionally bounded by the chain
// timeout. The engine call runs in its own goroutine so a hung native call
// cannot stall the caller past the deadline; the goroutine is abandoned in
// that case.
func (c *Chain) recognizeOne(ctx context.Context, e Engine, in Input) (Result, error) {
	if c.timeout <= 0 {
		return e.Recognize(ctx, in)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := e.Recognize(ctx, in)
		done <- outcome{res, err}
	}()
	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		return Result{}, fmt.Errorf("engine %s: %w", e.Name(), ctx.Err())
	}
}

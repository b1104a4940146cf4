package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum spacing between outbound marketplace calls. The
// first call passes immediately; each following call waits until spacing
// has elapsed since the previous one.
type Pacer struct {
	limiter *rate.Limiter
	spacing time.Duration
	calls   atomic.Int64
}

// NewPacer creates a Pacer. A non-positive spacing disables waiting.
func NewPacer(spacing time.Duration) *Pacer {
	limit := rate.Inf
	if spacing > 0 {
		limit = rate.Every(spacing)
	}
	return &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		spacing: spacing,
	}
}

// Wait blocks until the next call is allowed, or the context is canceled.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait: %w", err)
	}
	p.calls.Add(1)
	return nil
}

// Spacing returns the configured minimum spacing.
func (p *Pacer) Spacing() time.Duration {
	return p.spacing
}

// Calls returns the number of calls let through so far.
func (p *Pacer) Calls() int64 {
	return p.calls.Load()
}

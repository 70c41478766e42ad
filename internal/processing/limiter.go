package processing

import "context"

// Limiter bounds how many calls run at once.
type Limiter interface {
	Run(ctx context.Context, process func() error) error
}

type limiter struct {
	slots chan struct{}
}

// NewLimiter returns a Limiter allowing n concurrent calls; n < 1 means 1.
func NewLimiter(n int) Limiter {
	if n < 1 {
		n = 1
	}
	return &limiter{slots: make(chan struct{}, n)}
}

// Run waits for a free slot, or for ctx to be done, then calls process.
func (l *limiter) Run(ctx context.Context, process func() error) error {
	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.slots }()
	return process()
}

// Package bridge provides a one-shot request/response slot for hand-offs
// between a caller and an asynchronous responder such as a page script or a
// browser redirect.
package bridge

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned by Wait when no response arrives in time.
var ErrTimeout = errors.New("bridge: timed out waiting for response")

// Pending holds a single response that is resolved or rejected exactly once.
// Later attempts to settle it are ignored.
type Pending[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewPending returns an unsettled slot.
func NewPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

// Resolve settles the slot with value. It reports whether this call won.
func (p *Pending[T]) Resolve(value T) bool {
	return p.settle(value, nil)
}

// Reject settles the slot with err. It reports whether this call won.
func (p *Pending[T]) Reject(err error) bool {
	if err == nil {
		err = errors.New("bridge: rejected")
	}
	var zero T
	return p.settle(zero, err)
}

func (p *Pending[T]) settle(value T, err error) bool {
	won := false
	p.once.Do(func() {
		p.value = value
		p.err = err
		won = true
		close(p.done)
	})
	return won
}

// Wait blocks until the slot is settled, ctx is cancelled or timeout elapses.
// A non-positive timeout waits on ctx alone. Expiry settles the slot with the
// timeout or context error so late responses are dropped.
func (p *Pending[T]) Wait(ctx context.Context, timeout time.Duration) (T, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-p.done:
	case <-ctx.Done():
		p.Reject(ctx.Err())
	case <-expired:
		p.Reject(ErrTimeout)
	}
	<-p.done
	return p.value, p.err
}

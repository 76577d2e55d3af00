package statecraft

import (
	"context"
	"sync"
)

// Deferred is the explicit asynchronous-completion variant an action
// returns when it wants the dispatch to stay pending. The dispatch
// engines type-switch on *Deferred; there is no duck-typed continuation
// probing.
type Deferred struct {
	done chan struct{}
	once sync.Once
	err  error
}

// NewDeferred creates an unsettled Deferred. The action (or whoever it
// hands the Deferred to) must eventually call Resolve or Reject.
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Defer runs fn on a new goroutine and returns a Deferred that settles
// with fn's error when it returns.
func Defer(fn func() error) *Deferred {
	d := NewDeferred()
	go func() {
		d.settle(fn())
	}()
	return d
}

// Resolve settles the Deferred successfully. Subsequent settles are no-ops.
func (d *Deferred) Resolve() { d.settle(nil) }

// Reject settles the Deferred with an error. Subsequent settles are no-ops.
func (d *Deferred) Reject(err error) { d.settle(err) }

func (d *Deferred) settle(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Done returns a channel closed when the Deferred settles.
func (d *Deferred) Done() <-chan struct{} { return d.done }

// Err returns the settlement error. Only valid after Done is closed.
func (d *Deferred) Err() error {
	select {
	case <-d.done:
		return d.err
	default:
		return nil
	}
}

// Wait blocks until the Deferred settles or ctx is done, and returns the
// settlement error (or the context error).
func (d *Deferred) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

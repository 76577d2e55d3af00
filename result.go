package statecraft

import "context"

// Result is the outcome of a single dispatch. For synchronous actions it
// is already settled; for actions that returned a *Deferred it stays
// pending until the Deferred settles. Await always yields the
// namespace-scoped snapshot taken when the dispatch started, for both
// variants.
type Result struct {
	inv   *Invocation
	snap  Snapshot
	value any
	def   *Deferred
}

// NewResult builds a Result. Constructed by the model package; callers
// normally only consume Results.
func NewResult(inv *Invocation, snap Snapshot, value any, def *Deferred) *Result {
	return &Result{inv: inv, snap: snap, value: value, def: def}
}

// Invocation returns the invocation descriptor this Result belongs to.
func (r *Result) Invocation() *Invocation { return r.inv }

// Pending reports whether the action returned a Deferred that has not
// been awaited yet.
func (r *Result) Pending() bool { return r.def != nil }

// Value returns the action's immediate return value. For deferred
// actions this is the *Deferred itself's payload slot and is nil.
func (r *Result) Value() any { return r.value }

// Deferred returns the action's Deferred, or nil for synchronous actions.
func (r *Result) Deferred() *Deferred { return r.def }

// Await blocks until the action settles and returns the namespace-scoped
// snapshot taken at dispatch time. A rejected Deferred's error is
// returned unchanged; synchronous Results return immediately.
func (r *Result) Await(ctx context.Context) (Snapshot, error) {
	if r.def == nil {
		return r.snap, nil
	}
	if err := r.def.Wait(ctx); err != nil {
		return nil, err
	}
	return r.snap, nil
}

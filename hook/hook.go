// Package hook defines the lifecycle hook system for statecraft.
// Hooks are notified of dispatch lifecycle events (dispatch started,
// completed, failed, batch boundaries, model registration) and can react
// to them — logging, metrics, UI re-render triggers, etc.
//
// Each lifecycle event is a separate interface so hooks opt in only to
// the events they care about. The DispatchStarted event is the
// before-dispatch broadcast: it fires before every action runs, in hook
// registration order.
package hook

import (
	"context"
	"time"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/id"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// ──────────────────────────────────────────────────
// Dispatch lifecycle events
// ──────────────────────────────────────────────────

// DispatchStarted is called before an action runs. This is the
// before-dispatch broadcast; every registered implementation is invoked,
// in registration order.
type DispatchStarted interface {
	OnDispatchStarted(ctx context.Context, inv *statecraft.Invocation) error
}

// DispatchCompleted is called after an action settles successfully. For
// deferred actions this fires when the Deferred resolves, not when the
// synchronous phase returns.
type DispatchCompleted interface {
	OnDispatchCompleted(ctx context.Context, inv *statecraft.Invocation, elapsed time.Duration) error
}

// DispatchFailed is called when an action returns an error, panics into
// the Recover middleware, or its Deferred rejects.
type DispatchFailed interface {
	OnDispatchFailed(ctx context.Context, inv *statecraft.Invocation, err error) error
}

// ──────────────────────────────────────────────────
// Batch lifecycle events
// ──────────────────────────────────────────────────

// BatchStarted is called after the collection phase of DispatchAll, once
// the shared snapshot has been taken and before any action runs.
type BatchStarted interface {
	OnBatchStarted(ctx context.Context, batchID id.BatchID, size int) error
}

// BatchCompleted is called when every action in a batch has settled
// successfully.
type BatchCompleted interface {
	OnBatchCompleted(ctx context.Context, batchID id.BatchID, elapsed time.Duration) error
}

// BatchFailed is called when a batch settles with at least one failed
// action. All other actions have run to completion by then.
type BatchFailed interface {
	OnBatchFailed(ctx context.Context, batchID id.BatchID, err error) error
}

// ──────────────────────────────────────────────────
// Model lifecycle events
// ──────────────────────────────────────────────────

// ModelRegistered is called after a model is stored in a registry,
// including when it silently replaces a prior entry.
type ModelRegistered interface {
	OnModelRegistered(ctx context.Context, name string) error
}

// ModelUnregistered is called after a model is removed from a registry.
type ModelUnregistered interface {
	OnModelUnregistered(ctx context.Context, name string) error
}

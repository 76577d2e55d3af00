package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/id"
)

// Named entry types pair an event implementation with the hook name
// captured at registration time. This avoids type-asserting back to
// Hook inside the emit methods.
type dispatchStartedEntry struct {
	name string
	hook DispatchStarted
}

type dispatchCompletedEntry struct {
	name string
	hook DispatchCompleted
}

type dispatchFailedEntry struct {
	name string
	hook DispatchFailed
}

type batchStartedEntry struct {
	name string
	hook BatchStarted
}

type batchCompletedEntry struct {
	name string
	hook BatchCompleted
}

type batchFailedEntry struct {
	name string
	hook BatchFailed
}

type modelRegisteredEntry struct {
	name string
	hook ModelRegistered
}

type modelUnregisteredEntry struct {
	name string
	hook ModelUnregistered
}

// Registry holds registered hooks and broadcasts lifecycle events to
// them. It type-caches hooks at registration time so emit calls iterate
// only over hooks that implement the relevant event. A hook error is
// logged and does not stop the broadcast or the dispatch.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each lifecycle event.
	dispatchStarted   []dispatchStartedEntry
	dispatchCompleted []dispatchCompletedEntry
	dispatchFailed    []dispatchFailedEntry
	batchStarted      []batchStartedEntry
	batchCompleted    []batchCompletedEntry
	batchFailed       []batchFailedEntry
	modelRegistered   []modelRegisteredEntry
	modelUnregistered []modelUnregisteredEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order. There is no
// unregistration primitive.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(DispatchStarted); ok {
		r.dispatchStarted = append(r.dispatchStarted, dispatchStartedEntry{name, e})
	}
	if e, ok := h.(DispatchCompleted); ok {
		r.dispatchCompleted = append(r.dispatchCompleted, dispatchCompletedEntry{name, e})
	}
	if e, ok := h.(DispatchFailed); ok {
		r.dispatchFailed = append(r.dispatchFailed, dispatchFailedEntry{name, e})
	}
	if e, ok := h.(BatchStarted); ok {
		r.batchStarted = append(r.batchStarted, batchStartedEntry{name, e})
	}
	if e, ok := h.(BatchCompleted); ok {
		r.batchCompleted = append(r.batchCompleted, batchCompletedEntry{name, e})
	}
	if e, ok := h.(BatchFailed); ok {
		r.batchFailed = append(r.batchFailed, batchFailedEntry{name, e})
	}
	if e, ok := h.(ModelRegistered); ok {
		r.modelRegistered = append(r.modelRegistered, modelRegisteredEntry{name, e})
	}
	if e, ok := h.(ModelUnregistered); ok {
		r.modelUnregistered = append(r.modelUnregistered, modelUnregisteredEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// ──────────────────────────────────────────────────
// Dispatch event emitters
// ──────────────────────────────────────────────────

// EmitDispatchStarted notifies all hooks that implement DispatchStarted.
func (r *Registry) EmitDispatchStarted(ctx context.Context, inv *statecraft.Invocation) {
	for _, e := range r.dispatchStarted {
		if err := e.hook.OnDispatchStarted(ctx, inv); err != nil {
			r.logHookError("OnDispatchStarted", e.name, err)
		}
	}
}

// EmitDispatchCompleted notifies all hooks that implement DispatchCompleted.
func (r *Registry) EmitDispatchCompleted(ctx context.Context, inv *statecraft.Invocation, elapsed time.Duration) {
	for _, e := range r.dispatchCompleted {
		if err := e.hook.OnDispatchCompleted(ctx, inv, elapsed); err != nil {
			r.logHookError("OnDispatchCompleted", e.name, err)
		}
	}
}

// EmitDispatchFailed notifies all hooks that implement DispatchFailed.
func (r *Registry) EmitDispatchFailed(ctx context.Context, inv *statecraft.Invocation, dispatchErr error) {
	for _, e := range r.dispatchFailed {
		if err := e.hook.OnDispatchFailed(ctx, inv, dispatchErr); err != nil {
			r.logHookError("OnDispatchFailed", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Batch event emitters
// ──────────────────────────────────────────────────

// EmitBatchStarted notifies all hooks that implement BatchStarted.
func (r *Registry) EmitBatchStarted(ctx context.Context, batchID id.BatchID, size int) {
	for _, e := range r.batchStarted {
		if err := e.hook.OnBatchStarted(ctx, batchID, size); err != nil {
			r.logHookError("OnBatchStarted", e.name, err)
		}
	}
}

// EmitBatchCompleted notifies all hooks that implement BatchCompleted.
func (r *Registry) EmitBatchCompleted(ctx context.Context, batchID id.BatchID, elapsed time.Duration) {
	for _, e := range r.batchCompleted {
		if err := e.hook.OnBatchCompleted(ctx, batchID, elapsed); err != nil {
			r.logHookError("OnBatchCompleted", e.name, err)
		}
	}
}

// EmitBatchFailed notifies all hooks that implement BatchFailed.
func (r *Registry) EmitBatchFailed(ctx context.Context, batchID id.BatchID, batchErr error) {
	for _, e := range r.batchFailed {
		if err := e.hook.OnBatchFailed(ctx, batchID, batchErr); err != nil {
			r.logHookError("OnBatchFailed", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Model event emitters
// ──────────────────────────────────────────────────

// EmitModelRegistered notifies all hooks that implement ModelRegistered.
func (r *Registry) EmitModelRegistered(ctx context.Context, name string) {
	for _, e := range r.modelRegistered {
		if err := e.hook.OnModelRegistered(ctx, name); err != nil {
			r.logHookError("OnModelRegistered", e.name, err)
		}
	}
}

// EmitModelUnregistered notifies all hooks that implement ModelUnregistered.
func (r *Registry) EmitModelUnregistered(ctx context.Context, name string) {
	for _, e := range r.modelUnregistered {
		if err := e.hook.OnModelUnregistered(ctx, name); err != nil {
			r.logHookError("OnModelUnregistered", e.name, err)
		}
	}
}

func (r *Registry) logHookError(event, hook string, err error) {
	r.logger.Error("hook error",
		slog.String("event", event),
		slog.String("hook", hook),
		slog.String("error", err.Error()),
	)
}

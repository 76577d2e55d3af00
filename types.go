package statecraft

import "context"

// SubState is one namespace's slice of a model's state.
type SubState map[string]any

// Snapshot maps namespace names to their state slices. Snapshots are
// produced fresh by the composed state factory on every call; they are
// never memoized.
type Snapshot map[string]SubState

// Sub returns the state slice for the given namespace, or nil if the
// snapshot does not cover it.
func (s Snapshot) Sub(namespace string) SubState {
	return s[namespace]
}

// Rule is a validation rule attached to a property. Rules are returned
// as data; statecraft never evaluates them.
type Rule map[string]any

// StateFactory produces a model's own state slices, keyed by namespace.
type StateFactory func() Snapshot

// SubStateFactory produces a single namespace's state slice. Mixins
// contribute their state through one of these.
type SubStateFactory func() SubState

// Ctx is the restricted execution context handed to an action. It exposes
// the namespace-scoped state snapshot, the mutation dispatcher, a
// re-entrant dispatch handle, and the injected service dependency.
type Ctx interface {
	// Context returns the caller's context, including any dispatch
	// timeout deadline.
	Context() context.Context

	// Namespace returns the namespace the action was routed to.
	Namespace() string

	// State returns the namespace's state slice from the snapshot taken
	// when the dispatch started. Mutations apply to this map in place.
	State() SubState

	// Commit invokes the named mutation from the action's namespace with
	// (state, args...) and returns its result. An unknown mutation name
	// is a no-op and returns nil.
	Commit(mutation string, args ...any) any

	// Dispatch re-enters the model's dispatch engine for another action.
	Dispatch(action string, args ...any) (*Result, error)

	// Service returns the dependency handle injected at model
	// construction, for side-effecting calls from within actions.
	Service() any
}

// ActionFunc is a caller-invocable operation scoped to one namespace.
// It may return a plain value, or a *Deferred to signal asynchronous
// completion.
type ActionFunc func(c Ctx, args ...any) (any, error)

// MutationFunc is a namespace-scoped state transition, invocable only by
// name from within an action's Ctx.
type MutationFunc func(state SubState, args ...any) any

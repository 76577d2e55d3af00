package statecraft

import (
	"time"

	"github.com/xraph/statecraft/id"
)

// Invocation describes one dispatch of an action against a namespace.
// It is the unit the middleware chain and lifecycle hooks key on.
type Invocation struct {
	// ID uniquely identifies this dispatch (prefix "disp").
	ID id.DispatchID

	// Model is the name of the model the action was dispatched on.
	Model string

	// Namespace is the sub-state region the action is routed to.
	Namespace string

	// Action is the dispatched action name.
	Action string

	// Args are the business arguments passed by the caller, without the
	// execution context.
	Args []any

	// BatchID is set when the invocation was collected by DispatchAll
	// (prefix "batch"). Nil outside a batch.
	BatchID id.BatchID

	// Timeout bounds the synchronous phase of the action. Zero means
	// no timeout.
	Timeout time.Duration
}

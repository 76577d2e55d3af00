package statecraft

import "time"

// Config holds configuration for a Model's dispatch engines.
type Config struct {
	// ActionTimeout bounds the synchronous phase of each action. Zero
	// means no timeout. Enforced by the Timeout middleware; the deadline
	// also propagates into the action's context.
	ActionTimeout time.Duration

	// StrictActions upgrades action-name collisions across namespaces
	// and mixins from silent last-wins overwrite to a construction error.
	StrictActions bool

	// MaxBatch caps the number of dispatches collected by DispatchAll.
	// Zero means unlimited.
	MaxBatch int
}

// DefaultConfig returns a Config with permissive defaults: no timeout,
// silent collision overwrite, unlimited batches.
func DefaultConfig() Config {
	return Config{
		ActionTimeout: 0,
		StrictActions: false,
		MaxBatch:      0,
	}
}

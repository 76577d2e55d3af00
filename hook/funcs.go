package hook

import (
	"context"

	"github.com/xraph/statecraft"
)

// DispatchStartedFunc adapts a bare function into a named hook that
// implements DispatchStarted. Model.BeforeDispatch is built on this.
type DispatchStartedFunc struct {
	HookName string
	Fn       func(ctx context.Context, inv *statecraft.Invocation) error
}

// Name implements Hook.
func (f DispatchStartedFunc) Name() string { return f.HookName }

// OnDispatchStarted implements DispatchStarted.
func (f DispatchStartedFunc) OnDispatchStarted(ctx context.Context, inv *statecraft.Invocation) error {
	return f.Fn(ctx, inv)
}

// DispatchFailedFunc adapts a bare function into a named hook that
// implements DispatchFailed.
type DispatchFailedFunc struct {
	HookName string
	Fn       func(ctx context.Context, inv *statecraft.Invocation, err error) error
}

// Name implements Hook.
func (f DispatchFailedFunc) Name() string { return f.HookName }

// OnDispatchFailed implements DispatchFailed.
func (f DispatchFailedFunc) OnDispatchFailed(ctx context.Context, inv *statecraft.Invocation, err error) error {
	return f.Fn(ctx, inv, err)
}

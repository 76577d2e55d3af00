package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/id"
)

// actionCtx is the restricted execution context handed to actions. It
// implements statecraft.Ctx.
type actionCtx struct {
	ctx       context.Context
	m         *Model
	namespace string
	state     statecraft.SubState
}

func (c *actionCtx) Context() context.Context { return c.ctx }

func (c *actionCtx) Namespace() string { return c.namespace }

func (c *actionCtx) State() statecraft.SubState { return c.state }

// Commit invokes the named mutation from the action's namespace with
// (state, args...). An unknown mutation name is a no-op, not an error.
func (c *actionCtx) Commit(mutation string, args ...any) any {
	fn, ok := c.m.mutations[c.namespace][mutation]
	if !ok {
		c.m.logger.Debug("unknown mutation",
			slog.String("model", c.m.name),
			slog.String("namespace", c.namespace),
			slog.String("mutation", mutation),
		)
		return nil
	}
	return fn(c.state, args...)
}

// Dispatch re-enters the model's dispatch engine.
func (c *actionCtx) Dispatch(action string, args ...any) (*statecraft.Result, error) {
	return c.m.Dispatch(c.ctx, action, args...)
}

func (c *actionCtx) Service() any { return c.m.service }

// Dispatch routes the action to its namespace, snapshots that one
// namespace, and executes the action against the restricted context.
//
// An unknown action name fails with ErrActionNotFound. An action error
// propagates unchanged. The returned Result is settled for synchronous
// actions and pending for actions that returned a *Deferred; in both
// cases Await yields the namespace-scoped snapshot taken here.
func (m *Model) Dispatch(ctx context.Context, action string, args ...any) (*statecraft.Result, error) {
	ns, ok := m.actionIndex[action]
	if !ok {
		return nil, fmt.Errorf("model %s: dispatch %q: %w", m.name, action, statecraft.ErrActionNotFound)
	}

	inv := &statecraft.Invocation{
		ID:        id.NewDispatchID(),
		Model:     m.name,
		Namespace: ns,
		Action:    action,
		Args:      args,
		Timeout:   m.cfg.ActionTimeout,
	}
	snap := m.State(ns)

	res, err := m.run(ctx, inv, snap)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// run fires the before-dispatch broadcast, executes the action through
// the middleware chain, and wraps the outcome in a Result. Shared by
// Dispatch and DispatchAll.
func (m *Model) run(ctx context.Context, inv *statecraft.Invocation, snap statecraft.Snapshot) (*statecraft.Result, error) {
	fn := m.actions[inv.Namespace][inv.Action]
	c := &actionCtx{ctx: ctx, m: m, namespace: inv.Namespace, state: snap[inv.Namespace]}

	for _, h := range m.beforeHandlers() {
		h(inv.Namespace, inv.Action, inv.Args)
	}
	m.hooks.EmitDispatchStarted(ctx, inv)

	start := time.Now()
	out, err := m.invoke(ctx, inv, c, fn)
	if err != nil {
		m.hooks.EmitDispatchFailed(ctx, inv, err)
		return nil, err
	}

	if d, ok := out.(*statecraft.Deferred); ok {
		m.watchDeferred(ctx, inv, d, start)
		return statecraft.NewResult(inv, snap, nil, d), nil
	}

	m.hooks.EmitDispatchCompleted(ctx, inv, time.Since(start))
	return statecraft.NewResult(inv, snap, out, nil), nil
}

// invoke executes the action through the middleware chain. The context
// seen by the action is the innermost one, including any timeout wrap
// applied by middleware.
func (m *Model) invoke(ctx context.Context, inv *statecraft.Invocation, c *actionCtx, fn statecraft.ActionFunc) (any, error) {
	handler := func(hctx context.Context) (any, error) {
		c.ctx = hctx
		return fn(c, inv.Args...)
	}

	if m.mw != nil {
		return m.mw(ctx, inv, handler)
	}
	return handler(ctx)
}

// watchDeferred emits the completion or failure event once the action's
// Deferred settles.
func (m *Model) watchDeferred(ctx context.Context, inv *statecraft.Invocation, d *statecraft.Deferred, start time.Time) {
	go func() {
		<-d.Done()
		if err := d.Err(); err != nil {
			m.hooks.EmitDispatchFailed(ctx, inv, err)
			return
		}
		m.hooks.EmitDispatchCompleted(ctx, inv, time.Since(start))
	}()
}

package model

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/id"
)

// Collector records one dispatch request during the collection phase of
// DispatchAll. It executes nothing.
type Collector func(action string, args ...any)

// DispatchAll runs a two-phase batch dispatch.
//
// The collection phase invokes collect synchronously with a Collector
// that only records (namespace, action, args) tuples and accumulates the
// set of namespaces touched; recorded order equals call order. After
// collection, one snapshot is taken covering exactly the union of
// touched namespaces, and every recorded action executes against its
// namespace's slice of that shared snapshot — actions targeting the same
// namespace observe and mutate the same sub-state maps.
//
// All actions are started, in record order, before any deferred result
// is awaited. One action's failure does not stop the others; the batch
// waits for every action to settle and then reports the first failure.
// On success the shared snapshot is returned.
func (m *Model) DispatchAll(ctx context.Context, collect func(d Collector)) (statecraft.Snapshot, error) {
	batchID := id.NewBatchID()

	var (
		entries  []*statecraft.Invocation
		nsOrder  []string
		routeErr error
	)
	nsSeen := make(map[string]struct{})

	record := func(action string, args ...any) {
		ns, ok := m.actionIndex[action]
		if !ok {
			if routeErr == nil {
				routeErr = fmt.Errorf("model %s: dispatch %q: %w", m.name, action, statecraft.ErrActionNotFound)
			}
			return
		}

		entries = append(entries, &statecraft.Invocation{
			ID:        id.NewDispatchID(),
			Model:     m.name,
			Namespace: ns,
			Action:    action,
			Args:      args,
			BatchID:   batchID,
			Timeout:   m.cfg.ActionTimeout,
		})
		if _, seen := nsSeen[ns]; !seen {
			nsSeen[ns] = struct{}{}
			nsOrder = append(nsOrder, ns)
		}
	}

	collect(record)

	if routeErr != nil {
		return nil, routeErr
	}
	if m.cfg.MaxBatch > 0 && len(entries) > m.cfg.MaxBatch {
		return nil, fmt.Errorf("model %s: %w: %d > %d", m.name, statecraft.ErrBatchLimit, len(entries), m.cfg.MaxBatch)
	}

	snap := m.State(nsOrder...)
	m.hooks.EmitBatchStarted(ctx, batchID, len(entries))
	start := time.Now()

	var g errgroup.Group
	var firstErr error
	for _, inv := range entries {
		res, err := m.run(ctx, inv, snap)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if d := res.Deferred(); d != nil {
			g.Go(func() error { return d.Wait(ctx) })
		}
	}

	waitErr := g.Wait()
	err := firstErr
	if err == nil {
		err = waitErr
	}
	if err != nil {
		m.hooks.EmitBatchFailed(ctx, batchID, err)
		return nil, err
	}

	m.hooks.EmitBatchCompleted(ctx, batchID, time.Since(start))
	return snap, nil
}

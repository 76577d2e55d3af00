package model

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/schema"
)

// compose builds the model's internal structures from the schema:
// property index, rule and binding copies, merged per-namespace
// action/mutation tables, the action reverse index, and the composed
// state factory. Everything is a fresh structure; the schema is only
// read.
func (m *Model) compose(s *schema.Schema) error {
	m.props = make(map[string]schema.Property, len(s.Properties))
	m.propOrder = make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		m.props[p.Name] = p
		m.propOrder = append(m.propOrder, p.Name)
	}

	m.rules = maps.Clone(s.Rules)

	if s.Binding != nil {
		m.binding = &schema.Binding{
			Model: s.Binding.Model,
			Props: maps.Clone(s.Binding.Props),
		}
	}

	// Merge namespace tables. Declared namespaces first, then mixins;
	// a mixin replaces a same-named namespace's tables entirely and
	// otherwise appends a new namespace.
	m.actions = make(map[string]map[string]statecraft.ActionFunc)
	m.mutations = make(map[string]map[string]statecraft.MutationFunc)
	m.nsOrder = nil
	known := make(map[string]struct{})

	for _, ns := range s.Namespaces {
		m.actions[ns.Name] = maps.Clone(ns.Actions)
		m.mutations[ns.Name] = maps.Clone(ns.Mutations)
		m.nsOrder = append(m.nsOrder, ns.Name)
		known[ns.Name] = struct{}{}
	}
	for _, mx := range s.Mixins {
		m.actions[mx.Name] = maps.Clone(mx.Actions)
		m.mutations[mx.Name] = maps.Clone(mx.Mutations)
		if _, ok := known[mx.Name]; !ok {
			m.nsOrder = append(m.nsOrder, mx.Name)
			known[mx.Name] = struct{}{}
		}
	}

	if err := m.buildActionIndex(); err != nil {
		return err
	}

	m.stateFn = composeStateFactory(s, m.nsOrder)
	return nil
}

// buildActionIndex maps every action name to the namespace that owns it.
// Namespaces are processed in composition order, so on a cross-namespace
// name collision the later namespace wins — unless strict mode turns the
// collision into an error.
func (m *Model) buildActionIndex() error {
	m.actionIndex = make(map[string]string)
	for _, ns := range m.nsOrder {
		for name := range m.actions[ns] {
			if prev, exists := m.actionIndex[name]; exists && prev != ns {
				if m.cfg.StrictActions {
					return fmt.Errorf("model %s: %w: %q declared in namespaces %s and %s",
						m.name, statecraft.ErrDuplicateAction, name, prev, ns)
				}
				m.logger.Debug("action name collision",
					slog.String("model", m.name),
					slog.String("action", name),
					slog.String("kept", ns),
					slog.String("shadowed", prev),
				)
			}
			m.actionIndex[name] = ns
		}
	}
	return nil
}

// composeStateFactory wraps the schema's state factory: it calls the
// root factory, overlays each mixin's state under the mixin's namespace
// key, and seeds every remaining known namespace with an empty sub-state so
// mutations always have a map to write into. Each call produces fresh
// maps.
func composeStateFactory(s *schema.Schema, nsOrder []string) func() statecraft.Snapshot {
	rootFn := s.State

	type mixinState struct {
		name string
		fn   statecraft.SubStateFactory
	}
	var mixins []mixinState
	for _, mx := range s.Mixins {
		if mx.State != nil {
			mixins = append(mixins, mixinState{name: mx.Name, fn: mx.State})
		}
	}

	known := make([]string, len(nsOrder))
	copy(known, nsOrder)

	return func() statecraft.Snapshot {
		snap := make(statecraft.Snapshot)
		if rootFn != nil {
			for ns, sub := range rootFn() {
				snap[ns] = sub
			}
		}
		for _, mx := range mixins {
			snap[mx.name] = mx.fn()
		}
		for _, ns := range known {
			if snap[ns] == nil {
				snap[ns] = statecraft.SubState{}
			}
		}
		return snap
	}
}

package model

import (
	"maps"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/schema"
)

// boundRemote returns the remote property name the local property maps
// to under the model's binding.
func (m *Model) boundRemote(local string) (string, bool) {
	if m.binding == nil {
		return "", false
	}
	remote, ok := m.binding.Props[local]
	return remote, ok
}

// PropRule resolves the validation rule for a property. The local rule
// wins key-by-key over the bound model's rule for the mapped remote
// property; with no local rule the remote rule is returned verbatim.
// Returns nil when neither side has a rule.
func (m *Model) PropRule(name string) statecraft.Rule {
	local := m.rules[name]

	if remoteName, bound := m.boundRemote(name); bound {
		if bm, ok := m.boundModel(); ok {
			return mergeRules(local, bm.PropRule(remoteName))
		}
	}

	return local
}

// PropLabel resolves the display label for a property: the non-empty
// local label, else the bound model's label for the mapped property,
// else "". Labels are never merged.
func (m *Model) PropLabel(name string) string {
	if p, ok := m.props[name]; ok && p.Label != "" {
		return p.Label
	}

	if remoteName, bound := m.boundRemote(name); bound {
		if bm, ok := m.boundModel(); ok {
			return bm.PropLabel(remoteName)
		}
	}

	return ""
}

// PropDefault resolves the default value for a property. The second
// return distinguishes an absent default from an explicit nil one.
//
// Priority: (1) an explicit default on the property, presence-checked so
// nil, false and zero still win; (2) for bound properties, the bound
// model's resolved default when present — bound properties never fall
// through to a type-derived default, even when the remote model is not
// registered; (3) a type-derived default: array types get an empty
// slice, String "", Number float64(0), Bool true. Other types resolve
// to absent.
func (m *Model) PropDefault(name string) (any, bool) {
	p, declared := m.props[name]
	if declared && p.HasDefault {
		return p.Default, true
	}

	if remoteName, bound := m.boundRemote(name); bound {
		if bm, ok := m.boundModel(); ok {
			if v, present := bm.PropDefault(remoteName); present {
				return v, true
			}
		}
		return nil, false
	}

	if !declared {
		return nil, false
	}
	return autoDefault(p.Type)
}

// Rules resolves validation rules for the named properties. With no
// arguments it covers all declared properties. Entries may be nil.
func (m *Model) Rules(names ...string) map[string]statecraft.Rule {
	if len(names) == 0 {
		names = m.propOrder
	}

	out := make(map[string]statecraft.Rule, len(names))
	for _, name := range names {
		out[name] = m.PropRule(name)
	}
	return out
}

// Labels returns the resolved labels of all declared properties, in
// declaration order.
func (m *Model) Labels() []string {
	out := make([]string, 0, len(m.propOrder))
	for _, name := range m.propOrder {
		out = append(out, m.PropLabel(name))
	}
	return out
}

// Defaults returns the resolved default for every declared property.
// Properties whose default resolves to absent map to nil.
func (m *Model) Defaults() map[string]any {
	out := make(map[string]any, len(m.propOrder))
	for _, name := range m.propOrder {
		v, _ := m.PropDefault(name)
		out[name] = v
	}
	return out
}

// mergeRules shallow-merges local over remote. Either side alone is
// returned verbatim; a merge produces a fresh map.
func mergeRules(local, remote statecraft.Rule) statecraft.Rule {
	if local == nil {
		return remote
	}
	if remote == nil {
		return local
	}

	merged := maps.Clone(remote)
	for k, v := range local {
		merged[k] = v
	}
	return merged
}

// autoDefault computes the type-derived fallback default. The Bool
// default is true, matching the container semantics this runtime
// implements.
func autoDefault(t schema.Type) (any, bool) {
	if t.Array {
		return []any{}, true
	}

	switch t.Kind {
	case schema.String:
		return "", true
	case schema.Number:
		return float64(0), true
	case schema.Bool:
		return true, true
	default:
		return nil, false
	}
}

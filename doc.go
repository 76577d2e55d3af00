// Package statecraft provides a declarative model/state-container runtime
// for Go. A Model is built from a Schema describing properties, validation
// rules, labels, default values, namespaced actions and mutations. The
// constructed Model resolves derived metadata (defaults, rules, labels)
// with inheritance through bindings to other registered models, and routes
// named actions to sub-state namespaces through a dispatch engine.
//
// Statecraft is designed as a library, not a service. Build a Schema,
// construct a Model, register it in a Registry, and dispatch actions as
// ordinary function calls.
//
// # Quick Start
//
//	reg := registry.New()
//	m, err := reg.RegisterSchema(cartSchema)
//	res, err := m.Dispatch(ctx, "addItem", "sku-1")
//	snap, err := res.Await(ctx)
//
// # Architecture
//
// The root statecraft package defines the leaf types shared by all
// subsystems (SubState, Snapshot, Rule, Ctx, Invocation, Deferred). The
// schema package holds declarative model definitions, the model package
// implements construction, attribute resolution and the dispatch engines,
// and the registry package provides the name-keyed lookup context that
// bindings resolve against. Cross-cutting behavior hangs off the hook and
// middleware packages.
//
// All dispatch invocation IDs use TypeID — type-prefixed, K-sortable,
// UUIDv7-based identifiers.
package statecraft

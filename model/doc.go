// Package model implements the statecraft runtime object: construction
// from a schema, mixin/namespace composition, attribute resolution with
// binding inheritance, and the dispatch engines.
//
// Construction composes fresh structures — the input schema is never
// mutated. For each namespace the composer merges declared and mixin
// action/mutation tables and builds a reverse index mapping every action
// name to the namespace that owns it; on cross-namespace collisions the
// later declaration wins unless strict mode is enabled.
//
// Binding lookups go through the Resolver interface at query time, not
// at construction time, so registration order between bound models is
// unconstrained and changes to the bound model are observed by
// subsequent calls. The registry package provides the usual Resolver.
package model

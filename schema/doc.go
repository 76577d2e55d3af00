// Package schema holds the declarative definitions a Model is built from:
// typed properties with labels and default values, validation rules,
// a binding to another model's properties, namespaced action and mutation
// tables, and mixins.
//
// Declaration order is semantic. Properties and Namespaces are slices, not
// maps: label order follows property declaration order, and on action-name
// collisions across namespaces the later declaration wins in the reverse
// index (unless strict mode upgrades collisions to an error).
//
// A Schema is immutable after construction by convention; model.New never
// writes into it and builds fresh composed structures instead.
package schema

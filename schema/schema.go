package schema

import (
	"fmt"

	"github.com/xraph/statecraft"
)

// Kind is the primitive marker for a property's type.
type Kind uint8

// Kind constants for all property types.
const (
	// Any carries no type-derived default.
	Any Kind = iota
	// String defaults to "".
	String
	// Number defaults to float64(0).
	Number
	// Bool defaults to true.
	Bool
	// Time carries no type-derived default.
	Time
)

// String returns the kind name for logging and error messages.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Time:
		return "time"
	default:
		return "any"
	}
}

// Type marks a property as a primitive or an array of a primitive.
type Type struct {
	Kind  Kind
	Array bool
}

// Of returns a primitive type marker.
func Of(k Kind) Type { return Type{Kind: k} }

// ArrayOf returns an array type marker. Array-typed properties default
// to an empty slice.
func ArrayOf(k Kind) Type { return Type{Kind: k, Array: true} }

// Property describes one model property. HasDefault distinguishes an
// explicitly declared default (even nil, false or zero) from an absent
// one; an explicit default always wins over binding and type fallbacks.
type Property struct {
	Name       string
	Type       Type
	Label      string
	Default    any
	HasDefault bool
}

// Prop returns a Property with the given name and type.
func Prop(name string, t Type) Property {
	return Property{Name: name, Type: t}
}

// WithLabel returns a copy of the property with its display label set.
func (p Property) WithLabel(label string) Property {
	p.Label = label
	return p
}

// WithDefault returns a copy of the property with an explicit default
// value. Passing nil still counts as an explicit default.
func (p Property) WithDefault(v any) Property {
	p.Default = v
	p.HasDefault = true
	return p
}

// Binding is a one-directional, lazily resolved reference from this
// model's properties to another model's properties. The bound model is
// looked up by name through a Resolver at query time, never at
// construction time, so registration order between bound models is
// unconstrained. An unregistered bound model degrades to "no remote
// metadata" rather than failing.
type Binding struct {
	// Model is the bound model's registered name.
	Model string

	// Props maps local property names to remote property names.
	Props map[string]string
}

// Namespace declares one sub-state region with its own action and
// mutation tables.
type Namespace struct {
	Name      string
	Actions   map[string]statecraft.ActionFunc
	Mutations map[string]statecraft.MutationFunc
}

// Mixin is a reusable bundle of state, actions and mutations merged into
// a model under its own namespace at construction time. A mixin whose
// name collides with a declared namespace replaces that namespace's
// tables entirely.
type Mixin struct {
	Name      string
	State     statecraft.SubStateFactory
	Actions   map[string]statecraft.ActionFunc
	Mutations map[string]statecraft.MutationFunc
}

// Schema is the full declarative input for model construction.
type Schema struct {
	// Name is the model's registry key.
	Name string

	// Properties, in declaration order.
	Properties []Property

	// Rules maps property names to validation rules. Rules are data;
	// statecraft never evaluates them.
	Rules map[string]statecraft.Rule

	// Binding inherits rules, labels and defaults from another model.
	Binding *Binding

	// State produces the model's own state slices, keyed by namespace.
	State statecraft.StateFactory

	// Namespaces, in declaration order. Order decides reverse-index
	// precedence on action-name collisions.
	Namespaces []Namespace

	// Mixins, in declaration order. Mixins are merged after Namespaces
	// and take precedence over a same-named namespace.
	Mixins []Mixin
}

// Property returns the declared property with the given name.
func (s *Schema) Property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyNames returns all declared property names in declaration order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	return names
}

// Validate checks the schema for construction-time errors: a missing
// model name, duplicate property, namespace or mixin names, nil action
// or mutation functions, and a binding without a model name. It does not
// check action-name collisions across namespaces; that is the composer's
// policy decision.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty model name", statecraft.ErrInvalidSchema)
	}

	seen := make(map[string]struct{}, len(s.Properties))
	for _, p := range s.Properties {
		if p.Name == "" {
			return fmt.Errorf("%w: model %s: empty property name", statecraft.ErrInvalidSchema, s.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: model %s: property %q", statecraft.ErrDuplicateProperty, s.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	if s.Binding != nil && s.Binding.Model == "" {
		return fmt.Errorf("%w: model %s: binding without a model name", statecraft.ErrInvalidSchema, s.Name)
	}

	nsSeen := make(map[string]struct{}, len(s.Namespaces))
	for _, ns := range s.Namespaces {
		if ns.Name == "" {
			return fmt.Errorf("%w: model %s: empty namespace name", statecraft.ErrInvalidSchema, s.Name)
		}
		if _, dup := nsSeen[ns.Name]; dup {
			return fmt.Errorf("%w: model %s: duplicate namespace %q", statecraft.ErrInvalidSchema, s.Name, ns.Name)
		}
		nsSeen[ns.Name] = struct{}{}

		if err := checkTables(s.Name, ns.Name, ns.Actions, ns.Mutations); err != nil {
			return err
		}
	}

	mixSeen := make(map[string]struct{}, len(s.Mixins))
	for _, mx := range s.Mixins {
		if mx.Name == "" {
			return fmt.Errorf("%w: model %s: empty mixin namespace", statecraft.ErrInvalidSchema, s.Name)
		}
		if _, dup := mixSeen[mx.Name]; dup {
			return fmt.Errorf("%w: model %s: duplicate mixin %q", statecraft.ErrInvalidSchema, s.Name, mx.Name)
		}
		mixSeen[mx.Name] = struct{}{}

		if err := checkTables(s.Name, mx.Name, mx.Actions, mx.Mutations); err != nil {
			return err
		}
	}

	return nil
}

func checkTables(model, ns string, actions map[string]statecraft.ActionFunc, mutations map[string]statecraft.MutationFunc) error {
	for name, fn := range actions {
		if fn == nil {
			return fmt.Errorf("%w: model %s: namespace %s: nil action %q", statecraft.ErrInvalidSchema, model, ns, name)
		}
	}
	for name, fn := range mutations {
		if fn == nil {
			return fmt.Errorf("%w: model %s: namespace %s: nil mutation %q", statecraft.ErrInvalidSchema, model, ns, name)
		}
	}
	return nil
}

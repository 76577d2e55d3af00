package schema_test

import (
	"errors"
	"testing"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/schema"
)

func noopAction(_ statecraft.Ctx, _ ...any) (any, error) { return nil, nil }

func TestValidate_OK(t *testing.T) {
	s := &schema.Schema{
		Name: "user",
		Properties: []schema.Property{
			schema.Prop("name", schema.Of(schema.String)).WithLabel("Name"),
			schema.Prop("age", schema.Of(schema.Number)).WithDefault(18),
			schema.Prop("tags", schema.ArrayOf(schema.String)),
		},
		Namespaces: []schema.Namespace{
			{
				Name:    "profile",
				Actions: map[string]statecraft.ActionFunc{"save": noopAction},
				Mutations: map[string]statecraft.MutationFunc{
					"setName": func(state statecraft.SubState, args ...any) any {
						state["name"] = args[0]
						return nil
					},
				},
			},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_EmptyName(t *testing.T) {
	s := &schema.Schema{}
	if err := s.Validate(); !errors.Is(err, statecraft.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestValidate_DuplicateProperty(t *testing.T) {
	s := &schema.Schema{
		Name: "dup",
		Properties: []schema.Property{
			schema.Prop("a", schema.Of(schema.String)),
			schema.Prop("a", schema.Of(schema.Number)),
		},
	}
	if err := s.Validate(); !errors.Is(err, statecraft.ErrDuplicateProperty) {
		t.Fatalf("expected ErrDuplicateProperty, got %v", err)
	}
}

func TestValidate_BindingWithoutModel(t *testing.T) {
	s := &schema.Schema{
		Name:    "bound",
		Binding: &schema.Binding{Props: map[string]string{"a": "b"}},
	}
	if err := s.Validate(); !errors.Is(err, statecraft.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestValidate_NilAction(t *testing.T) {
	s := &schema.Schema{
		Name: "nilfn",
		Namespaces: []schema.Namespace{
			{Name: "ns", Actions: map[string]statecraft.ActionFunc{"broken": nil}},
		},
	}
	if err := s.Validate(); !errors.Is(err, statecraft.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestValidate_DuplicateMixin(t *testing.T) {
	s := &schema.Schema{
		Name: "mixdup",
		Mixins: []schema.Mixin{
			{Name: "pager"},
			{Name: "pager"},
		},
	}
	if err := s.Validate(); !errors.Is(err, statecraft.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestProperty_Lookup(t *testing.T) {
	s := &schema.Schema{
		Name: "lookup",
		Properties: []schema.Property{
			schema.Prop("first", schema.Of(schema.String)),
			schema.Prop("second", schema.Of(schema.Bool)),
		},
	}

	p, ok := s.Property("second")
	if !ok {
		t.Fatal("expected property to be found")
	}
	if p.Type.Kind != schema.Bool {
		t.Errorf("Kind = %v, want Bool", p.Type.Kind)
	}

	if _, ok := s.Property("missing"); ok {
		t.Fatal("expected missing property to not be found")
	}

	names := s.PropertyNames()
	want := []string{"first", "second"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestWithDefault_NilIsExplicit(t *testing.T) {
	p := schema.Prop("opt", schema.Of(schema.Any)).WithDefault(nil)
	if !p.HasDefault {
		t.Fatal("explicit nil default must set HasDefault")
	}
	if p.Default != nil {
		t.Errorf("Default = %v, want nil", p.Default)
	}
}

package registry_test

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/hook"
	"github.com/xraph/statecraft/model"
	"github.com/xraph/statecraft/registry"
	"github.com/xraph/statecraft/schema"
)

func contactSchema() *schema.Schema {
	return &schema.Schema{
		Name: "contact",
		Properties: []schema.Property{
			schema.Prop("title", schema.Of(schema.String)).WithLabel("Title"),
		},
	}
}

func cardSchema() *schema.Schema {
	return &schema.Schema{
		Name: "card",
		Properties: []schema.Property{
			schema.Prop("heading", schema.Of(schema.String)),
		},
		Binding: &schema.Binding{
			Model: "contact",
			Props: map[string]string{"heading": "title"},
		},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := registry.New()

	m, err := r.RegisterSchema(contactSchema())
	if err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}

	got, ok := r.Get("contact")
	if !ok || got != m {
		t.Fatalf("Get(contact) = (%v, %v), want the registered model", got, ok)
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("Get on an unknown name must report absence")
	}
	if _, err := r.Require("nope"); !errors.Is(err, statecraft.ErrModelNotFound) {
		t.Errorf("Require(nope) = %v, want ErrModelNotFound", err)
	}
	if got, err := r.Require("contact"); err != nil || got != m {
		t.Errorf("Require(contact) = (%v, %v)", got, err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_SilentReplace(t *testing.T) {
	r := registry.New()

	first, err := r.RegisterSchema(contactSchema())
	if err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}
	second, err := r.RegisterSchema(contactSchema())
	if err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}

	got, _ := r.Get("contact")
	if got != second || got == first {
		t.Error("re-registration must replace the prior entry")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_SchemaErrorPropagates(t *testing.T) {
	r := registry.New()

	if _, err := r.RegisterSchema(&schema.Schema{}); err == nil {
		t.Fatal("expected invalid schema to fail registration")
	}
	if r.Len() != 0 {
		t.Error("failed registration must not leave an entry behind")
	}
}

func TestRegistry_LazyBindingAcrossRegistrationOrder(t *testing.T) {
	r := registry.New()

	// Register the dependent model first; its binding target does not
	// exist yet.
	card, err := r.RegisterSchema(cardSchema())
	if err != nil {
		t.Fatalf("RegisterSchema card: %v", err)
	}

	if got := card.PropLabel("heading"); got != "" {
		t.Errorf("label before remote registration = %q, want empty", got)
	}

	if _, err := r.RegisterSchema(contactSchema()); err != nil {
		t.Fatalf("RegisterSchema contact: %v", err)
	}

	// Binding lookups go through the registry at query time, so the new
	// registration is visible without touching the card model.
	if got := card.PropLabel("heading"); got != "Title" {
		t.Errorf("label after remote registration = %q, want Title", got)
	}
}

func TestRegistry_RegisterPointsResolverAtRegistry(t *testing.T) {
	r := registry.New()

	// A model built standalone, then handed to the registry.
	card, err := model.New(cardSchema())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Register(card)

	if _, err := r.RegisterSchema(contactSchema()); err != nil {
		t.Fatalf("RegisterSchema contact: %v", err)
	}
	if got := card.PropLabel("heading"); got != "Title" {
		t.Errorf("label = %q, want Title", got)
	}
}

func TestRegistry_UnregisterAndClose(t *testing.T) {
	r := registry.New()

	if _, err := r.RegisterSchema(contactSchema()); err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}
	card, err := r.RegisterSchema(cardSchema())
	if err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}

	if got := r.Names(); !reflect.DeepEqual(got, []string{"card", "contact"}) {
		t.Errorf("Names() = %v", got)
	}

	r.Unregister("contact")
	if _, ok := r.Get("contact"); ok {
		t.Error("unregistered model still resolvable")
	}

	// Binding degrades instead of failing.
	if got := card.PropLabel("heading"); got != "" {
		t.Errorf("label after unregister = %q, want empty", got)
	}

	// Unknown name is a no-op.
	r.Unregister("contact")

	r.Close()
	if r.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", r.Len())
	}
}

// lifecycleHook records model registration events.
type lifecycleHook struct {
	registered   []string
	unregistered []string
}

func (h *lifecycleHook) Name() string { return "lifecycle-recorder" }

func (h *lifecycleHook) OnModelRegistered(_ context.Context, name string) error {
	h.registered = append(h.registered, name)
	return nil
}

func (h *lifecycleHook) OnModelUnregistered(_ context.Context, name string) error {
	h.unregistered = append(h.unregistered, name)
	return nil
}

func TestRegistry_LifecycleHooks(t *testing.T) {
	hooks := hook.NewRegistry(slog.Default())
	rec := &lifecycleHook{}
	hooks.Register(rec)

	r := registry.New(registry.WithHooks(hooks))

	if _, err := r.RegisterSchema(contactSchema()); err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}
	if _, err := r.RegisterSchema(contactSchema()); err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}
	r.Unregister("contact")
	r.Unregister("contact") // no event for the unknown name

	if want := []string{"contact", "contact"}; !reflect.DeepEqual(rec.registered, want) {
		t.Errorf("registered = %v, want %v", rec.registered, want)
	}
	if want := []string{"contact"}; !reflect.DeepEqual(rec.unregistered, want) {
		t.Errorf("unregistered = %v, want %v", rec.unregistered, want)
	}
}

func TestRegistry_DispatchThroughRegisteredModel(t *testing.T) {
	r := registry.New()

	s := &schema.Schema{
		Name: "counter",
		State: func() statecraft.Snapshot {
			return statecraft.Snapshot{"main": {"n": 0}}
		},
		Namespaces: []schema.Namespace{
			{
				Name: "main",
				Actions: map[string]statecraft.ActionFunc{
					"bump": func(c statecraft.Ctx, _ ...any) (any, error) {
						return c.Commit("bump"), nil
					},
				},
				Mutations: map[string]statecraft.MutationFunc{
					"bump": func(state statecraft.SubState, _ ...any) any {
						state["n"] = state["n"].(int) + 1
						return state["n"]
					},
				},
			},
		},
	}
	m, err := r.RegisterSchema(s)
	if err != nil {
		t.Fatalf("RegisterSchema: %v", err)
	}

	res, err := m.Dispatch(context.Background(), "bump")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Value() != 1 {
		t.Errorf("Value() = %v, want 1", res.Value())
	}
}

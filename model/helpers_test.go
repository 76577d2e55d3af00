package model_test

import (
	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/model"
	"github.com/xraph/statecraft/schema"
)

// fakeResolver is a map-backed model.Resolver for binding tests that do
// not need a full registry.
type fakeResolver struct {
	models map[string]*model.Model
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{models: make(map[string]*model.Model)}
}

func (f *fakeResolver) add(m *model.Model) { f.models[m.Name()] = m }

func (f *fakeResolver) Resolve(name string) (*model.Model, bool) {
	m, ok := f.models[name]
	return m, ok
}

// counterSchema declares one "counter" namespace with a numeric count,
// an inc action that commits the add mutation, and a fail action.
func counterSchema(name string) *schema.Schema {
	return &schema.Schema{
		Name: name,
		State: func() statecraft.Snapshot {
			return statecraft.Snapshot{
				"counter": {"count": 0},
			}
		},
		Namespaces: []schema.Namespace{
			{
				Name: "counter",
				Actions: map[string]statecraft.ActionFunc{
					"inc": func(c statecraft.Ctx, args ...any) (any, error) {
						return c.Commit("add", args...), nil
					},
				},
				Mutations: map[string]statecraft.MutationFunc{
					"add": func(state statecraft.SubState, args ...any) any {
						n := 1
						if len(args) > 0 {
							n = args[0].(int)
						}
						state["count"] = state["count"].(int) + n
						return state["count"]
					},
				},
			},
		},
	}
}

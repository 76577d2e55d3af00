// Package registry provides the name-keyed lookup context that model
// bindings resolve against. A Registry is an explicit object with a
// documented lifecycle — created at application start, closed at
// shutdown or test teardown — not process-wide mutable state.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/hook"
	"github.com/xraph/statecraft/model"
	"github.com/xraph/statecraft/schema"
)

// Registry maps model names to constructed models. It is safe for
// concurrent use and implements model.Resolver, so registered models'
// bindings resolve through it lazily at query time.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*model.Model

	logger *slog.Logger
	hooks  *hook.Registry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the structured logger for the registry.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithHooks sets the hook registry notified of model registration
// lifecycle events.
func WithHooks(h *hook.Registry) Option {
	return func(r *Registry) {
		r.hooks = h
	}
}

// New creates an empty model registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		models: make(map[string]*model.Model),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.hooks == nil {
		r.hooks = hook.NewRegistry(r.logger)
	}
	return r
}

// Register stores a constructed model under its name, silently replacing
// any prior entry, and points the model's binding resolver at this
// registry.
func (r *Registry) Register(m *model.Model) {
	m.SetResolver(r)

	r.mu.Lock()
	if _, replaced := r.models[m.Name()]; replaced {
		r.logger.Debug("model replaced", slog.String("model", m.Name()))
	}
	r.models[m.Name()] = m
	r.mu.Unlock()

	r.hooks.EmitModelRegistered(context.Background(), m.Name())
}

// RegisterSchema constructs a model from the schema with this registry
// as its resolver, registers it, and returns it. This is the schema
// variant of Register.
func (r *Registry) RegisterSchema(s *schema.Schema, opts ...model.Option) (*model.Model, error) {
	opts = append(opts, model.WithResolver(r))
	m, err := model.New(s, opts...)
	if err != nil {
		return nil, err
	}

	r.Register(m)
	return m, nil
}

// Get returns the model registered under the given name.
func (r *Registry) Get(name string) (*model.Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	return m, ok
}

// Resolve implements model.Resolver.
func (r *Registry) Resolve(name string) (*model.Model, bool) {
	return r.Get(name)
}

// Require returns the model registered under the given name, or
// ErrModelNotFound. Use Get when absence is an expected outcome.
func (r *Registry) Require(name string) (*model.Model, error) {
	m, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("registry: %q: %w", name, statecraft.ErrModelNotFound)
	}
	return m, nil
}

// Unregister removes the model registered under the given name.
// Removing an unknown name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	_, ok := r.models[name]
	delete(r.models, name)
	r.mu.Unlock()

	if ok {
		r.hooks.EmitModelUnregistered(context.Background(), name)
	}
}

// Names returns all registered model names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// Close removes every registered model. Bindings against this registry
// degrade to "no remote metadata" afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	r.models = make(map[string]*model.Model)
	r.mu.Unlock()
}

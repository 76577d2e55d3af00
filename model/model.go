package model

import (
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/xraph/statecraft"
	"github.com/xraph/statecraft/hook"
	"github.com/xraph/statecraft/id"
	"github.com/xraph/statecraft/middleware"
	"github.com/xraph/statecraft/schema"
)

// Resolver resolves a model name to a live Model. The model uses it for
// lazy binding lookups; a registry implements it. A nil or failing
// resolver degrades binding resolution to "no remote metadata".
type Resolver interface {
	Resolve(name string) (*Model, bool)
}

// BeforeDispatchFunc is a broadcast listener invoked before every action
// runs, with the routed namespace, the action name, and the business
// arguments.
type BeforeDispatchFunc func(namespace, action string, args []any)

// Model is the constructed runtime object. It owns the composed
// action/mutation tables keyed by namespace, the action reverse index,
// and the composed state factory, and answers metadata queries through
// the attribute resolver.
//
// A Model is safe for concurrent dispatch. State snapshots are produced
// fresh per call; actions sharing a batch snapshot mutate the same
// sub-state maps without locking, which is a documented hazard of batch
// dispatch, not a serialization guarantee.
type Model struct {
	id   id.ModelID
	name string

	props     map[string]schema.Property
	propOrder []string
	rules     map[string]statecraft.Rule
	binding   *schema.Binding

	actions     map[string]map[string]statecraft.ActionFunc
	mutations   map[string]map[string]statecraft.MutationFunc
	nsOrder     []string
	actionIndex map[string]string

	stateFn func() statecraft.Snapshot

	service any
	logger  *slog.Logger
	hooks   *hook.Registry
	mwList  []middleware.Middleware
	mw      middleware.Middleware
	cfg     statecraft.Config

	mu       sync.RWMutex
	resolver Resolver
	before   []BeforeDispatchFunc
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the structured logger for the model.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithService injects the dependency handle exposed to actions via
// Ctx.Service.
func WithService(svc any) Option {
	return func(m *Model) {
		m.service = svc
	}
}

// WithResolver sets the resolver used for lazy binding lookups.
// Registering the model in a registry overrides this with the registry
// itself.
func WithResolver(r Resolver) Option {
	return func(m *Model) {
		m.resolver = r
	}
}

// WithHooks sets the lifecycle hook registry. If not set, the model
// creates an empty one.
func WithHooks(h *hook.Registry) Option {
	return func(m *Model) {
		m.hooks = h
	}
}

// WithMiddleware appends middleware to the model's action chain.
// Middleware wrap the synchronous phase of every dispatched action, in
// the order given.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(m *Model) {
		m.mwList = append(m.mwList, mws...)
	}
}

// WithConfig replaces the model's entire configuration.
func WithConfig(cfg statecraft.Config) Option {
	return func(m *Model) {
		m.cfg = cfg
	}
}

// WithActionTimeout bounds the synchronous phase of every action.
func WithActionTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.cfg.ActionTimeout = d
	}
}

// WithStrictActions upgrades action-name collisions across namespaces
// and mixins to a construction error.
func WithStrictActions() Option {
	return func(m *Model) {
		m.cfg.StrictActions = true
	}
}

// WithMaxBatch caps the number of dispatches DispatchAll will collect.
func WithMaxBatch(n int) Option {
	return func(m *Model) {
		m.cfg.MaxBatch = n
	}
}

// New constructs a Model from a schema. The schema is validated and then
// composed into fresh structures; it is never written to.
func New(s *schema.Schema, opts ...Option) (*Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		id:     id.NewModelID(),
		name:   s.Name,
		logger: slog.Default(),
		cfg:    statecraft.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.hooks == nil {
		m.hooks = hook.NewRegistry(m.logger)
	}

	if err := m.compose(s); err != nil {
		return nil, err
	}

	if len(m.mwList) > 0 {
		m.mw = middleware.Chain(m.mwList...)
	}

	return m, nil
}

// ID returns the model's unique identifier (prefix "mdl").
func (m *Model) ID() id.ModelID { return m.id }

// Name returns the model's registry key.
func (m *Model) Name() string { return m.name }

// Hooks returns the model's lifecycle hook registry.
func (m *Model) Hooks() *hook.Registry { return m.hooks }

// SetResolver replaces the model's binding resolver. Called by a
// registry when the model is registered.
func (m *Model) SetResolver(r Resolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolver = r
}

// BeforeDispatch registers a broadcast listener invoked before every
// action runs, in registration order. There is no unregistration
// primitive.
func (m *Model) BeforeDispatch(fn BeforeDispatchFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.before = append(m.before, fn)
}

// Namespaces returns the model's namespace names in composition order:
// declared namespaces first, then namespaces contributed by mixins.
func (m *Model) Namespaces() []string {
	out := make([]string, len(m.nsOrder))
	copy(out, m.nsOrder)
	return out
}

// HasAction reports whether the action name is routable on this model.
func (m *Model) HasAction(action string) bool {
	_, ok := m.actionIndex[action]
	return ok
}

// ActionNamespace returns the namespace the action name routes to.
func (m *Model) ActionNamespace(action string) (string, bool) {
	ns, ok := m.actionIndex[action]
	return ns, ok
}

// Actions returns a copy of the action table for the given namespace,
// for callers building external bindings. An unknown namespace yields
// nil.
func (m *Model) Actions(namespace string) map[string]statecraft.ActionFunc {
	return maps.Clone(m.actions[namespace])
}

// Mutations returns a copy of the mutation table for the given
// namespace. An unknown namespace yields nil.
func (m *Model) Mutations(namespace string) map[string]statecraft.MutationFunc {
	return maps.Clone(m.mutations[namespace])
}

// State invokes the composed state factory and returns a fresh snapshot.
// With no arguments it covers all namespaces; otherwise it is limited to
// the requested ones. Unknown namespace names are silently omitted.
// Snapshots are never memoized: two calls return structurally equal but
// distinct objects.
func (m *Model) State(namespaces ...string) statecraft.Snapshot {
	snap := m.stateFn()
	if len(namespaces) == 0 {
		return snap
	}

	out := make(statecraft.Snapshot, len(namespaces))
	for _, ns := range namespaces {
		if sub, ok := snap[ns]; ok {
			out[ns] = sub
		}
	}
	return out
}

func (m *Model) boundModel() (*Model, bool) {
	if m.binding == nil {
		return nil, false
	}

	m.mu.RLock()
	r := m.resolver
	m.mu.RUnlock()

	if r == nil {
		return nil, false
	}
	return r.Resolve(m.binding.Model)
}

func (m *Model) beforeHandlers() []BeforeDispatchFunc {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]BeforeDispatchFunc, len(m.before))
	copy(out, m.before)
	return out
}

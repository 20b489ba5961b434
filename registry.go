package wiretree

import (
	"log/slog"
	"reflect"
	"sync"
)

// Registry is the process-wide mapping from struct types to their own
// (non-merged) class descriptors. It is populated lazily: asking for an
// unregistered type transparently creates and stores an empty default
// descriptor rather than failing.
//
// The intended lifecycle is two-phase: register during initialization,
// then read. Mutation is guarded by a read-write lock so that a host
// that registers lazily does not corrupt the maps, but interleaving
// registration with active conversion is not supported.
type Registry struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	classes map[reflect.Type]*ClassDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:  slog.New(slog.DiscardHandler),
		classes: make(map[reflect.Type]*ClassDescriptor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type RegistryOption func(*Registry)

// WithLogger lets the registry emit debug records for registration and
// resolution. Silent by default.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Clone returns a registry with a copy of every registration, useful
// for deriving an isolated registry in tests.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewRegistry(WithLogger(r.logger))
	for t, d := range r.classes {
		clone.classes[t] = d.clone()
	}
	return clone
}

// Descriptor returns the type's own descriptor, creating and storing an
// empty one if the type has never been registered.
func (r *Registry) Descriptor(prototype any) (*ClassDescriptor, error) {
	t, err := structTypeOf(prototype)
	if err != nil {
		return nil, err
	}
	return r.descriptorFor(t), nil
}

func (r *Registry) descriptorFor(t reflect.Type) *ClassDescriptor {
	r.mu.RLock()
	d, ok := r.classes[t]
	r.mu.RUnlock()
	if ok {
		return d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok = r.classes[t]; ok {
		return d
	}
	d = NewClassDescriptor()
	r.classes[t] = d
	return d
}

// Set overwrites the type's own descriptor, used when registration
// order requires replacing the default.
func (r *Registry) Set(prototype any, d *ClassDescriptor) error {
	t, err := structTypeOf(prototype)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[t] = d
	return nil
}

// ClassOption configures a type registration.
type ClassOption func(*ClassDescriptor)

// WithPostConstructHook registers a hook invoked with the fully
// populated instance after deserialization.
func WithPostConstructHook(fn HookFunc) ClassOption {
	return func(d *ClassDescriptor) {
		d.hook = fn
	}
}

// WithConstructionFactory registers the factory producing new, empty
// instances of the type. Factories never apply to derived types.
func WithConstructionFactory(fn FactoryFunc) ClassOption {
	return func(d *ClassDescriptor) {
		d.factory = fn
	}
}

// WithParent pins the type's ancestor explicitly, overriding the chain
// reflected from anonymous embedded struct fields.
func WithParent(prototype any) ClassOption {
	t, err := structTypeOf(prototype)
	if err != nil {
		panic(err)
	}
	return func(d *ClassDescriptor) {
		d.parent = t
	}
}

// RegisterClass records type-level metadata. It is idempotent per type:
// options apply onto the existing descriptor, and omitted options leave
// earlier registrations (or defaults) in place.
func (r *Registry) RegisterClass(prototype any, opts ...ClassOption) error {
	t, err := structTypeOf(prototype)
	if err != nil {
		return err
	}
	d := r.descriptorFor(t)
	r.mu.Lock()
	for _, opt := range opts {
		opt(d)
	}
	r.mu.Unlock()
	r.logger.Debug("registered class", "type", typeName(t))
	return nil
}

// MustRegisterClass is RegisterClass, panicking on configuration errors.
func (r *Registry) MustRegisterClass(prototype any, opts ...ClassOption) {
	if err := r.RegisterClass(prototype, opts...); err != nil {
		panic(err)
	}
}

// PropertyOption configures a field registration.
type PropertyOption func(*PropertyDescriptor)

// WithWireName overrides the key used in the serialized tree.
func WithWireName(wireName string) PropertyOption {
	return func(p *PropertyDescriptor) {
		p.WireName = wireName
	}
}

// WithScheme sets the field's value transform.
func WithScheme(s Scheme) PropertyOption {
	return func(p *PropertyDescriptor) {
		p.Scheme = s
	}
}

// WithDirections restricts the directions the field participates in.
func WithDirections(d Direction) PropertyOption {
	return func(p *PropertyDescriptor) {
		p.Directions = d
	}
}

// RegisterProperty creates or overwrites a field's property descriptor
// on the type's own descriptor. The field must exist on the struct
// (promoted fields from embedded ancestors count). A repeated
// registration starts from the previous descriptor, so options
// accumulate.
func (r *Registry) RegisterProperty(prototype any, fieldName string, opts ...PropertyOption) error {
	t, err := structTypeOf(prototype)
	if err != nil {
		return err
	}
	f, ok := t.FieldByName(fieldName)
	if !ok {
		return configErrorf("type %s has no field %q", typeName(t), fieldName)
	}
	if !f.IsExported() {
		return configErrorf("field %q of %s is not exported and cannot be converted", fieldName, typeName(t))
	}

	d := r.descriptorFor(t)
	r.mu.Lock()
	p, ok := d.PropertyNamed(fieldName)
	if !ok {
		p = PropertyDescriptor{Name: fieldName, WireName: fieldName, Directions: DirectionBoth}
	}
	for _, opt := range opts {
		opt(&p)
	}
	d.SetProperty(p)
	r.mu.Unlock()
	r.logger.Debug("registered property",
		"type", typeName(t), "field", fieldName, "wireName", p.WireName, "directions", p.Directions.String())
	return nil
}

// MustRegisterProperty is RegisterProperty, panicking on configuration
// errors.
func (r *Registry) MustRegisterProperty(prototype any, fieldName string, opts ...PropertyOption) {
	if err := r.RegisterProperty(prototype, fieldName, opts...); err != nil {
		panic(err)
	}
}

// SetPostConstructHook retrofits a hook onto an already registered
// type, for hosts that cannot supply closures at registration time.
func (r *Registry) SetPostConstructHook(prototype any, fn HookFunc) error {
	return r.RegisterClass(prototype, WithPostConstructHook(fn))
}

// SetConstructionFactory retrofits a construction factory onto an
// already registered type.
func (r *Registry) SetConstructionFactory(prototype any, fn FactoryFunc) error {
	return r.RegisterClass(prototype, WithConstructionFactory(fn))
}

package introspection

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LookupResult classifies a registry lookup for observers.
type LookupResult string

const (
	LookupHit   LookupResult = "hit"   // Served from the built cache
	LookupBuilt LookupResult = "built" // Built by this call or an in-flight one
	LookupMiss  LookupResult = "miss"  // No registration for the type
	LookupError LookupResult = "error" // The definition was rejected
)

// Observer receives registry events. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveLookup(typeName string, result LookupResult)
	ObserveBuild(typeName string, duration time.Duration, err error)
}

// Provider returns the generated definition of a type. It is called at most
// once per registry unless the registry is reset.
type Provider func() Definition

// Registry maps bean types to their introspections. Registration stores a
// lazy provider; the introspection is built on first lookup.
type Registry struct {
	mu        sync.RWMutex
	providers map[reflect.Type]*registration
	byName    map[string]reflect.Type

	// Built introspections (metadata never changes once built)
	built sync.Map // reflect.Type -> *Introspection
	group singleflight.Group
	seq   atomic.Uint64

	settings atomic.Pointer[settings]
}

type registration struct {
	key      string
	beanType reflect.Type
	provider Provider
}

type settings struct {
	logger   *zap.Logger
	observer Observer
}

// Option configures a Registry.
type Option func(*settings)

// WithLogger sets the registry logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver sets the registry observer
func WithObserver(observer Observer) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// Entry is a registered type in a registry snapshot.
type Entry struct {
	Name     string       // Type name without pointer indirection
	BeanType reflect.Type // Registered bean type
	Built    bool         // Whether the introspection has been built
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		providers: make(map[reflect.Type]*registration),
		byName:    make(map[string]reflect.Type),
	}
	r.Configure(opts...)
	return r
}

// Configure replaces the registry options
func (r *Registry) Configure(opts ...Option) {
	s := &settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	r.settings.Store(s)
}

// keyOf unwraps pointers so *T and T resolve to the same registration
func keyOf(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Register records a provider for beanType. This is called from generated
// init() functions.
func (r *Registry) Register(beanType reflect.Type, provider Provider) error {
	if beanType == nil {
		return fmt.Errorf("register: bean type is required")
	}
	if provider == nil {
		return fmt.Errorf("register %s: provider is required", beanType)
	}
	key := keyOf(beanType)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.providers[key]; ok {
		return &Error{
			Kind:     ErrAlreadyRegistered,
			BeanType: typeName(key),
			Message:  fmt.Sprintf("type already registered as %s", existing.beanType),
		}
	}
	r.providers[key] = &registration{
		key:      strconv.FormatUint(r.seq.Add(1), 10),
		beanType: beanType,
		provider: provider,
	}
	if _, taken := r.byName[typeName(key)]; !taken {
		r.byName[typeName(key)] = key
	}
	r.byName[qualifiedName(key)] = key

	r.settings.Load().logger.Debug("registered introspection",
		zap.String("type", typeName(key)),
		zap.Stringer("bean_type", beanType),
	)
	return nil
}

// MustRegister is Register that panics on error
func (r *Registry) MustRegister(beanType reflect.Type, provider Provider) {
	if err := r.Register(beanType, provider); err != nil {
		panic(err)
	}
}

// Lookup returns the introspection of t, building it on first use. Under
// concurrent first access only one build runs and every caller receives
// the same instance.
func (r *Registry) Lookup(t reflect.Type) (*Introspection, error) {
	if t == nil {
		return nil, newError(ErrNotIntrospected, "", "", "nil type")
	}
	key := keyOf(t)
	s := r.settings.Load()

	// Fast path: already built (no locks)
	if v, ok := r.built.Load(key); ok {
		r.observeLookup(s, key, LookupHit)
		return v.(*Introspection), nil
	}

	r.mu.RLock()
	reg, ok := r.providers[key]
	r.mu.RUnlock()
	if !ok {
		s.logger.Warn("no introspection registered", zap.Stringer("type", t))
		r.observeLookup(s, key, LookupMiss)
		return nil, newError(ErrNotIntrospected, typeName(key), "", "no introspection registered for %s", t)
	}

	v, err, _ := r.group.Do(reg.key, func() (any, error) {
		if v, ok := r.built.Load(key); ok {
			return v, nil
		}
		return r.build(s, key, reg)
	})
	if err != nil {
		r.observeLookup(s, key, LookupError)
		return nil, err
	}
	r.observeLookup(s, key, LookupBuilt)
	return v.(*Introspection), nil
}

func (r *Registry) build(s *settings, key reflect.Type, reg *registration) (*Introspection, error) {
	start := time.Now()
	def := reg.provider()
	if def.BeanType == nil {
		def.BeanType = reg.beanType
	}
	if keyOf(def.BeanType) != key {
		return nil, newError(ErrInvalidArgument, typeName(key), "", "provider returned a definition for %s", def.BeanType)
	}
	in, err := New(def)
	elapsed := time.Since(start)
	if s.observer != nil {
		s.observer.ObserveBuild(typeName(key), elapsed, err)
	}
	if err != nil {
		s.logger.Error("failed to build introspection", zap.String("type", typeName(key)), zap.Error(err))
		return nil, err
	}

	actual, _ := r.built.LoadOrStore(key, in)
	s.logger.Debug("built introspection",
		zap.String("type", in.Name()),
		zap.Int("properties", len(in.properties)),
		zap.Int("methods", len(in.methods)),
		zap.Duration("elapsed", elapsed),
	)
	return actual.(*Introspection), nil
}

func (r *Registry) observeLookup(s *settings, key reflect.Type, result LookupResult) {
	if s.observer != nil {
		s.observer.ObserveLookup(typeName(key), result)
	}
}

// Contains reports whether t is registered, without building it
func (r *Registry) Contains(t reflect.Type) bool {
	if t == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[keyOf(t)]
	return ok
}

// LookupByName finds an introspection by short ("samples.Point") or
// package-qualified name.
func (r *Registry) LookupByName(name string) (*Introspection, error) {
	r.mu.RLock()
	t, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, newError(ErrNotIntrospected, name, "", "no introspection registered with name %q", name)
	}
	return r.Lookup(t)
}

// Types returns the registered bean types sorted by name
func (r *Registry) Types() []reflect.Type {
	entries := r.Entries()
	types := make([]reflect.Type, len(entries))
	for i, e := range entries {
		types[i] = e.BeanType
	}
	return types
}

// Entries returns a snapshot of the registrations sorted by name
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.providers))
	for key, reg := range r.providers {
		_, built := r.built.Load(key)
		entries = append(entries, Entry{
			Name:     typeName(key),
			BeanType: reg.beanType,
			Built:    built,
		})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Len returns the number of registered types
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// Reset forgets every built introspection. Registrations are kept so that
// types registered from init() remain available (used for testing).
func (r *Registry) Reset() {
	r.built.Range(func(k, _ any) bool {
		r.built.Delete(k)
		return true
	})
}

// Global registry instance, populated by generated init() functions
var globalRegistry = NewRegistry()

// Default returns the process-wide registry
func Default() *Registry {
	return globalRegistry
}

// Register records a provider in the default registry
func Register(beanType reflect.Type, provider Provider) error {
	return globalRegistry.Register(beanType, provider)
}

// MustRegister records a provider in the default registry or panics
func MustRegister(beanType reflect.Type, provider Provider) {
	globalRegistry.MustRegister(beanType, provider)
}

// Lookup returns an introspection from the default registry
func Lookup(t reflect.Type) (*Introspection, error) {
	return globalRegistry.Lookup(t)
}

// LookupByName finds an introspection in the default registry by name
func LookupByName(name string) (*Introspection, error) {
	return globalRegistry.LookupByName(name)
}

// Contains reports whether t is registered in the default registry
func Contains(t reflect.Type) bool {
	return globalRegistry.Contains(t)
}

// Of returns the introspection of T from the default registry
func Of[T any]() (*Introspection, error) {
	return globalRegistry.Lookup(reflect.TypeFor[T]())
}

// MustOf is Of that panics when T is not introspected
func MustOf[T any]() *Introspection {
	in, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return in
}

// Configure replaces the default registry options
func Configure(opts ...Option) {
	globalRegistry.Configure(opts...)
}

// Reset forgets every introspection built by the default registry
func Reset() {
	globalRegistry.Reset()
}

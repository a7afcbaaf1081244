package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// MaxComponentTypes is the size of the registry's index space.
const MaxComponentTypes = 256

// BitIndex is the bit position assigned to a component type.
type BitIndex uint8

// None is the placeholder component type for an unused query slot.
// It is never registered and contributes an empty mask.
type None struct{}

var (
	ErrPlaceholderType = errors.New("placeholder type cannot be registered")
	ErrRegistryFull    = errors.New("component registry full")
)

var noneType = reflect.TypeOf(None{})

// Registry assigns stable bit indices to component types. Indices are handed
// out from a monotonically increasing counter and are never reused. A registry
// may be shared by any number of worlds; Register is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	ids  map[reflect.Type]BitIndex
	next int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStartIndex sets the first index the counter hands out.
func WithStartIndex(i BitIndex) RegistryOption {
	return func(r *Registry) {
		r.next = int(i)
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ids: make(map[reflect.Type]BitIndex, 16),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func typeOf[C any]() reflect.Type {
	return reflect.TypeOf((*C)(nil)).Elem()
}

// Register assigns the next free index to C. Registering a known type returns
// its existing index.
func Register[C any](r *Registry) (BitIndex, error) {
	return r.RegisterType(typeOf[C]())
}

// RegisterType is Register for a runtime type.
func (r *Registry) RegisterType(t reflect.Type) (BitIndex, error) {
	if t == nil || t == noneType {
		return 0, ErrPlaceholderType
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[t]; ok {
		return id, nil
	}
	if r.next >= MaxComponentTypes {
		return 0, fmt.Errorf("%w: cannot register %s", ErrRegistryFull, t)
	}
	id := BitIndex(r.next)
	r.ids[t] = id
	r.next++
	return id, nil
}

// ID returns the index assigned to t.
func (r *Registry) ID(t reflect.Type) (BitIndex, bool) {
	if t == nil || t == noneType {
		return 0, false
	}
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	return id, ok
}

// IDOf returns the index assigned to C.
func IDOf[C any](r *Registry) (BitIndex, bool) {
	return r.ID(typeOf[C]())
}

// MaskOf returns the single-bit mask for C, or the zero mask when C is not
// registered or its index does not fit in M.
func MaskOf[C any, M Mask[M]](r *Registry) M {
	return MaskOfType[M](r, typeOf[C]())
}

// MaskOfType is MaskOf for a runtime type.
func MaskOfType[M Mask[M]](r *Registry, t reflect.Type) M {
	id, ok := r.ID(t)
	if !ok {
		return Zero[M]()
	}
	m, err := MaskFor[M](int(id))
	if err != nil {
		return Zero[M]()
	}
	return m
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}

// Types returns the registered types ordered by index.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	types := make([]reflect.Type, 0, len(r.ids))
	for t := range r.ids {
		types = append(types, t)
	}
	ids := r.ids
	sort.Slice(types, func(i, j int) bool { return ids[types[i]] < ids[types[j]] })
	r.mu.RUnlock()
	return types
}

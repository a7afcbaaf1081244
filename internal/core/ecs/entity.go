package ecs

import (
	"errors"
	"reflect"
)

// ErrIDOverflow is returned once a world's id type has no unused values left.
var ErrIDOverflow = errors.New("entity id space exhausted")

// ID is the set of integer types usable as entity ids.
type ID interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Increment advances a counter and returns the new value. It refuses to wrap
// so that ids are never handed out twice.
func Increment[T ID](v *T) (T, error) {
	next := *v + 1
	if next == 0 {
		return *v, ErrIDOverflow
	}
	*v = next
	return next, nil
}

// Entity is an id, a component mask and the components it owns, in the order
// they were added. Entities are owned by their World.
type Entity[T ID, M Mask[M]] struct {
	id         T
	mask       M
	components []*Cell
}

func newEntity[T ID, M Mask[M]](id T) *Entity[T, M] {
	return &Entity[T, M]{id: id}
}

func (e *Entity[T, M]) ID() T    { return e.id }
func (e *Entity[T, M]) Mask() M  { return e.mask }
func (e *Entity[T, M]) Len() int { return len(e.components) }

// Cells returns the entity's component cells in insertion order.
func (e *Entity[T, M]) Cells() []*Cell {
	out := make([]*Cell, len(e.components))
	copy(out, e.components)
	return out
}

// add stores component if its type is registered and fits the mask width.
// Anything else is dropped; the caller only learns about it through the
// return value. Duplicate types are kept: the bit is set once and both
// values are stored.
func (e *Entity[T, M]) add(r *Registry, component any) bool {
	id, ok := r.ID(reflect.TypeOf(component))
	if !ok {
		return false
	}
	mask, err := e.mask.Set(int(id))
	if err != nil {
		return false
	}
	e.mask = mask
	e.components = append(e.components, newCell(component))
	return true
}

func (e *Entity[T, M]) addMany(r *Registry, components []any, dropped func(any)) {
	for _, c := range components {
		if !e.add(r, c) && dropped != nil {
			dropped(c)
		}
	}
}

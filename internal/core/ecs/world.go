package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/bitworld/bitworld/internal/core/event"
)

// World owns the entity store, the registered systems and the scheduling
// cursor. A World is not safe for concurrent use.
type World[T ID, M Mask[M]] struct {
	name         string
	counter      T
	entities     map[T]*Entity[T, M]
	systems      []System[T, M]
	cursor       int
	registry     *Registry
	bus          *event.Bus
	log          *zap.Logger
	despawnQueue []T
}

// PrimitiveWorld holds up to 255 entities over 8 component types.
type PrimitiveWorld = World[uint8, Mask8]

// StandardWorld uses 64-bit ids and 128 component types.
type StandardWorld = World[uint64, Mask128]

type worldOptions struct {
	registry *Registry
	bus      *event.Bus
	log      *zap.Logger
}

// WorldOption configures a World.
type WorldOption func(*worldOptions)

// WithRegistry shares r with the world. Without it the world gets its own.
func WithRegistry(r *Registry) WorldOption {
	return func(o *worldOptions) { o.registry = r }
}

// WithEventBus makes the world emit lifecycle events on b.
func WithEventBus(b *event.Bus) WorldOption {
	return func(o *worldOptions) { o.bus = b }
}

func WithLogger(log *zap.Logger) WorldOption {
	return func(o *worldOptions) { o.log = log }
}

func NewWorld[T ID, M Mask[M]](name string, opts ...WorldOption) *World[T, M] {
	o := worldOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return &World[T, M]{
		name:         name,
		entities:     make(map[T]*Entity[T, M], 256),
		systems:      make([]System[T, M], 0, 16),
		registry:     o.registry,
		bus:          o.bus,
		log:          o.log.With(zap.String("world", name)),
		despawnQueue: make([]T, 0, 64),
	}
}

func (w *World[T, M]) Name() string        { return w.name }
func (w *World[T, M]) Registry() *Registry { return w.registry }
func (w *World[T, M]) Len() int            { return len(w.entities) }

// Spawn creates an entity from components. Components whose type is not
// registered (or does not fit the mask width) are dropped without an error;
// they are only logged at debug level and reported on the event bus.
func (w *World[T, M]) Spawn(components ...any) (*Entity[T, M], error) {
	id, err := Increment(&w.counter)
	if err != nil {
		return nil, fmt.Errorf("spawn in world %q: %w", w.name, err)
	}
	e := newEntity[T, M](id)
	e.addMany(w.registry, components, func(c any) {
		w.dropped(id, c)
	})
	w.entities[id] = e
	event.Emit(w.bus, event.EntitySpawned{World: w.name, ID: uint64(id), Mask: e.mask.String()})
	return e, nil
}

// SpawnEmpty creates an entity with no components.
func (w *World[T, M]) SpawnEmpty() (*Entity[T, M], error) {
	return w.Spawn()
}

func (w *World[T, M]) dropped(id T, c any) {
	typ := fmt.Sprint(reflect.TypeOf(c))
	w.log.Debug("component dropped",
		zap.Uint64("entity", uint64(id)),
		zap.String("type", typ),
	)
	event.Emit(w.bus, event.ComponentDropped{World: w.name, ID: uint64(id), Type: typ})
}

// Despawn removes e from the world. Its id is never handed out again.
func (w *World[T, M]) Despawn(e *Entity[T, M]) bool {
	if e == nil {
		return false
	}
	return w.DespawnID(e.id)
}

func (w *World[T, M]) DespawnID(id T) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	event.Emit(w.bus, event.EntityDespawned{World: w.name, ID: uint64(id)})
	return true
}

// MarkForDespawn queues an entity for removal by FlushDespawns. Handlers use
// it to remove entities without disturbing the slice they were given.
func (w *World[T, M]) MarkForDespawn(id T) {
	w.despawnQueue = append(w.despawnQueue, id)
}

// FlushDespawns removes all queued entities and returns how many were live.
func (w *World[T, M]) FlushDespawns() int {
	n := 0
	for _, id := range w.despawnQueue {
		if w.DespawnID(id) {
			n++
		}
	}
	w.despawnQueue = w.despawnQueue[:0]
	if n > 0 {
		w.log.Debug("flushed despawns", zap.Int("count", n))
	}
	return n
}

// Entity looks up a live entity.
func (w *World[T, M]) Entity(id T) (*Entity[T, M], bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Query returns every entity whose mask overlaps mask in at least one bit.
// A mask built from several component types therefore matches entities that
// own ANY of them; use QueryAll to require all of them. The zero mask matches
// nothing. Order follows map iteration and is unspecified.
func (w *World[T, M]) Query(mask M) []*Entity[T, M] {
	var out []*Entity[T, M]
	w.Each(mask, func(e *Entity[T, M]) {
		out = append(out, e)
	})
	return out
}

// QueryAll returns every entity whose mask is a superset of mask. The zero
// mask matches every entity.
func (w *World[T, M]) QueryAll(mask M) []*Entity[T, M] {
	var out []*Entity[T, M]
	for _, e := range w.entities {
		if e.mask.ContainsAll(mask) {
			out = append(out, e)
		}
	}
	return out
}

// Each calls fn for every entity Query would return.
func (w *World[T, M]) Each(mask M, fn func(*Entity[T, M])) {
	for _, e := range w.entities {
		if e.mask.Contains(mask) {
			fn(e)
		}
	}
}

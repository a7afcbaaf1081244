package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in tick N are delivered
// in tick N+1, in emission order. SwapBuffers is called at tick start by
// EventDispatchSystem.
type Bus struct {
	mu       sync.Mutex // guards handlers; Subscribe may run on any goroutine
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 64),
		back:     make([]any, 0, 64),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event into the back buffer (readable next tick).
// Emitting on a nil bus is a no-op.
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers all front-buffer events to their subscribers and
// returns how many events were delivered to at least one handler.
func (b *Bus) DispatchAll() int {
	delivered := 0
	for _, ev := range b.front {
		b.mu.Lock()
		hs := b.handlers[reflect.TypeOf(ev)]
		b.mu.Unlock()
		for _, h := range hs {
			h(ev)
		}
		if len(hs) > 0 {
			delivered++
		}
	}
	return delivered
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int {
	return len(b.back)
}

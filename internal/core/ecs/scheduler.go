package ecs

// Handler receives the system's mask and the entities that matched it.
type Handler[T ID, M Mask[M]] func(mask M, entities []*Entity[T, M])

// System is an immutable (mask, handler) pair. All selects QueryAll matching
// instead of Query.
type System[T ID, M Mask[M]] struct {
	Mask    M
	Handler Handler[T, M]
	All     bool
}

// AddSystem appends a system. Systems are never removed.
func (w *World[T, M]) AddSystem(mask M, h Handler[T, M]) {
	w.systems = append(w.systems, System[T, M]{Mask: mask, Handler: h})
}

// AddSystemAll appends a system that only sees entities holding every bit of
// mask. A zero mask never matches.
func (w *World[T, M]) AddSystemAll(mask M, h Handler[T, M]) {
	w.systems = append(w.systems, System[T, M]{Mask: mask, Handler: h, All: true})
}

// Systems returns the number of registered systems.
func (w *World[T, M]) Systems() int { return len(w.systems) }

// Cursor returns the index of the system Run acts on.
func (w *World[T, M]) Cursor() int { return w.cursor }

// Next returns the system at the cursor. It never moves the cursor.
func (w *World[T, M]) Next() (System[T, M], bool) {
	if w.cursor < len(w.systems) {
		return w.systems[w.cursor], true
	}
	return System[T, M]{}, false
}

// Run executes the system at the cursor against the entities its mask
// matches. The handler is skipped when nothing matches. Run does not advance
// the cursor: calling it again runs the same system. It reports whether the
// handler was called.
func (w *World[T, M]) Run() bool {
	s, ok := w.Next()
	if !ok {
		return false
	}
	return w.run(s)
}

func (w *World[T, M]) run(s System[T, M]) bool {
	var matched []*Entity[T, M]
	switch {
	case !s.All:
		matched = w.Query(s.Mask)
	case !s.Mask.IsZero():
		matched = w.QueryAll(s.Mask)
	}
	if len(matched) == 0 {
		return false
	}
	s.Handler(s.Mask, matched)
	return true
}

// Advance moves the cursor to the next system. The cursor stops at
// Systems(); Advance returns false once it is there.
func (w *World[T, M]) Advance() bool {
	if w.cursor >= len(w.systems) {
		return false
	}
	w.cursor++
	return true
}

// Step runs the system at the cursor, then advances.
func (w *World[T, M]) Step() bool {
	ran := w.Run()
	w.Advance()
	return ran
}

// Rewind moves the cursor back to the first system.
func (w *World[T, M]) Rewind() { w.cursor = 0 }

// RunAll runs every system once, in registration order, without touching the
// cursor. It returns the number of handlers that were called.
func (w *World[T, M]) RunAll() int {
	ran := 0
	for _, s := range w.systems {
		if w.run(s) {
			ran++
		}
	}
	return ran
}

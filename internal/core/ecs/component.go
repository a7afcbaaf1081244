package ecs

// Get returns a copy of the first component of type C stored on e. A stored
// value of another type is reported as not present.
func Get[C any, T ID, M Mask[M]](e *Entity[T, M]) (C, bool) {
	want := typeOf[C]()
	for _, cell := range e.components {
		if !cell.holds(want) {
			continue
		}
		ref := cell.Borrow()
		v, ok := ref.Value().(C)
		ref.Release()
		if ok {
			return v, true
		}
	}
	var zero C
	return zero, false
}

// GetAll returns every stored component of type C, in insertion order.
func GetAll[C any, T ID, M Mask[M]](e *Entity[T, M]) []C {
	want := typeOf[C]()
	var out []C
	for _, cell := range e.components {
		if !cell.holds(want) {
			continue
		}
		ref := cell.Borrow()
		if v, ok := ref.Value().(C); ok {
			out = append(out, v)
		}
		ref.Release()
	}
	return out
}

// Modify runs fn on the first component of type C under an exclusive borrow
// and stores the result back. It returns false if e has no such component.
func Modify[C any, T ID, M Mask[M]](e *Entity[T, M], fn func(*C)) bool {
	want := typeOf[C]()
	for _, cell := range e.components {
		if !cell.holds(want) {
			continue
		}
		mut := cell.BorrowMut()
		v, ok := mut.Value().(C)
		if !ok {
			mut.Release()
			continue
		}
		defer mut.Release()
		fn(&v)
		return mut.Set(v) == nil
	}
	return false
}

// Has reports whether e's mask carries C's bit.
func Has[C any, T ID, M Mask[M]](r *Registry, e *Entity[T, M]) bool {
	return e.mask.Contains(MaskOf[C, M](r))
}

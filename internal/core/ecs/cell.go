package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
)

var (
	ErrAlreadyBorrowed = errors.New("component already borrowed")
	ErrTypeMismatch    = errors.New("component type mismatch")
)

const exclusive = -1

// BorrowError reports a conflicting access to a Cell. Borrow and BorrowMut
// panic with it; TryBorrow and TryBorrowMut return it.
type BorrowError struct {
	Type      reflect.Type
	Exclusive bool // true when the conflicting borrow is a write
}

func (e *BorrowError) Error() string {
	if e.Exclusive {
		return fmt.Sprintf("ecs: %s is mutably borrowed", e.Type)
	}
	return fmt.Sprintf("ecs: %s is already borrowed", e.Type)
}

func (e *BorrowError) Unwrap() error { return ErrAlreadyBorrowed }

// Cell holds one stored component behind a single-writer/multi-reader guard.
// Any number of Refs may be live at once, or exactly one RefMut.
type Cell struct {
	state atomic.Int32 // readers, or exclusive while a RefMut is live
	typ   reflect.Type
	value any
}

func newCell(v any) *Cell {
	return &Cell{typ: reflect.TypeOf(v), value: v}
}

// Type returns the concrete type of the stored component. It never changes.
func (c *Cell) Type() reflect.Type { return c.typ }

func (c *Cell) holds(t reflect.Type) bool {
	if c.typ == t {
		return true
	}
	return t != nil && c.typ != nil && t.Kind() == reflect.Interface && c.typ.Implements(t)
}

// Borrow takes a shared borrow. It panics while a RefMut is live.
func (c *Cell) Borrow() *Ref {
	r, err := c.TryBorrow()
	if err != nil {
		panic(err)
	}
	return r
}

func (c *Cell) TryBorrow() (*Ref, error) {
	for {
		s := c.state.Load()
		if s == exclusive {
			return nil, &BorrowError{Type: c.typ, Exclusive: true}
		}
		if c.state.CompareAndSwap(s, s+1) {
			return &Ref{cell: c}, nil
		}
	}
}

// BorrowMut takes the exclusive borrow. It panics while any other borrow is live.
func (c *Cell) BorrowMut() *RefMut {
	r, err := c.TryBorrowMut()
	if err != nil {
		panic(err)
	}
	return r
}

func (c *Cell) TryBorrowMut() (*RefMut, error) {
	if !c.state.CompareAndSwap(0, exclusive) {
		return nil, &BorrowError{Type: c.typ, Exclusive: c.state.Load() == exclusive}
	}
	return &RefMut{cell: c}, nil
}

// Ref is a live shared borrow.
type Ref struct {
	cell     *Cell
	released bool
}

func (r *Ref) Value() any { return r.cell.value }

// Release ends the borrow. Releasing twice is a no-op.
func (r *Ref) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.state.Add(-1)
}

// RefMut is a live exclusive borrow.
type RefMut struct {
	cell     *Cell
	released bool
}

func (r *RefMut) Value() any { return r.cell.value }

// Set replaces the stored value. The new value must have the cell's type so
// the owning entity's mask stays accurate.
func (r *RefMut) Set(v any) error {
	if r.released {
		return fmt.Errorf("set on released borrow of %s", r.cell.typ)
	}
	if reflect.TypeOf(v) != r.cell.typ {
		return fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, reflect.TypeOf(v), r.cell.typ)
	}
	r.cell.value = v
	return nil
}

// Release ends the borrow. Releasing twice is a no-op.
func (r *RefMut) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.state.Store(0)
}

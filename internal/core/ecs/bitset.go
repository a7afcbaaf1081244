package ecs

import (
	"errors"
	"fmt"
)

// ErrInvalidBitPosition is returned when a bit index does not fit the mask width.
var ErrInvalidBitPosition = errors.New("invalid bit position for mask width")

// Bit selects the state Update writes into a mask.
type Bit bool

const (
	BitOff Bit = false
	BitOn  Bit = true
)

// Mask is a fixed-width bit set. Masks are values: Set, Unset and Update
// return the updated copy and never touch the receiver.
//
// Contains is an any-overlap test ((m & other) != 0), not a subset test.
// Queries and the scheduler match with Contains; ContainsAll is the superset
// predicate used by World.QueryAll.
type Mask[M any] interface {
	comparable
	Width() int
	Set(bit int) (M, error)
	Unset(bit int) (M, error)
	Update(bit int, flag Bit) (M, error)
	Contains(other M) bool
	ContainsAll(other M) bool
	Union(other M) M
	IsZero() bool
	String() string
}

// Zero returns the empty mask.
func Zero[M Mask[M]]() M {
	var m M
	return m
}

// Reset returns the cleared mask. Masks are values, so it equals Zero.
func Reset[M Mask[M]]() M { return Zero[M]() }

// One returns the mask with only bit 0 set.
func One[M Mask[M]]() M {
	m, _ := Zero[M]().Set(0)
	return m
}

// MaskFor returns the single-bit mask 1 << i.
func MaskFor[M Mask[M]](i int) (M, error) {
	return Zero[M]().Set(i)
}

// Bits builds a mask from explicit bit positions.
func Bits[M Mask[M]](positions ...int) (M, error) {
	m := Zero[M]()
	for _, p := range positions {
		next, err := m.Set(p)
		if err != nil {
			return m, err
		}
		m = next
	}
	return m, nil
}

func checkBit(bit, width int) error {
	if bit < 0 || bit >= width {
		return fmt.Errorf("%w: bit %d, width %d", ErrInvalidBitPosition, bit, width)
	}
	return nil
}

func updateBit[M Mask[M]](m M, bit int, flag Bit) (M, error) {
	if flag == BitOn {
		return m.Set(bit)
	}
	return m.Unset(bit)
}

type word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func setWord[W word](w W, width, bit int) (W, error) {
	if err := checkBit(bit, width); err != nil {
		return w, err
	}
	return w | W(1)<<bit, nil
}

func unsetWord[W word](w W, width, bit int) (W, error) {
	if err := checkBit(bit, width); err != nil {
		return w, err
	}
	return w &^ (W(1) << bit), nil
}

// Mask8 covers 8 component types.
type Mask8 uint8

func (m Mask8) Width() int                              { return 8 }
func (m Mask8) Set(bit int) (Mask8, error)              { return setWord(m, 8, bit) }
func (m Mask8) Unset(bit int) (Mask8, error)            { return unsetWord(m, 8, bit) }
func (m Mask8) Update(bit int, flag Bit) (Mask8, error) { return updateBit(m, bit, flag) }
func (m Mask8) Contains(other Mask8) bool               { return m&other != 0 }
func (m Mask8) ContainsAll(other Mask8) bool            { return m&other == other }
func (m Mask8) Union(other Mask8) Mask8                 { return m | other }
func (m Mask8) IsZero() bool                            { return m == 0 }
func (m Mask8) String() string                          { return fmt.Sprintf("%08b", uint8(m)) }

// Mask16 covers 16 component types.
type Mask16 uint16

func (m Mask16) Width() int                               { return 16 }
func (m Mask16) Set(bit int) (Mask16, error)              { return setWord(m, 16, bit) }
func (m Mask16) Unset(bit int) (Mask16, error)            { return unsetWord(m, 16, bit) }
func (m Mask16) Update(bit int, flag Bit) (Mask16, error) { return updateBit(m, bit, flag) }
func (m Mask16) Contains(other Mask16) bool               { return m&other != 0 }
func (m Mask16) ContainsAll(other Mask16) bool            { return m&other == other }
func (m Mask16) Union(other Mask16) Mask16                { return m | other }
func (m Mask16) IsZero() bool                             { return m == 0 }
func (m Mask16) String() string                           { return fmt.Sprintf("%016b", uint16(m)) }

// Mask32 covers 32 component types.
type Mask32 uint32

func (m Mask32) Width() int                               { return 32 }
func (m Mask32) Set(bit int) (Mask32, error)              { return setWord(m, 32, bit) }
func (m Mask32) Unset(bit int) (Mask32, error)            { return unsetWord(m, 32, bit) }
func (m Mask32) Update(bit int, flag Bit) (Mask32, error) { return updateBit(m, bit, flag) }
func (m Mask32) Contains(other Mask32) bool               { return m&other != 0 }
func (m Mask32) ContainsAll(other Mask32) bool            { return m&other == other }
func (m Mask32) Union(other Mask32) Mask32                { return m | other }
func (m Mask32) IsZero() bool                             { return m == 0 }
func (m Mask32) String() string                           { return fmt.Sprintf("%032b", uint32(m)) }

// Mask64 covers 64 component types.
type Mask64 uint64

func (m Mask64) Width() int                               { return 64 }
func (m Mask64) Set(bit int) (Mask64, error)              { return setWord(m, 64, bit) }
func (m Mask64) Unset(bit int) (Mask64, error)            { return unsetWord(m, 64, bit) }
func (m Mask64) Update(bit int, flag Bit) (Mask64, error) { return updateBit(m, bit, flag) }
func (m Mask64) Contains(other Mask64) bool               { return m&other != 0 }
func (m Mask64) ContainsAll(other Mask64) bool            { return m&other == other }
func (m Mask64) Union(other Mask64) Mask64                { return m | other }
func (m Mask64) IsZero() bool                             { return m == 0 }
func (m Mask64) String() string                           { return fmt.Sprintf("%064b", uint64(m)) }

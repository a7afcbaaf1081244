package ecs

import (
	"fmt"

	"github.com/holiman/uint256"
	"lukechampine.com/uint128"
)

// Mask128 covers 128 component types.
type Mask128 struct {
	v uint128.Uint128
}

// NewMask128 builds a mask from its low and high 64-bit halves.
func NewMask128(lo, hi uint64) Mask128 {
	return Mask128{v: uint128.New(lo, hi)}
}

func (m Mask128) Width() int { return 128 }

func (m Mask128) Set(bit int) (Mask128, error) {
	if err := checkBit(bit, 128); err != nil {
		return m, err
	}
	return Mask128{v: m.v.Or(uint128.From64(1).Lsh(uint(bit)))}, nil
}

func (m Mask128) Unset(bit int) (Mask128, error) {
	if err := checkBit(bit, 128); err != nil {
		return m, err
	}
	single := uint128.From64(1).Lsh(uint(bit))
	return Mask128{v: m.v.And(single.Xor(uint128.Max))}, nil
}

func (m Mask128) Update(bit int, flag Bit) (Mask128, error) { return updateBit(m, bit, flag) }
func (m Mask128) Contains(other Mask128) bool               { return !m.v.And(other.v).IsZero() }
func (m Mask128) ContainsAll(other Mask128) bool            { return m.v.And(other.v).Equals(other.v) }
func (m Mask128) Union(other Mask128) Mask128               { return Mask128{v: m.v.Or(other.v)} }
func (m Mask128) IsZero() bool                              { return m.v.IsZero() }
func (m Mask128) Uint128() uint128.Uint128                  { return m.v }

func (m Mask128) String() string {
	return fmt.Sprintf("%064b%064b", m.v.Hi, m.v.Lo)
}

// Mask256 covers 256 component types, the registry's full index space.
type Mask256 struct {
	v uint256.Int
}

func (m Mask256) Width() int { return 256 }

func (m Mask256) Set(bit int) (Mask256, error) {
	if err := checkBit(bit, 256); err != nil {
		return m, err
	}
	var single uint256.Int
	single.Lsh(uint256.NewInt(1), uint(bit))
	m.v.Or(&m.v, &single)
	return m, nil
}

func (m Mask256) Unset(bit int) (Mask256, error) {
	if err := checkBit(bit, 256); err != nil {
		return m, err
	}
	var single uint256.Int
	single.Lsh(uint256.NewInt(1), uint(bit))
	single.Not(&single)
	m.v.And(&m.v, &single)
	return m, nil
}

func (m Mask256) Update(bit int, flag Bit) (Mask256, error) { return updateBit(m, bit, flag) }

func (m Mask256) Contains(other Mask256) bool {
	var and uint256.Int
	and.And(&m.v, &other.v)
	return !and.IsZero()
}

func (m Mask256) ContainsAll(other Mask256) bool {
	var and uint256.Int
	and.And(&m.v, &other.v)
	return and.Eq(&other.v)
}

func (m Mask256) Union(other Mask256) Mask256 {
	m.v.Or(&m.v, &other.v)
	return m
}

func (m Mask256) IsZero() bool { return m.v.IsZero() }

// String prints the most significant word first.
func (m Mask256) String() string {
	return fmt.Sprintf("%064b%064b%064b%064b", m.v[3], m.v[2], m.v[1], m.v[0])
}

package ecs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitworld/bitworld/internal/core/ecs"
)

func checkWidth[M ecs.Mask[M]](t *testing.T) {
	m := ecs.Zero[M]()
	width := m.Width()

	for bit := 0; bit < width; bit++ {
		set, err := m.Set(bit)
		require.NoError(t, err, "set bit %d", bit)
		assert.False(t, set.IsZero())

		single, err := ecs.MaskFor[M](bit)
		require.NoError(t, err)
		assert.Equal(t, single, set)
		assert.True(t, set.Contains(single))

		again, err := set.Set(bit)
		require.NoError(t, err)
		assert.Equal(t, set, again, "set is idempotent")

		cleared, err := set.Unset(bit)
		require.NoError(t, err, "unset bit %d", bit)
		assert.True(t, cleared.IsZero())
	}

	_, err := m.Set(width)
	assert.ErrorIs(t, err, ecs.ErrInvalidBitPosition)
	_, err = m.Unset(width)
	assert.ErrorIs(t, err, ecs.ErrInvalidBitPosition)
	_, err = m.Update(width, ecs.BitOn)
	assert.ErrorIs(t, err, ecs.ErrInvalidBitPosition)
	_, err = m.Set(-1)
	assert.ErrorIs(t, err, ecs.ErrInvalidBitPosition)
	_, err = ecs.MaskFor[M](width)
	assert.ErrorIs(t, err, ecs.ErrInvalidBitPosition)

	assert.Len(t, m.String(), width)
	assert.Equal(t, strings.Repeat("0", width-1)+"1", ecs.One[M]().String())
}

func TestMaskWidths(t *testing.T) {
	t.Run("8", checkWidth[ecs.Mask8])
	t.Run("16", checkWidth[ecs.Mask16])
	t.Run("32", checkWidth[ecs.Mask32])
	t.Run("64", checkWidth[ecs.Mask64])
	t.Run("128", checkWidth[ecs.Mask128])
	t.Run("256", checkWidth[ecs.Mask256])
}

func TestMask8SetBounds(t *testing.T) {
	var m ecs.Mask8
	_, err := m.Set(8)
	require.ErrorIs(t, err, ecs.ErrInvalidBitPosition)

	m, err = m.Set(7)
	require.NoError(t, err)
	assert.Equal(t, ecs.Mask8(0b1000_0000), m)
}

func TestSetUnsetWord(t *testing.T) {
	var flags ecs.Mask64
	flags, _ = flags.Set(0)
	assert.Equal(t, ecs.Mask64(1), flags)
	flags, _ = flags.Unset(0)
	assert.Equal(t, ecs.Mask64(0), flags)

	test := ecs.Mask64(1 << 27)
	test, _ = test.Unset(27)
	assert.True(t, test.IsZero())
	test, _ = test.Set(27)
	assert.Equal(t, ecs.Mask64(1<<27), test)
}

func TestUpdate(t *testing.T) {
	m, err := ecs.Mask16(0).Update(3, ecs.BitOn)
	require.NoError(t, err)
	assert.Equal(t, ecs.Mask16(0b1000), m)

	m, err = m.Update(3, ecs.BitOff)
	require.NoError(t, err)
	assert.True(t, m.IsZero())
}

func TestContainsIsAnyOverlap(t *testing.T) {
	entity := ecs.Mask8(0b10)
	query := ecs.Mask8(0b11)

	assert.True(t, entity.Contains(query), "one shared bit is enough")
	assert.False(t, entity.ContainsAll(query))
	assert.True(t, query.ContainsAll(entity))
	assert.False(t, entity.Contains(0b100))
	assert.False(t, entity.Contains(0), "zero mask overlaps nothing")
	assert.True(t, ecs.Mask64(2).Contains(2))
}

func TestBits(t *testing.T) {
	m, err := ecs.Bits[ecs.Mask8](0, 3)
	require.NoError(t, err)
	assert.Equal(t, ecs.Mask8(0b1001), m)
	assert.Equal(t, "00001001", m.String())

	_, err = ecs.Bits[ecs.Mask8](1, 8)
	assert.ErrorIs(t, err, ecs.ErrInvalidBitPosition)
}

func TestMask128Halves(t *testing.T) {
	m, err := ecs.Mask128{}.Set(100)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<36, m.Uint128().Hi)
	assert.Zero(t, m.Uint128().Lo)
	assert.Equal(t, ecs.NewMask128(0, 1<<36), m)

	low, _ := ecs.Mask128{}.Set(3)
	both := m.Union(low)
	assert.True(t, both.Contains(low))
	assert.True(t, both.ContainsAll(m.Union(low)))
	assert.False(t, low.Contains(m))
}

func TestMask256HighBits(t *testing.T) {
	m, err := ecs.Mask256{}.Set(200)
	require.NoError(t, err)
	s := m.String()
	assert.Equal(t, byte('1'), s[255-200])
	assert.Equal(t, 1, strings.Count(s, "1"))

	other, _ := ecs.Mask256{}.Set(201)
	assert.False(t, m.Contains(other))
	assert.True(t, m.Union(other).Contains(other))

	cleared, err := m.Unset(200)
	require.NoError(t, err)
	assert.True(t, cleared.IsZero())
}

func TestIncrement(t *testing.T) {
	var x uint32
	for want := uint32(1); want <= 3; want++ {
		got, err := ecs.Increment(&x)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want, x)
	}

	small := uint8(254)
	got, err := ecs.Increment(&small)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got)

	_, err = ecs.Increment(&small)
	assert.ErrorIs(t, err, ecs.ErrIDOverflow)
	assert.Equal(t, uint8(255), small, "counter does not wrap")
}

func TestReset(t *testing.T) {
	assert.True(t, ecs.Reset[ecs.Mask8]().IsZero())
	assert.Equal(t, ecs.Zero[ecs.Mask128](), ecs.Reset[ecs.Mask128]())
	assert.Equal(t, ecs.Zero[ecs.Mask256](), ecs.Reset[ecs.Mask256]())
}

package fraction

import (
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestOpenFromRaw(t *testing.T) {
	for r := 1; r < math.MaxUint8; r++ {
		o, err := OpenFromRaw(uint8(r))
		require.NoError(t, err)
		assert.Equal(t, uint8(r), o.Raw())
		assert.Equal(t, uint8(r), o.Closed().Raw())
	}

	_, err := OpenFromRaw(uint8(0))
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = OpenFromRaw(uint8(math.MaxUint8))
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = OpenFromRaw(uint64(math.MaxUint64))
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestOpen_ZeroValue(t *testing.T) {
	var o Open[uint16]
	assert.Equal(t, uint16(1), o.Raw())
	assert.Equal(t, OpenMin[uint16](), o)
	assert.Equal(t, uint16(math.MaxUint16-1), OpenMax[uint16]().Raw())
}

func TestOpenFromRatio(t *testing.T) {
	_, err := OpenFromRatio[uint32](0, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = OpenFromRatio[uint32](1, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = OpenFromRatio[uint32](3, 2)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = OpenFromRatio[uint32](-1, 2)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = OpenFromRatio[uint32](1, 0)
	assert.True(t, errors.Is(err, ErrZeroDenominator))

	o, err := OpenFromRatio[uint32](1, 2)
	require.NoError(t, err)
	closed, err := ClosedFromRatio[uint32](1, 2)
	require.NoError(t, err)
	assert.Equal(t, closed, o.Closed())
	assert.Equal(t, uint32(1<<31), o.Raw())
}

func TestOpenFromRatio_SnapsOffEndpoints(t *testing.T) {
	// 255 / 1000 rounds to 0
	o, err := OpenFromRatio[uint8](1, 1000)
	require.NoError(t, err)
	assert.Equal(t, OpenMin[uint8](), o)

	// 255 * 999 / 1000 rounds to 255
	o, err = OpenFromRatio[uint8](999, 1000)
	require.NoError(t, err)
	assert.Equal(t, OpenMax[uint8](), o)
}

func TestOpenFromRatioExact(t *testing.T) {
	o, err := OpenFromRatioExact[uint8](1, 5)
	require.NoError(t, err)
	assert.Equal(t, uint8(51), o.Raw())

	_, err = OpenFromRatioExact[uint8](1, 2)
	assert.True(t, errors.Is(err, ErrImprecise))

	_, err = OpenFromRatioExact[uint8](5, 5)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestOpenToRatio_RoundTrip(t *testing.T) {
	for r := 1; r < math.MaxUint8; r++ {
		o, err := OpenFromRaw(uint8(r))
		require.NoError(t, err)

		num, den, err := OpenToRatio[uint8](o)
		require.NoError(t, err)
		assert.NotEqual(t, uint8(0), num)
		assert.NotEqual(t, num, den)

		back, err := OpenFromRatio[uint8](num, den)
		require.NoError(t, err)
		assert.Equal(t, o, back)
	}
}

func TestOpenToRatio(t *testing.T) {
	o, err := OpenFromRatio[uint32](1, 2)
	require.NoError(t, err)

	num, den, err := OpenToRatio[uint8](o)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), num)
	assert.Equal(t, uint8(2), den)

	_, _, err = OpenToRatio[uint8](OpenMin[uint64]())
	assert.True(t, errors.Is(err, ErrImprecise))
}

func TestOpen_Compare(t *testing.T) {
	a, err := OpenFromRatio[uint16](1, 3)
	require.NoError(t, err)
	b, err := OpenFromRatio[uint16](2, 3)
	require.NoError(t, err)

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, a.Closed().Compare(b.Closed()), a.Compare(b))
}

func TestOpen_Complement(t *testing.T) {
	assert.Equal(t, OpenMax[uint8](), OpenMin[uint8]().Complement())
	assert.Equal(t, OpenMin[uint8](), OpenMax[uint8]().Complement())

	for r := 1; r < math.MaxUint8; r++ {
		o, err := OpenFromRaw(uint8(r))
		require.NoError(t, err)
		assert.Equal(t, o.Closed().Complement(), o.Complement().Closed())
	}
}

func TestOpen_Ratio(t *testing.T) {
	o, err := OpenFromRaw(uint8(85))
	require.NoError(t, err)
	num, den := o.Ratio()
	assert.Equal(t, uint8(1), num)
	assert.Equal(t, uint8(3), den)
}

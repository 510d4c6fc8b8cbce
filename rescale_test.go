package fraction

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestRescaleClosed(t *testing.T) {
	for r := 0; r <= math.MaxUint8; r++ {
		f := ClosedFromRaw(uint8(r))

		wide := RescaleClosed[uint16](f)
		assert.Equal(t, uint16(r*257), wide.Raw())
		assert.Equal(t, f, RescaleClosed[uint8](wide))

		assert.Equal(t, f, RescaleClosed[uint8](RescaleClosed[uint64](f)))
	}

	assert.True(t, RescaleClosed[uint64](ClosedOne[uint32]()).IsOne())
	assert.True(t, RescaleClosed[uint8](ClosedOne[uint64]()).IsOne())

	// 32768 * 255 / 65535 = 32768 / 257, just above 127.5
	assert.Equal(t, uint8(128), RescaleClosed[uint8](ClosedFromRaw(uint16(32768))).Raw())
}

func TestRescaleOpen(t *testing.T) {
	for r := 1; r < math.MaxUint8; r++ {
		o, err := OpenFromRaw(uint8(r))
		assert.NoError(t, err)
		assert.Equal(t, o, RescaleOpen[uint8](RescaleOpen[uint32](o)))
	}

	assert.Equal(t, OpenMin[uint8](), RescaleOpen[uint8](OpenMin[uint16]()))
	assert.Equal(t, OpenMax[uint8](), RescaleOpen[uint8](OpenMax[uint16]()))
}

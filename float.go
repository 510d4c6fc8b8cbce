package fraction

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
	"lukechampine.com/uint128"
	"math"
)

// roundFloat returns v * max rounded half to even, for v in [0,1].
// The float is decomposed into an integer mantissa and a power of two so the product is exact.
func roundFloat(v float64, max uint64) uint64 {
	if v == 0 {
		return 0
	}
	frac, exp := math.Frexp(v)
	mant := uint64(math.Ldexp(frac, 53))
	shift := uint(53 - exp)
	if shift >= 128 {
		return 0
	}

	p := uint128.From64(mant).Mul64(max)
	q := p.Rsh(shift)
	rem := p.Sub(q.Lsh(shift))
	half := uint128.From64(1).Lsh(shift - 1)
	switch rem.Cmp(half) {
	case 1:
		q = q.Add64(1)
	case 0:
		if q.Lo&1 == 1 {
			q = q.Add64(1)
		}
	}
	return q.Lo
}

// ClosedFromFloat64 creates a Closed from a float in [0,1].
// NaN and values outside the interval yield ErrOutOfRange.
func ClosedFromFloat64[I constraints.Unsigned](v float64) (Closed[I], error) {
	if !(v >= 0 && v <= 1) {
		return Closed[I]{}, errors.Wrapf(ErrOutOfRange, "float %v", v)
	}
	return Closed[I]{raw: I(roundFloat(v, maxRaw[I]()))}, nil
}

// ClosedFromFloat64Saturating is like ClosedFromFloat64 but clamps the value
// to [0,1]. NaN becomes 0.
func ClosedFromFloat64Saturating[I constraints.Unsigned](v float64) Closed[I] {
	switch {
	case v > 1:
		return ClosedOne[I]()
	case !(v > 0):
		return Closed[I]{}
	}
	return Closed[I]{raw: I(roundFloat(v, maxRaw[I]()))}
}

// ClosedFromPercent creates a Closed from a percentage in [0,100].
func ClosedFromPercent[I constraints.Unsigned](percent float64) (Closed[I], error) {
	f, err := ClosedFromFloat64[I](percent / 100)
	if err != nil {
		return Closed[I]{}, errors.Wrapf(err, "percentage %v", percent)
	}
	return f, nil
}

// ClosedFromPercentSaturating is like ClosedFromPercent but clamps the percentage
// to [0,100]. NaN becomes 0.
func ClosedFromPercentSaturating[I constraints.Unsigned](percent float64) Closed[I] {
	return ClosedFromFloat64Saturating[I](percent / 100)
}

// OpenFromFloat64 creates an Open from a float strictly between 0 and 1.
// Values rounding onto an endpoint are moved to the nearest valid value.
func OpenFromFloat64[I constraints.Unsigned](v float64) (Open[I], error) {
	if !(v > 0 && v < 1) {
		return Open[I]{}, errors.Wrapf(ErrOutOfRange, "float %v", v)
	}
	max := maxRaw[I]()
	return Open[I]{offset: I(snapInterior(roundFloat(v, max), max) - 1)}, nil
}

// Float64 returns the value as a float.
func (f Closed[I]) Float64() float64 {
	return float64(f.raw) / float64(^I(0))
}

// Percent returns the value as a percentage.
func (f Closed[I]) Percent() float64 {
	return f.Float64() * 100
}

// OpenFromFloat64Saturating is like OpenFromFloat64 but clamps the value
// to [OpenMin, OpenMax]. NaN becomes OpenMin.
func OpenFromFloat64Saturating[I constraints.Unsigned](v float64) Open[I] {
	switch {
	case v >= 1:
		return OpenMax[I]()
	case !(v > 0):
		return OpenMin[I]()
	}
	max := maxRaw[I]()
	return Open[I]{offset: I(snapInterior(roundFloat(v, max), max) - 1)}
}

// Float64 returns the value as a float.
func (o Open[I]) Float64() float64 {
	return o.Closed().Float64()
}

// Percent returns the value as a percentage.
func (o Open[I]) Percent() float64 {
	return o.Float64() * 100
}

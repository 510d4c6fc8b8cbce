package fraction

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Closed is a fraction between 0 and 1 (inclusive).
//
// The fraction is stored as a single raw integer: the value is raw / MAX(I), so the raw
// value 0 represents 0 and the maximum value of I represents 1. Every raw value is a valid
// Closed, and the zero value is the fraction 0.
type Closed[I constraints.Unsigned] struct {
	raw I
}

// ClosedFromRaw wraps a raw representation. It never fails.
func ClosedFromRaw[I constraints.Unsigned](raw I) Closed[I] {
	return Closed[I]{raw: raw}
}

// ClosedZero returns the fraction 0.
func ClosedZero[I constraints.Unsigned]() Closed[I] {
	return Closed[I]{}
}

// ClosedOne returns the fraction 1.
func ClosedOne[I constraints.Unsigned]() Closed[I] {
	return Closed[I]{raw: ^I(0)}
}

// ClosedFromRatio creates a Closed from a numerator and a denominator.
// The ratio must be in [0,1]. Ratios between two raw values are rounded to the
// nearest one, ties to even.
func ClosedFromRatio[I constraints.Unsigned, N constraints.Integer](num, den N) (Closed[I], error) {
	n, d, err := unitRatio(num, den)
	if err != nil {
		return Closed[I]{}, err
	}
	raw, _ := toRaw(n, d, maxRaw[I]())
	return Closed[I]{raw: I(raw)}, nil
}

// ClosedFromRatioExact is like ClosedFromRatio but fails with ErrImprecise
// instead of rounding.
func ClosedFromRatioExact[I constraints.Unsigned, N constraints.Integer](num, den N) (Closed[I], error) {
	n, d, err := unitRatio(num, den)
	if err != nil {
		return Closed[I]{}, err
	}
	raw, exact := toRaw(n, d, maxRaw[I]())
	if !exact {
		return Closed[I]{}, errors.Wrapf(ErrImprecise, "ratio %d/%d over %d", num, den, maxRaw[I]())
	}
	return Closed[I]{raw: I(raw)}, nil
}

// ClosedFromRatioSaturating is like ClosedFromRatio, but negative ratios saturate
// to 0 and ratios greater than one saturate to 1.
// Only a zero denominator is an error.
func ClosedFromRatioSaturating[I constraints.Unsigned, N constraints.Integer](num, den N) (Closed[I], error) {
	if den == 0 {
		return Closed[I]{}, errors.Wrapf(ErrZeroDenominator, "ratio %d/%d", num, den)
	}
	n, negNum := magnitude(num)
	d, negDen := magnitude(den)
	switch {
	case n == 0:
		return Closed[I]{}, nil
	case negNum != negDen:
		return Closed[I]{}, nil
	case n >= d:
		return ClosedOne[I](), nil
	}
	raw, _ := toRaw(n, d, maxRaw[I]())
	return Closed[I]{raw: I(raw)}, nil
}

// ClosedFromRational is ClosedFromRatio for a Rational.
func ClosedFromRational[I constraints.Unsigned, N constraints.Integer](r Rational[N]) (Closed[I], error) {
	return ClosedFromRatio[I](r.Numerator, r.Denominator)
}

// ClosedToRatio returns a numerator and denominator of type N for f.
//
// If the reduced ratio of f fits in N it is returned as is. Otherwise the result is the
// closest continued fraction approximation that fits in N and still converts back to f
// with ClosedFromRatio. When no such ratio exists, ErrImprecise is returned. The
// conversion always succeeds when N can hold the maximum value of I.
func ClosedToRatio[N constraints.Integer, I constraints.Unsigned](f Closed[I]) (N, N, error) {
	return toRatio[N](uint64(f.raw), maxRaw[I](), false)
}

// Raw returns the raw representation.
func (f Closed[I]) Raw() I {
	return f.raw
}

// Ratio returns the exact reduced ratio of f in its own integer type.
func (f Closed[I]) Ratio() (num I, den I) {
	max := ^I(0)
	g := I(gcd(uint64(f.raw), uint64(max)))
	return f.raw / g, max / g
}

// Open converts f to an Open. The endpoints 0 and 1 yield ErrOutOfRange.
func (f Closed[I]) Open() (Open[I], error) {
	return OpenFromRaw(f.raw)
}

// IsZero ...
func (f Closed[I]) IsZero() bool {
	return f.raw == 0
}

// IsOne ...
func (f Closed[I]) IsOne() bool {
	return f.raw == ^I(0)
}

// Compare returns -1, 0 or +1 depending on whether f is less than, equal to or greater than other.
func (f Closed[I]) Compare(other Closed[I]) int {
	switch {
	case f.raw < other.raw:
		return -1
	case f.raw > other.raw:
		return 1
	}
	return 0
}

// Less ...
func (f Closed[I]) Less(other Closed[I]) bool {
	return f.raw < other.raw
}

// Complement returns 1 - f. It is exact.
func (f Closed[I]) Complement() Closed[I] {
	return Closed[I]{raw: ^I(0) - f.raw}
}

// Mul returns f * other, rounded half to even.
func (f Closed[I]) Mul(other Closed[I]) Closed[I] {
	raw, _, _ := mulDiv(uint64(f.raw), uint64(other.raw), maxRaw[I]())
	return Closed[I]{raw: I(raw)}
}

// Add returns f + other, or ErrOverflow if the sum is greater than one.
func (f Closed[I]) Add(other Closed[I]) (Closed[I], error) {
	sum := f.raw + other.raw
	if sum < f.raw {
		return Closed[I]{}, errors.Wrapf(ErrOverflow, "%d + %d over %d", f.raw, other.raw, ^I(0))
	}
	return Closed[I]{raw: sum}, nil
}

// Sub returns f - other, or ErrOverflow if the difference is less than zero.
func (f Closed[I]) Sub(other Closed[I]) (Closed[I], error) {
	if other.raw > f.raw {
		return Closed[I]{}, errors.Wrapf(ErrOverflow, "%d - %d is negative", f.raw, other.raw)
	}
	return Closed[I]{raw: f.raw - other.raw}, nil
}

// SaturatingAdd returns f + other, limited to one.
func (f Closed[I]) SaturatingAdd(other Closed[I]) Closed[I] {
	sum := f.raw + other.raw
	if sum < f.raw {
		return ClosedOne[I]()
	}
	return Closed[I]{raw: sum}
}

// SaturatingSub returns f - other, limited to zero.
func (f Closed[I]) SaturatingSub(other Closed[I]) Closed[I] {
	if other.raw > f.raw {
		return Closed[I]{}
	}
	return Closed[I]{raw: f.raw - other.raw}
}

// Scale returns q * f rounded half to even. The result never overflows since
// its magnitude is at most the magnitude of q.
func Scale[N constraints.Integer, I constraints.Unsigned](f Closed[I], q N) N {
	m, negative := magnitude(q)
	scaled, _, _ := mulDiv(m, uint64(f.raw), maxRaw[I]())
	return fromMagnitude[N](scaled, negative)
}

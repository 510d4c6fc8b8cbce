package fraction

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Open is a fraction between 0 and 1 (exclusive).
//
// It uses the same scale as Closed, so its raw value r represents r / MAX(I), but only
// the raw values 1 to MAX(I)-1 are valid. The field keeps raw-1, which makes the zero
// value of Open the smallest positive fraction 1/MAX(I).
type Open[I constraints.Unsigned] struct {
	offset I
}

// OpenFromRaw creates an Open from a raw representation.
// The raw values 0 and MAX(I) map to the endpoints and yield ErrOutOfRange.
func OpenFromRaw[I constraints.Unsigned](raw I) (Open[I], error) {
	if raw == 0 || raw == ^I(0) {
		return Open[I]{}, errors.Wrapf(ErrOutOfRange, "raw value %d is an endpoint", raw)
	}
	return Open[I]{offset: raw - 1}, nil
}

// OpenMin returns the smallest Open value, 1/MAX(I).
func OpenMin[I constraints.Unsigned]() Open[I] {
	return Open[I]{}
}

// OpenMax returns the largest Open value, (MAX(I)-1)/MAX(I).
func OpenMax[I constraints.Unsigned]() Open[I] {
	return Open[I]{offset: ^I(0) - 2}
}

func openRatio[N constraints.Integer](num, den N) (uint64, uint64, error) {
	n, d, err := unitRatio(num, den)
	if err != nil {
		return 0, 0, err
	}
	if n == 0 || n == d {
		return 0, 0, errors.Wrapf(ErrOutOfRange, "ratio %d/%d is an endpoint", num, den)
	}
	return n, d, nil
}

// OpenFromRatio creates an Open from a numerator and a denominator.
//
// The ratio must be strictly between 0 and 1. It is rounded to the nearest raw value,
// ties to even. Since the ratio itself is never an endpoint, a result rounding onto 0 or 1
// is moved to the nearest valid value instead.
func OpenFromRatio[I constraints.Unsigned, N constraints.Integer](num, den N) (Open[I], error) {
	n, d, err := openRatio(num, den)
	if err != nil {
		return Open[I]{}, err
	}
	max := maxRaw[I]()
	raw, _ := toRaw(n, d, max)
	return Open[I]{offset: I(snapInterior(raw, max) - 1)}, nil
}

// OpenFromRatioExact is like OpenFromRatio but fails with ErrImprecise
// instead of rounding.
func OpenFromRatioExact[I constraints.Unsigned, N constraints.Integer](num, den N) (Open[I], error) {
	n, d, err := openRatio(num, den)
	if err != nil {
		return Open[I]{}, err
	}
	raw, exact := toRaw(n, d, maxRaw[I]())
	if !exact {
		return Open[I]{}, errors.Wrapf(ErrImprecise, "ratio %d/%d over %d", num, den, maxRaw[I]())
	}
	return Open[I]{offset: I(raw - 1)}, nil
}

// OpenFromRational is OpenFromRatio for a Rational.
func OpenFromRational[I constraints.Unsigned, N constraints.Integer](r Rational[N]) (Open[I], error) {
	return OpenFromRatio[I](r.Numerator, r.Denominator)
}

// OpenToRatio returns a numerator and denominator of type N for o.
// It follows the rules of ClosedToRatio, and the ratio is always strictly between 0 and 1.
func OpenToRatio[N constraints.Integer, I constraints.Unsigned](o Open[I]) (N, N, error) {
	return toRatio[N](uint64(o.Raw()), maxRaw[I](), true)
}

// Raw returns the raw representation, in 1 to MAX(I)-1.
func (o Open[I]) Raw() I {
	return o.offset + 1
}

// Ratio returns the exact reduced ratio of o in its own integer type.
func (o Open[I]) Ratio() (num I, den I) {
	return o.Closed().Ratio()
}

// Closed converts o to a Closed. It is lossless.
func (o Open[I]) Closed() Closed[I] {
	return Closed[I]{raw: o.Raw()}
}

// Compare ...
func (o Open[I]) Compare(other Open[I]) int {
	switch {
	case o.offset < other.offset:
		return -1
	case o.offset > other.offset:
		return 1
	}
	return 0
}

// Less ...
func (o Open[I]) Less(other Open[I]) bool {
	return o.offset < other.offset
}

// Complement returns 1 - o, which is always open as well.
func (o Open[I]) Complement() Open[I] {
	return Open[I]{offset: ^I(0) - o.Raw() - 1}
}

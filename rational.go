package fraction

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
	"lukechampine.com/uint128"
	"strconv"
	"strings"
)

// Rational ...
type Rational[N constraints.Integer] struct {
	Numerator   N
	Denominator N
}

// NewRational ...
func NewRational[N constraints.Integer](numerator N, denominator N) Rational[N] {
	return Rational[N]{
		Numerator:   numerator,
		Denominator: denominator,
	}
}

// ParseRational parses a ratio written as "n/d".
func ParseRational[N constraints.Integer](s string) (Rational[N], error) {
	numText, denText, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return Rational[N]{}, errors.Wrapf(ErrSyntax, "%q is not a ratio", s)
	}
	num, err := parseInteger[N](strings.TrimSpace(numText))
	if err != nil {
		return Rational[N]{}, errors.Wrapf(err, "numerator of %q", s)
	}
	den, err := parseInteger[N](strings.TrimSpace(denText))
	if err != nil {
		return Rational[N]{}, errors.Wrapf(err, "denominator of %q", s)
	}
	return NewRational(num, den), nil
}

func parseInteger[N constraints.Integer](s string) (N, error) {
	var zero N
	bits := bitSize[N]()
	if isSigned[N]() {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return zero, errors.Mark(errors.Wrapf(err, "parse %q", s), ErrSyntax)
		}
		return N(v), nil
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return zero, errors.Mark(errors.Wrapf(err, "parse %q", s), ErrSyntax)
	}
	return N(v), nil
}

// String returns the ratio as "n/d".
func (r Rational[N]) String() string {
	return formatInteger(r.Numerator) + "/" + formatInteger(r.Denominator)
}

func formatInteger[N constraints.Integer](v N) string {
	m, negative := magnitude(v)
	if negative {
		return "-" + strconv.FormatUint(m, 10)
	}
	return strconv.FormatUint(m, 10)
}

// Scale returns v * Numerator / Denominator rounded half to even.
// It fails with ErrOverflow when the result does not fit in N.
func (r Rational[N]) Scale(v N) (N, error) {
	if r.Denominator == 0 {
		return 0, errors.Wrapf(ErrZeroDenominator, "scale %d by %s", v, r)
	}
	vm, negV := magnitude(v)
	nm, negN := magnitude(r.Numerator)
	dm, negD := magnitude(r.Denominator)

	negative := negV != negN != negD
	q, _, ok := mulDiv(vm, nm, dm)
	if q == 0 {
		negative = false
	}

	bound := limit[N]()
	if negative && isSigned[N]() {
		bound++
	}
	if !ok || q > bound {
		return 0, errors.Wrapf(ErrOverflow, "scale %d by %s", v, r)
	}
	return fromMagnitude[N](q, negative), nil
}

// Compare compares two ratios by cross-multiplication.
// Both denominators must be non-zero.
func (r Rational[N]) Compare(other Rational[N]) (int, error) {
	if r.Denominator == 0 || other.Denominator == 0 {
		return 0, errors.Wrapf(ErrZeroDenominator, "compare %s with %s", r, other)
	}
	a, aSign := signedMagnitudes(r)
	b, bSign := signedMagnitudes(other)
	if aSign != bSign {
		if aSign < bSign {
			return -1, nil
		}
		return 1, nil
	}

	// |a.n| * |b.d| against |b.n| * |a.d|
	left := uint128.From64(a[0]).Mul64(b[1])
	right := uint128.From64(b[0]).Mul64(a[1])
	return left.Cmp(right) * aSign, nil
}

// signedMagnitudes returns the magnitudes of numerator and denominator and the sign of r.
func signedMagnitudes[N constraints.Integer](r Rational[N]) ([2]uint64, int) {
	n, negN := magnitude(r.Numerator)
	d, negD := magnitude(r.Denominator)
	switch {
	case n == 0:
		return [2]uint64{0, d}, 0
	case negN != negD:
		return [2]uint64{n, d}, -1
	}
	return [2]uint64{n, d}, 1
}

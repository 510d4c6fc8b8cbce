package fraction

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
	"lukechampine.com/uint128"
	"math"
	"unsafe"
)

// maxRaw returns MAX(I), the raw value that represents one.
func maxRaw[I constraints.Unsigned]() uint64 {
	return uint64(^I(0))
}

func isSigned[N constraints.Integer]() bool {
	var zero N
	return ^zero < zero
}

func bitSize[N constraints.Integer]() int {
	var zero N
	return int(unsafe.Sizeof(zero) * 8)
}

// limit returns the largest non-negative value of N.
func limit[N constraints.Integer]() uint64 {
	if isSigned[N]() {
		return ^uint64(0) >> (65 - bitSize[N]())
	}
	return ^uint64(0) >> (64 - bitSize[N]())
}

// magnitude splits v into its absolute value and sign.
// The most negative value of a signed type is handled by the uint64 wrap around.
func magnitude[N constraints.Integer](v N) (uint64, bool) {
	if v < 0 {
		return -uint64(v), true
	}
	return uint64(v), false
}

// fromMagnitude is the inverse of magnitude. The caller guarantees the result fits N.
func fromMagnitude[N constraints.Integer](m uint64, negative bool) N {
	if negative {
		return -N(m)
	}
	return N(m)
}

// unitRatio validates num/den as a ratio in [0,1] and returns both magnitudes.
func unitRatio[N constraints.Integer](num, den N) (uint64, uint64, error) {
	if den == 0 {
		return 0, 0, errors.Wrapf(ErrZeroDenominator, "ratio %d/%d", num, den)
	}
	n, negNum := magnitude(num)
	d, negDen := magnitude(den)
	if n != 0 && negNum != negDen {
		return 0, 0, errors.Wrapf(ErrOutOfRange, "ratio %d/%d is negative", num, den)
	}
	if n > d {
		return 0, 0, errors.Wrapf(ErrOutOfRange, "ratio %d/%d is greater than one", num, den)
	}
	return n, d, nil
}

// mulDiv computes a*b/d with a 128-bit intermediate, rounding half to even.
// exact reports a zero remainder, ok reports that the quotient fits in 64 bits.
func mulDiv(a, b, d uint64) (q uint64, exact bool, ok bool) {
	quo, rem := uint128.From64(a).Mul64(b).QuoRem64(d)
	if quo.Hi != 0 {
		return 0, false, false
	}
	q = quo.Lo
	if rem == 0 {
		return q, true, true
	}
	if half := d - rem; rem > half || (rem == half && q&1 == 1) {
		if q == math.MaxUint64 {
			return 0, false, false
		}
		q++
	}
	return q, false, true
}

// toRaw maps the unit ratio n/d (n <= d) to the nearest raw value over max.
func toRaw(n, d, max uint64) (uint64, bool) {
	raw, exact, _ := mulDiv(n, max, d)
	return raw, exact
}

// snapInterior moves the endpoints 0 and max to the closest interior raw value.
func snapInterior(raw, max uint64) uint64 {
	switch raw {
	case 0:
		return 1
	case max:
		return max - 1
	}
	return raw
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// approximate walks the continued fraction convergents of p/q (p <= q, reduced).
// It returns p/q itself when its denominator fits in l. Otherwise it offers the last
// convergent that fits and then the largest semiconvergent that fits, and returns the
// first one accepted.
func approximate(p, q, l uint64, accept func(num, den uint64) bool) (uint64, uint64, bool) {
	h0, h1 := uint64(0), uint64(1)
	k0, k1 := uint64(1), uint64(0)

	for q != 0 {
		a := p / q
		if k1 != 0 && a > (l-k0)/k1 {
			if accept(h1, k1) {
				return h1, k1, true
			}
			if t := (l - k0) / k1; t > 0 {
				h, k := t*h1+h0, t*k1+k0
				if accept(h, k) {
					return h, k, true
				}
			}
			return 0, 0, false
		}

		p, q = q, p%q
		h0, h1 = h1, a*h1+h0
		k0, k1 = k1, a*k1+k0
	}
	return h1, k1, true
}

// toRatio finds a ratio of type N mapping back to raw over max.
// With open set, candidates must lie strictly inside (0,1).
func toRatio[N constraints.Integer](raw, max uint64, open bool) (N, N, error) {
	accept := func(n, d uint64) bool {
		if open && (n == 0 || n == d) {
			return false
		}
		r, _ := toRaw(n, d, max)
		if open {
			r = snapInterior(r, max)
		}
		return r == raw
	}

	g := gcd(raw, max)
	n, d, ok := approximate(raw/g, max/g, limit[N](), accept)
	if !ok {
		return 0, 0, errors.Wrapf(ErrImprecise, "raw value %d/%d has no equivalent %T ratio", raw, max, N(0))
	}
	return N(n), N(d), nil
}

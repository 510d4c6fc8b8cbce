package fraction

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
	"math/big"
	"strconv"
	"strings"
)

// maxPlaces bounds the search for the shortest decimal. 20 places already
// separate every raw value of a 64-bit fraction.
const maxPlaces = 24

// maxExponent bounds the magnitude of the decimal exponent accepted by the parsers.
const maxExponent = 4 * maxPlaces

var (
	ratOne     = big.NewRat(1, 1)
	ratHundred = big.NewRat(100, 1)
	bigTen     = big.NewInt(10)
)

func ratOf(raw, max uint64) *big.Rat {
	return new(big.Rat).SetFrac(new(big.Int).SetUint64(raw), new(big.Int).SetUint64(max))
}

// roundRat rounds a non-negative r to the nearest integer, ties to even.
func roundRat(r *big.Rat) *big.Int {
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	m.Lsh(m, 1)
	if c := m.Cmp(r.Denom()); c > 0 || (c == 0 && q.Bit(0) == 1) {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// scaledDecimal returns raw/max rounded half to even at the given number of places.
func scaledDecimal(raw, max uint64, places int32) decimal.Decimal {
	r := ratOf(raw, max)
	scale := new(big.Int).Exp(bigTen, big.NewInt(int64(places)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	return decimal.NewFromBigInt(roundRat(r), -places)
}

// rawFromRat maps r in [0,1] to the nearest raw value over max.
func rawFromRat(r *big.Rat, max uint64) uint64 {
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(new(big.Int).SetUint64(max)))
	return roundRat(scaled).Uint64()
}

// shortestDecimal returns the decimal with the fewest places that parses back to raw.
func shortestDecimal(raw, max uint64, open bool) decimal.Decimal {
	for places := int32(0); places < maxPlaces; places++ {
		d := scaledDecimal(raw, max, places)
		r := d.Rat()
		if open && (r.Sign() == 0 || r.Cmp(ratOne) == 0) {
			continue
		}
		back := rawFromRat(r, max)
		if open {
			back = snapInterior(back, max)
		}
		if back == raw {
			return d
		}
	}
	return scaledDecimal(raw, max, maxPlaces)
}

// String returns the shortest decimal that ParseClosed maps back to f, e.g. "0.5".
func (f Closed[I]) String() string {
	return shortestDecimal(uint64(f.raw), maxRaw[I](), false).String()
}

// GoString ...
func (f Closed[I]) GoString() string {
	return "Closed(" + f.String() + ")"
}

// AppendRaw appends the exact value as "raw/MAX" to dst, e.g. "128/255".
// It does not allocate when dst has enough capacity.
func (f Closed[I]) AppendRaw(dst []byte) []byte {
	return appendRaw(dst, uint64(f.raw), maxRaw[I]())
}

func appendRaw(dst []byte, raw, max uint64) []byte {
	dst = strconv.AppendUint(dst, raw, 10)
	dst = append(dst, '/')
	return strconv.AppendUint(dst, max, 10)
}

// Decimal returns the value rounded half to even at the given number of places.
func (f Closed[I]) Decimal(places int32) decimal.Decimal {
	return scaledDecimal(uint64(f.raw), maxRaw[I](), places)
}

// FormatPercent returns the value as a percentage with a fixed number of places, e.g. "50.00%".
func (f Closed[I]) FormatPercent(places int32) string {
	return formatPercent(uint64(f.raw), maxRaw[I](), places)
}

func formatPercent(raw, max uint64, places int32) string {
	return scaledDecimal(raw, max, places+2).Shift(2).StringFixed(places) + "%"
}

// String returns the shortest decimal that ParseOpen maps back to o.
func (o Open[I]) String() string {
	return shortestDecimal(uint64(o.Raw()), maxRaw[I](), true).String()
}

// GoString ...
func (o Open[I]) GoString() string {
	return "Open(" + o.String() + ")"
}

// AppendRaw appends the exact value as "raw/MAX" to dst.
func (o Open[I]) AppendRaw(dst []byte) []byte {
	return appendRaw(dst, uint64(o.Raw()), maxRaw[I]())
}

// Decimal returns the value rounded half to even at the given number of places.
func (o Open[I]) Decimal(places int32) decimal.Decimal {
	return scaledDecimal(uint64(o.Raw()), maxRaw[I](), places)
}

// FormatPercent returns the value as a percentage with a fixed number of places.
func (o Open[I]) FormatPercent(places int32) string {
	return formatPercent(uint64(o.Raw()), maxRaw[I](), places)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, errors.Mark(errors.Wrapf(err, "parse %q", s), ErrSyntax)
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Decimal{}, errors.Wrapf(ErrSyntax, "exponent of %q is out of range", s)
	}
	return d, nil
}

// parseRat accepts "n/d", "25%" and plain decimals.
func parseRat(s string) (*big.Rat, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil, errors.Wrap(ErrSyntax, "empty string")
	}

	if numText, denText, found := strings.Cut(text, "/"); found {
		num, err := parseDecimal(numText)
		if err != nil {
			return nil, err
		}
		den, err := parseDecimal(denText)
		if err != nil {
			return nil, err
		}
		if den.IsZero() {
			return nil, errors.Wrapf(ErrZeroDenominator, "ratio %q", s)
		}
		return new(big.Rat).Quo(num.Rat(), den.Rat()), nil
	}

	if percentText := strings.TrimSuffix(text, "%"); percentText != text {
		percent, err := parseDecimal(percentText)
		if err != nil {
			return nil, err
		}
		return new(big.Rat).Quo(percent.Rat(), ratHundred), nil
	}

	d, err := parseDecimal(text)
	if err != nil {
		return nil, err
	}
	return d.Rat(), nil
}

// ParseClosed parses a ratio ("1/2"), a decimal ("0.5") or a percentage ("50%").
// The value is rounded half to even, as in ClosedFromRatio.
func ParseClosed[I constraints.Unsigned](s string) (Closed[I], error) {
	r, err := parseRat(s)
	if err != nil {
		return Closed[I]{}, err
	}
	if r.Sign() < 0 || r.Cmp(ratOne) > 0 {
		return Closed[I]{}, errors.Wrapf(ErrOutOfRange, "%q is not in [0,1]", s)
	}
	return Closed[I]{raw: I(rawFromRat(r, maxRaw[I]()))}, nil
}

// ParseOpen parses a value strictly between 0 and 1, in any format accepted by ParseClosed.
func ParseOpen[I constraints.Unsigned](s string) (Open[I], error) {
	r, err := parseRat(s)
	if err != nil {
		return Open[I]{}, err
	}
	if r.Sign() <= 0 || r.Cmp(ratOne) >= 0 {
		return Open[I]{}, errors.Wrapf(ErrOutOfRange, "%q is not in (0,1)", s)
	}
	max := maxRaw[I]()
	return Open[I]{offset: I(snapInterior(rawFromRat(r, max), max) - 1)}, nil
}

package fraction

import "golang.org/x/exp/constraints"

// RescaleClosed converts f to another raw width, rounding half to even.
// Widening is exact only when MAX(I) divides MAX(J), as for uint8 to uint16.
func RescaleClosed[J constraints.Unsigned, I constraints.Unsigned](f Closed[I]) Closed[J] {
	raw, _, _ := mulDiv(uint64(f.raw), maxRaw[J](), maxRaw[I]())
	return Closed[J]{raw: J(raw)}
}

// RescaleOpen converts o to another raw width. Results rounding onto an endpoint
// are moved to the nearest valid value.
func RescaleOpen[J constraints.Unsigned, I constraints.Unsigned](o Open[I]) Open[J] {
	max := maxRaw[J]()
	raw, _, _ := mulDiv(uint64(o.Raw()), max, maxRaw[I]())
	return Open[J]{offset: J(snapInterior(raw, max) - 1)}
}

package fraction

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfRange is returned when a value lies outside the interval of the target type.
	ErrOutOfRange = errors.New("fraction out of range")
	// ErrOverflow is returned when arithmetic exceeds the range of the working integer type.
	ErrOverflow = errors.New("integer overflow")
	// ErrImprecise is returned when a value can not be represented exactly.
	ErrImprecise = errors.New("not exactly representable")
	// ErrZeroDenominator is returned for ratios with a zero denominator.
	ErrZeroDenominator = errors.New("zero denominator")
	// ErrSyntax is returned when a string is not a valid fraction.
	ErrSyntax = errors.New("invalid fraction syntax")
)

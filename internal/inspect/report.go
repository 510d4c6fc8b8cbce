package inspect

import (
	"fmt"
	"github.com/QuangTung97/fraction"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"io"
	"strconv"
	"strings"
)

// Report describes one inspected value.
type Report struct {
	Input string
	Raw   uint64
	// Ratio is the exact ratio raw/MAX in lowest terms.
	Ratio string
	// Approx is the smallest ratio in RatioType that maps back to Raw, or "-" if there is none.
	Approx    string
	RatioType string
	Decimal   string
	Percent   string
}

func (r Report) String() string {
	return fmt.Sprintf("%s: raw=%d ratio=%s %s=%s decimal=%s percent=%s",
		r.Input, r.Raw, r.Ratio, r.RatioType, r.Approx, r.Decimal, r.Percent)
}

// Inspect parses input as a fraction of the configured kind and width.
// The input is one of n/d, a decimal, a percentage such as 12.5%, or #raw.
func Inspect(cfg Config, input string) (Report, error) {
	switch cfg.Width {
	case 8:
		return inspect[uint8](cfg, input)
	case 16:
		return inspect[uint16](cfg, input)
	case 32:
		return inspect[uint32](cfg, input)
	case 64:
		return inspect[uint64](cfg, input)
	default:
		return Report{}, errors.Wrapf(ErrInvalidConfig, "width %d", cfg.Width)
	}
}

func parseRaw[I constraints.Unsigned](input string, width int) (I, bool, error) {
	text := strings.TrimSpace(input)
	if !strings.HasPrefix(text, "#") {
		return 0, false, nil
	}
	raw, err := strconv.ParseUint(strings.TrimSpace(text[1:]), 10, width)
	if err != nil {
		return 0, true, errors.Mark(errors.Wrapf(err, "raw value %q", input), fraction.ErrSyntax)
	}
	return I(raw), true, nil
}

func parseClosed[I constraints.Unsigned](input string, width int) (fraction.Closed[I], error) {
	raw, isRaw, err := parseRaw[I](input, width)
	if err != nil {
		return fraction.Closed[I]{}, err
	}
	if isRaw {
		return fraction.ClosedFromRaw(raw), nil
	}
	return fraction.ParseClosed[I](input)
}

func parseOpen[I constraints.Unsigned](input string, width int) (fraction.Open[I], error) {
	raw, isRaw, err := parseRaw[I](input, width)
	if err != nil {
		return fraction.Open[I]{}, err
	}
	if isRaw {
		return fraction.OpenFromRaw(raw)
	}
	return fraction.ParseOpen[I](input)
}

func inspect[I constraints.Unsigned](cfg Config, input string) (Report, error) {
	var (
		f    fraction.Closed[I]
		text string
	)
	if cfg.Kind == KindOpen {
		o, err := parseOpen[I](input, cfg.Width)
		if err != nil {
			return Report{}, err
		}
		f, text = o.Closed(), o.String()
	} else {
		c, err := parseClosed[I](input, cfg.Width)
		if err != nil {
			return Report{}, err
		}
		f, text = c, c.String()
	}

	approx, err := approxRatio(f, cfg.RatioType)
	if err != nil {
		return Report{}, err
	}

	num, den := f.Ratio()
	return Report{
		Input:     input,
		Raw:       uint64(f.Raw()),
		Ratio:     fmt.Sprintf("%d/%d", num, den),
		Approx:    approx,
		RatioType: cfg.RatioType,
		Decimal:   text,
		Percent:   f.FormatPercent(int32(cfg.PercentPlaces)),
	}, nil
}

func ratioOf[N constraints.Integer, I constraints.Unsigned](f fraction.Closed[I]) (string, error) {
	num, den, err := fraction.ClosedToRatio[N](f)
	if errors.Is(err, fraction.ErrImprecise) {
		return "-", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d/%d", num, den), nil
}

func approxRatio[I constraints.Unsigned](f fraction.Closed[I], ratioType string) (string, error) {
	switch ratioType {
	case "uint8":
		return ratioOf[uint8](f)
	case "uint16":
		return ratioOf[uint16](f)
	case "uint32":
		return ratioOf[uint32](f)
	case "uint64":
		return ratioOf[uint64](f)
	case "int8":
		return ratioOf[int8](f)
	case "int16":
		return ratioOf[int16](f)
	case "int32":
		return ratioOf[int32](f)
	case "int64":
		return ratioOf[int64](f)
	default:
		return "", errors.Wrapf(ErrInvalidConfig, "ratio type %q", ratioType)
	}
}

// Run writes one report line per input to out. Invalid inputs are logged and
// skipped, and Run returns an error if at least one input was invalid.
func Run(cfg Config, inputs []string, out io.Writer, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	failed := 0
	for _, input := range inputs {
		report, err := Inspect(cfg, input)
		if err != nil {
			logger.Error("invalid value", zap.String("input", input), zap.Error(err))
			failed++
			continue
		}

		logger.Debug("inspected value",
			zap.String("input", input),
			zap.Uint64("raw", report.Raw),
			zap.String("approx", report.Approx),
		)
		if _, err := fmt.Fprintln(out, report); err != nil {
			return errors.Wrap(err, "write report")
		}
	}

	if failed > 0 {
		return errors.Newf("%d of %d values are invalid", failed, len(inputs))
	}
	return nil
}

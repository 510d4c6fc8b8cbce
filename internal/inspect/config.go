package inspect

import (
	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"strings"
)

// EnvPrefix is the prefix of the environment variables read by LoadConfig,
// e.g. FRACINSPECT_WIDTH or FRACINSPECT_RATIO_TYPE.
const EnvPrefix = "FRACINSPECT_"

const (
	keyWidth         = "width"
	keyKind          = "kind"
	keyRatioType     = "ratio-type"
	keyPercentPlaces = "percent-places"
	keyLogLevel      = "log-level"
)

const (
	// KindClosed selects fractions in [0,1].
	KindClosed = "closed"
	// KindOpen selects fractions in (0,1).
	KindOpen = "open"
)

// ErrInvalidConfig is returned when a configuration value is not supported.
var ErrInvalidConfig = errors.New("invalid configuration")

var ratioTypes = []string{"uint8", "uint16", "uint32", "uint64", "int8", "int16", "int32", "int64"}

// Config ...
type Config struct {
	// Width is the raw width in bits: 8, 16, 32 or 64.
	Width int
	// Kind is KindClosed or KindOpen.
	Kind string
	// RatioType is the integer type of the approximate ratio, e.g. "uint8".
	RatioType string
	// PercentPlaces is the number of decimal places of the percentage.
	PercentPlaces int
	// LogLevel is a zap level name.
	LogLevel string
}

// NewFlagSet returns the flags understood by LoadConfig, with their defaults.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Int(keyWidth, 32, "raw width in bits (8, 16, 32 or 64)")
	fs.String(keyKind, KindClosed, "fraction kind (closed or open)")
	fs.String(keyRatioType, "uint8", "integer type of the approximate ratio")
	fs.Int(keyPercentPlaces, 2, "decimal places of the percentage")
	fs.String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	return fs
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}

// LoadConfig parses args with fs. Flags set on the command line win over
// environment variables, which win over the flag defaults.
func LoadConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, errors.Wrap(err, "load environment")
	}
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return Config{}, errors.Wrap(err, "load flags")
	}

	width, err := cast.ToIntE(k.Get(keyWidth))
	if err != nil {
		return Config{}, errors.Mark(errors.Wrapf(err, "%s", keyWidth), ErrInvalidConfig)
	}
	places, err := cast.ToIntE(k.Get(keyPercentPlaces))
	if err != nil {
		return Config{}, errors.Mark(errors.Wrapf(err, "%s", keyPercentPlaces), ErrInvalidConfig)
	}

	cfg := Config{
		Width:         width,
		Kind:          strings.ToLower(cast.ToString(k.Get(keyKind))),
		RatioType:     strings.ToLower(cast.ToString(k.Get(keyRatioType))),
		PercentPlaces: places,
		LogLevel:      cast.ToString(k.Get(keyLogLevel)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ...
func (c Config) Validate() error {
	switch c.Width {
	case 8, 16, 32, 64:
	default:
		return errors.Wrapf(ErrInvalidConfig, "width %d", c.Width)
	}

	if c.Kind != KindClosed && c.Kind != KindOpen {
		return errors.Wrapf(ErrInvalidConfig, "kind %q", c.Kind)
	}

	found := false
	for _, t := range ratioTypes {
		if t == c.RatioType {
			found = true
		}
	}
	if !found {
		return errors.Wrapf(ErrInvalidConfig, "ratio type %q", c.RatioType)
	}

	if c.PercentPlaces < 0 || c.PercentPlaces > 20 {
		return errors.Wrapf(ErrInvalidConfig, "percent places %d", c.PercentPlaces)
	}
	return nil
}

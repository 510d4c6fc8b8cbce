package inspect

import (
	"bytes"
	"github.com/QuangTung97/fraction"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

func newTestConfig(width int, kind string) Config {
	return Config{
		Width:         width,
		Kind:          kind,
		RatioType:     "uint8",
		PercentPlaces: 2,
		LogLevel:      "info",
	}
}

func TestInspect_Closed(t *testing.T) {
	r, err := Inspect(newTestConfig(8, KindClosed), "1/3")
	require.NoError(t, err)
	assert.Equal(t, Report{
		Input:     "1/3",
		Raw:       85,
		Ratio:     "1/3",
		Approx:    "1/3",
		RatioType: "uint8",
		Decimal:   "0.333",
		Percent:   "33.33%",
	}, r)
	assert.Equal(t, "1/3: raw=85 ratio=1/3 uint8=1/3 decimal=0.333 percent=33.33%", r.String())

	r, err = Inspect(newTestConfig(32, KindClosed), "50%")
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<31), r.Raw)
	assert.Equal(t, "2147483648/4294967295", r.Ratio)
	assert.Equal(t, "1/2", r.Approx)
	assert.Equal(t, "0.5", r.Decimal)
	assert.Equal(t, "50.00%", r.Percent)

	r, err = Inspect(newTestConfig(8, KindClosed), "#255")
	require.NoError(t, err)
	assert.Equal(t, "1/1", r.Ratio)
	assert.Equal(t, "1", r.Decimal)
	assert.Equal(t, "100.00%", r.Percent)
}

func TestInspect_Approx(t *testing.T) {
	r, err := Inspect(newTestConfig(64, KindClosed), "#12345")
	require.NoError(t, err)
	assert.Equal(t, "-", r.Approx)

	cfg := newTestConfig(64, KindClosed)
	cfg.RatioType = "uint64"
	r, err = Inspect(cfg, "#12345")
	require.NoError(t, err)
	assert.Equal(t, r.Ratio, r.Approx)

	cfg = newTestConfig(32, KindClosed)
	cfg.RatioType = "int8"
	r, err = Inspect(cfg, "0.5")
	require.NoError(t, err)
	assert.Equal(t, "1/2", r.Approx)
	assert.Equal(t, "int8", r.RatioType)
}

func TestInspect_Open(t *testing.T) {
	r, err := Inspect(newTestConfig(8, KindOpen), "0.0001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), r.Raw)
	assert.Equal(t, "0.004", r.Decimal)

	r, err = Inspect(newTestConfig(8, KindOpen), "#254")
	require.NoError(t, err)
	assert.Equal(t, "0.996", r.Decimal)

	for _, input := range []string{"0", "1", "#0", "#255"} {
		_, err := Inspect(newTestConfig(8, KindOpen), input)
		assert.True(t, errors.Is(err, fraction.ErrOutOfRange), input)
	}
}

func TestInspect_Errors(t *testing.T) {
	for _, input := range []string{"abc", "#", "#-1", "#256", "#x"} {
		_, err := Inspect(newTestConfig(8, KindClosed), input)
		assert.True(t, errors.Is(err, fraction.ErrSyntax), input)
	}

	_, err := Inspect(newTestConfig(8, KindClosed), "3/2")
	assert.True(t, errors.Is(err, fraction.ErrOutOfRange))

	_, err = Inspect(newTestConfig(12, KindClosed), "1/2")
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	cfg := newTestConfig(8, KindClosed)
	cfg.RatioType = "float32"
	_, err = Inspect(cfg, "1/2")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestRun(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer

	err := Run(newTestConfig(8, KindClosed), []string{"1/3", "#255"}, &out, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t,
		"1/3: raw=85 ratio=1/3 uint8=1/3 decimal=0.333 percent=33.33%\n"+
			"#255: raw=255 ratio=1/1 uint8=1/1 decimal=1 percent=100.00%\n",
		out.String())
	assert.Equal(t, 2, logs.FilterMessage("inspected value").Len())
}

func TestRun_InvalidInput(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer

	err := Run(newTestConfig(8, KindClosed), []string{"bogus", "1/2", "2/1"}, &out, zap.New(core))
	assert.Error(t, err)
	assert.Equal(t, "2 of 3 values are invalid", err.Error())
	assert.Equal(t, "1/2: raw=128 ratio=128/255 uint8=128/255 decimal=0.5 percent=50.20%\n", out.String())

	entries := logs.FilterMessage("invalid value").All()
	require.Equal(t, 2, len(entries))
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "bogus", entries[0].ContextMap()["input"])
	assert.Equal(t, 0, logs.FilterMessage("inspected value").Len())
}

package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heatmapFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("heatmap", pflag.ContinueOnError)
	fs.Duration("bin", DefaultHeatmapBin, "bin size")
	fs.Float64("latitude", 0, "latitude")
	BindFlag(fs, "bin", "heatmap.binsize")
	BindFlag(fs, "latitude", "location.latitude")
	return fs
}

func TestContextLoadFlags(t *testing.T) {
	t.Parallel()

	fs := heatmapFlags()
	require.NoError(t, fs.Parse([]string{"--bin=30m", "--latitude=41.71"}))

	ctx := NewContext()
	require.NoError(t, ctx.Load(fs))
	assert.Equal(t, 30*time.Minute, ctx.Settings.Heatmap.BinSize)
	assert.InDelta(t, 41.71, ctx.Settings.Location.Latitude, 1e-9)
}

func TestContextLoadUnchangedFlagKeepsFileValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roostlogger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("heatmap:\n  binsize: 20m\n"), 0o600))

	fs := heatmapFlags()
	require.NoError(t, fs.Parse(nil))

	ctx := NewContext()
	ctx.ConfigFile = path
	require.NoError(t, ctx.Load(fs))
	assert.Equal(t, 20*time.Minute, ctx.Settings.Heatmap.BinSize)
}

func TestContextLoadValidates(t *testing.T) {
	t.Parallel()

	fs := heatmapFlags()
	require.NoError(t, fs.Parse([]string{"--bin=7m"}))

	ctx := NewContext()
	err := ctx.Load(fs)
	require.Error(t, err)

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Nil(t, ctx.Settings)
}

func TestBindFlagUnknownPanics(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("empty", pflag.ContinueOnError)
	assert.Panics(t, func() { BindFlag(fs, "missing", "heatmap.binsize") })
}

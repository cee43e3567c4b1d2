package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/roostlogger/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	settings, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultHeatmapBin, settings.Heatmap.BinSize)
	assert.Equal(t, DefaultNightOffset, settings.Heatmap.NightOffset)
	assert.True(t, settings.Heatmap.LogScale)
	assert.Equal(t, MetricCount, settings.Report.Metric)
	assert.Equal(t, DefaultTempMapBin, settings.TempMap.BinSize)
	assert.InDelta(t, DefaultWidthInches, settings.Output.Width, 0)
	assert.False(t, settings.Location.Enabled())
	require.NoError(t, ValidateSettings(settings))
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roostlogger.yaml")
	yaml := `
timezone: UTC
location:
  latitude: 41.71
  longitude: -121.51
heatmap:
  binsize: 10m
  logscale: false
report:
  metric: duration
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	v := New()
	settings, err := Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, settings.Heatmap.BinSize)
	assert.False(t, settings.Heatmap.LogScale)
	assert.Equal(t, MetricDuration, settings.Report.Metric)
	assert.True(t, settings.Location.Enabled())
	assert.Equal(t, time.UTC, settings.TimeLocation())
	require.NoError(t, ValidateSettings(settings))
}

func TestLoadOverrideBeatsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roostlogger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("heatmap:\n  binsize: 10m\n"), 0o600))

	v := New()
	v.Set("heatmap.binsize", "30m")
	settings, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, settings.Heatmap.BinSize)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Parallel()

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
}

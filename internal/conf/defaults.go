// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Default values shared with flag definitions
const (
	DefaultHeatmapBin   = 15 * time.Minute
	DefaultTempMapBin   = 5 * time.Minute
	DefaultNightOffset  = 12 * time.Hour
	DefaultWidthInches  = 12.0
	DefaultHeightInches = 6.0
	DefaultTimezoneName = "Local"
)

// setDefaultConfig sets default values for the configuration.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("timezone", DefaultTimezoneName)

	v.SetDefault("output.width", DefaultWidthInches)
	v.SetDefault("output.height", DefaultHeightInches)

	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)

	v.SetDefault("heatmap.binsize", DefaultHeatmapBin)
	v.SetDefault("heatmap.nightoffset", DefaultNightOffset)
	v.SetDefault("heatmap.logscale", true)
	v.SetDefault("heatmap.civiltwilight", false)

	v.SetDefault("report.metric", MetricCount)

	v.SetDefault("tempmap.binsize", DefaultTempMapBin)

	v.SetDefault("log.path", "")
}

// config.go: settings for roostlogger and the functions that load them.
package conf

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/roostlogger/internal/errors"
)

// Report metrics
const (
	MetricCount    = "count"
	MetricDuration = "duration"
)

// InputSettings describes what to read
type InputSettings struct {
	Path        string // log file or Anabat folder
	Temperature string // optional separate temperature log for the report
}

// OutputSettings describes what to write
type OutputSettings struct {
	Path    string  // image path; derived from the input when empty
	Summary string  // optional YAML summary path
	Width   float64 // image width in inches
	Height  float64 // image height in inches
}

// LocationSettings enables the sunset/sunrise overlay when set
type LocationSettings struct {
	Latitude  float64
	Longitude float64
}

// Enabled reports whether coordinates were configured
func (l LocationSettings) Enabled() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// HeatmapSettings controls activity bucketing and rendering
type HeatmapSettings struct {
	BinSize       time.Duration // size of a time "pixel"
	NightOffset   time.Duration // time of day a night starts, also the top of the heatmap
	LogScale      bool          // log1p scale counts before color mapping
	CivilTwilight bool          // also draw civil dusk and dawn
}

// ReportSettings controls the activity/temperature report
type ReportSettings struct {
	Metric string // count or duration
}

// TempMapSettings controls the temperature heatmap
type TempMapSettings struct {
	BinSize time.Duration
}

// LogSettings controls logging output
type LogSettings struct {
	Path string // optional JSON log file
}

// Settings contains all configuration for a single run
type Settings struct {
	Debug    bool
	Timezone string
	Input    InputSettings
	Output   OutputSettings
	Location LocationSettings
	Heatmap  HeatmapSettings
	Report   ReportSettings
	TempMap  TempMapSettings
	Log      LogSettings
}

// TimeLocation returns the time zone log timestamps are interpreted in
func (s *Settings) TimeLocation() *time.Location {
	loc, err := loadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// New returns a viper instance populated with defaults.
// Environment variables are not bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaultConfig(v)
	return v
}

// Load reads the optional config file into v and unmarshals the result.
// Flags bound to v before calling Load take precedence over file values.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New(fmt.Errorf("error reading config file: %w", err)).
				Component("conf").
				Category(errors.CategoryConfiguration).
				FileContext(configFile, 0).
				Build()
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(fmt.Errorf("error unmarshaling config into struct: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return settings, nil
}

func loadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	default:
		return time.LoadLocation(name)
	}
}

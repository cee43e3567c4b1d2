// conf/validate.go

package conf

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %s", strings.Join(ve.Errors, "; "))
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if _, err := loadLocation(settings.Timezone); err != nil {
		ve.Errors = append(ve.Errors, fmt.Sprintf("invalid timezone %q: %v", settings.Timezone, err))
	}

	ve.Errors = append(ve.Errors, validateOutputSettings(&settings.Output)...)
	ve.Errors = append(ve.Errors, validateLocationSettings(&settings.Location)...)
	ve.Errors = append(ve.Errors, validateHeatmapSettings(&settings.Heatmap)...)

	if err := validateBinSize("tempmap bin size", settings.TempMap.BinSize); err != "" {
		ve.Errors = append(ve.Errors, err)
	}

	switch settings.Report.Metric {
	case MetricCount, MetricDuration:
	default:
		ve.Errors = append(ve.Errors, fmt.Sprintf("report metric must be %q or %q, got %q", MetricCount, MetricDuration, settings.Report.Metric))
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateOutputSettings(settings *OutputSettings) []string {
	var errs []string
	if settings.Width <= 0 {
		errs = append(errs, "output width must be positive")
	}
	if settings.Height <= 0 {
		errs = append(errs, "output height must be positive")
	}
	return errs
}

func validateLocationSettings(settings *LocationSettings) []string {
	var errs []string
	if settings.Latitude < -90 || settings.Latitude > 90 {
		errs = append(errs, "latitude must be between -90 and 90 degrees")
	}
	if settings.Longitude < -180 || settings.Longitude > 180 {
		errs = append(errs, "longitude must be between -180 and 180 degrees")
	}
	return errs
}

func validateHeatmapSettings(settings *HeatmapSettings) []string {
	var errs []string
	if err := validateBinSize("heatmap bin size", settings.BinSize); err != "" {
		errs = append(errs, err)
	}
	if settings.NightOffset < 0 || settings.NightOffset >= 24*time.Hour {
		errs = append(errs, "night offset must be within a day")
	}
	return errs
}

// validateBinSize checks that bins are whole minutes and tile a day exactly
func validateBinSize(name string, bin time.Duration) string {
	switch {
	case bin <= 0:
		return name + " must be positive"
	case bin%time.Minute != 0:
		return name + " must be a whole number of minutes"
	case (24*time.Hour)%bin != 0:
		return fmt.Sprintf("%s must divide 24h evenly, got %s", name, bin)
	}
	return ""
}

// Package roostlog loads RoostLogger detection and temperature logs.
//
// Two sources are understood: delimited text logs (detection events,
// HumiTemp.txt temperature readings, or a mix of both) and folders of Anabat
// sequence files, either grouped into nightly YYYYMMDD sub-folders or flat.
package roostlog

import (
	"fmt"
	"time"

	"github.com/tphakala/roostlogger/internal/errors"
)

// DetectionRecord is one recognized bat call
type DetectionRecord struct {
	Timestamp time.Time
	Tag       string        // species or call type, empty when the log has none
	Duration  time.Duration // call sequence length, only known for Anabat files
}

// TemperatureRecord is one ambient temperature reading
type TemperatureRecord struct {
	Timestamp   time.Time
	Celsius     float64
	Humidity    float64
	HasHumidity bool
}

// Dataset is everything a single load produced
type Dataset struct {
	Source       string
	Detections   []DetectionRecord
	Temperatures []TemperatureRecord
	// Nights lists nights known from the folder layout, including nights
	// without any recordings. Empty for text logs.
	Nights  []time.Time
	Skipped []*ParseError
}

// ParseError describes a row or file that was skipped
type ParseError struct {
	Source string
	Line   int // 1-based, 0 for whole-file errors
	Text   string
	Reason string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Reason)
}

// ErrorCategory lets the errors package classify parse failures
func (e *ParseError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryFileParsing
}

// Package export writes aggregated results as a YAML summary so runs over the
// same input can be compared.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/roostlogger/internal/activity"
	"github.com/tphakala/roostlogger/internal/errors"
)

// Summary is the aggregated data behind one chart
type Summary struct {
	Source       string          `yaml:"source"`
	Chart        string          `yaml:"chart"`
	Detections   int             `yaml:"detections"`
	SkippedRows  int             `yaml:"skipped_rows"`
	BinSize      string          `yaml:"bin_size,omitempty"`
	Nights       []NightSummary  `yaml:"nights,omitempty"`
	Buckets      []BucketSummary `yaml:"buckets,omitempty"`
	Temperatures []DaySummary    `yaml:"temperatures,omitempty"`
}

// NightSummary is one night of activity
type NightSummary struct {
	Night           string  `yaml:"night"`
	Detections      int     `yaml:"detections"`
	DurationSeconds float64 `yaml:"duration_seconds,omitempty"`
}

// BucketSummary is one time-of-night bucket summed over all nights
type BucketSummary struct {
	Bucket     string `yaml:"bucket"`
	Detections int    `yaml:"detections"`
}

// DaySummary is one calendar date of temperatures
type DaySummary struct {
	Date     string  `yaml:"date"`
	Min      float64 `yaml:"min_c"`
	Max      float64 `yaml:"max_c"`
	Mean     float64 `yaml:"mean_c"`
	Readings int     `yaml:"readings"`
}

// AddMatrix records per-night and per-bucket totals of a heatmap matrix
func (s *Summary) AddMatrix(m *activity.Matrix) {
	s.Detections = m.Total()
	s.BinSize = m.BinSize.String()

	totals := m.NightTotals()
	s.Nights = make([]NightSummary, len(m.Nights))
	for i, n := range m.Nights {
		s.Nights[i] = NightSummary{Night: n.Format(time.DateOnly), Detections: totals[i]}
	}

	buckets := m.BucketTotals()
	s.Buckets = make([]BucketSummary, len(buckets))
	for i, c := range buckets {
		s.Buckets[i] = BucketSummary{Bucket: m.Bucket(i).Label(), Detections: c}
	}
}

// AddSeries records per-night counts and call durations
func (s *Summary) AddSeries(series *activity.NightSeries) {
	s.Detections = series.Total()
	s.Nights = make([]NightSummary, len(series.Nights))
	for i, n := range series.Nights {
		s.Nights[i] = NightSummary{
			Night:           n.Format(time.DateOnly),
			Detections:      series.Counts[i],
			DurationSeconds: series.Durations[i].Seconds(),
		}
	}
}

// AddTemperatures records daily temperature statistics
func (s *Summary) AddTemperatures(daily []activity.DailyTemperature) {
	s.Temperatures = make([]DaySummary, len(daily))
	for i, d := range daily {
		s.Temperatures[i] = DaySummary{
			Date:     d.Date.Format(time.DateOnly),
			Min:      d.Min,
			Max:      d.Max,
			Mean:     d.Mean,
			Readings: d.Readings,
		}
	}
}

// Write stores the summary at path, replacing any previous file only once
// the new one is complete
func Write(fs afero.Fs, path string, s *Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return newExportError(fmt.Errorf("error marshaling summary to YAML: %w", err), path)
	}

	tempFile, err := afero.TempFile(fs, filepath.Dir(path), "summary-*.yaml")
	if err != nil {
		return newExportError(fmt.Errorf("error creating temporary file: %w", err), path)
	}
	tempFileName := tempFile.Name()
	defer func() { _ = fs.Remove(tempFileName) }()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return newExportError(fmt.Errorf("error writing to temporary file: %w", err), path)
	}
	if err := tempFile.Close(); err != nil {
		return newExportError(fmt.Errorf("error closing temporary file: %w", err), path)
	}
	if err := fs.Rename(tempFileName, path); err != nil {
		return newExportError(fmt.Errorf("error moving summary into place: %w", err), path)
	}
	return nil
}

// Read loads a summary written by Write
func Read(fs afero.Fs, path string) (*Summary, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, newExportError(fmt.Errorf("error reading summary: %w", err), path)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New(fmt.Errorf("error parsing summary: %w", err)).
			Component("export").
			Category(errors.CategoryFileParsing).
			FileContext(path, int64(len(data))).
			Build()
	}
	return &s, nil
}

func newExportError(err error, path string) *errors.EnhancedError {
	return errors.New(err).
		Component("export").
		Category(errors.CategoryFileIO).
		FileContext(path, 0).
		Build()
}

package activity

import (
	"fmt"
	"math"
	"time"

	"github.com/tphakala/roostlogger/internal/errors"
	"github.com/tphakala/roostlogger/internal/roostlog"
)

// MatrixOptions controls detection bucketing
type MatrixOptions struct {
	// BinSize is the width of one time bucket and must divide 24h
	BinSize time.Duration
	// NightOffset is the time of day nights start at and the first bucket begins
	NightOffset time.Duration
}

// Matrix holds detection counts indexed by [night][bucket]. Nights are
// consecutive and ascending; buckets run from the night offset for 24 hours.
type Matrix struct {
	Nights  []time.Time
	BinSize time.Duration
	Origin  time.Duration
	Counts  [][]int
}

// Bucket is one column of time-of-night
type Bucket struct {
	Index int
	Start time.Duration // wall clock time of day, may exceed 24h past midnight
	End   time.Duration
}

// Label formats the bucket as a clock range such as 22:00-22:30
func (b Bucket) Label() string {
	return clock(b.Start) + "-" + clock(b.End)
}

func (b Bucket) String() string {
	return b.Label()
}

// clock formats a time of day as HH:MM, wrapping at midnight
func clock(d time.Duration) string {
	d = ((d % day) + day) % day
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

func validateOptions(binSize, offset time.Duration) error {
	switch {
	case binSize <= 0:
		return newValidationError(fmt.Errorf("bin size must be positive, got %s", binSize))
	case day%binSize != 0:
		return newValidationError(fmt.Errorf("bin size must divide 24h evenly, got %s", binSize))
	case offset < 0 || offset >= day:
		return newValidationError(errNightOffset(offset))
	}
	return nil
}

func errNightOffset(offset time.Duration) error {
	return fmt.Errorf("night offset must be within a day, got %s", offset)
}

// BuildMatrix counts detections per night and time bucket. nights adds nights
// known to have been recorded even when nothing was detected. Every detection
// lands in exactly one cell, so Total always equals len(detections).
func BuildMatrix(detections []roostlog.DetectionRecord, nights []time.Time, opts MatrixOptions) (*Matrix, error) {
	if err := validateOptions(opts.BinSize, opts.NightOffset); err != nil {
		return nil, err
	}

	m := &Matrix{BinSize: opts.BinSize, Origin: opts.NightOffset}

	stamps := make([]time.Time, len(detections))
	for i := range detections {
		stamps[i] = detections[i].Timestamp
	}
	span, ok := spanNights(stamps, nights, opts.NightOffset)
	if !ok {
		return m, nil
	}

	m.Nights = span.dates()
	buckets := m.Buckets()
	m.Counts = make([][]int, span.count)
	for i := range m.Counts {
		m.Counts[i] = make([]int, buckets)
	}

	for _, ts := range stamps {
		row := span.index(NightOf(ts, opts.NightOffset))
		m.Counts[row][m.BucketOf(ts)]++
	}
	return m, nil
}

// Buckets is the number of time buckets per night
func (m *Matrix) Buckets() int {
	if m.BinSize <= 0 {
		return 0
	}
	return int(day / m.BinSize)
}

// BucketOf returns the bucket index of t's time of night
func (m *Matrix) BucketOf(t time.Time) int {
	sinceOrigin := (timeOfDay(t) - m.Origin + day) % day
	return int(sinceOrigin / m.BinSize)
}

// Position returns t's time of night in bucket units, 0 at the origin
func (m *Matrix) Position(t time.Time) float64 {
	sinceOrigin := (timeOfDay(t) - m.Origin + day) % day
	return float64(sinceOrigin) / float64(m.BinSize)
}

// Bucket describes column i
func (m *Matrix) Bucket(i int) Bucket {
	start := m.Origin + time.Duration(i)*m.BinSize
	return Bucket{Index: i, Start: start, End: start + m.BinSize}
}

// Empty reports whether the matrix has no nights
func (m *Matrix) Empty() bool {
	return len(m.Nights) == 0
}

// Total sums every cell
func (m *Matrix) Total() int {
	var total int
	for _, row := range m.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// Max is the largest cell count, 0 for an empty matrix
func (m *Matrix) Max() int {
	var highest int
	for _, row := range m.Counts {
		for _, c := range row {
			highest = max(highest, c)
		}
	}
	return highest
}

// NightTotals sums each night
func (m *Matrix) NightTotals() []int {
	totals := make([]int, len(m.Counts))
	for i, row := range m.Counts {
		for _, c := range row {
			totals[i] += c
		}
	}
	return totals
}

// BucketTotals sums each time bucket over all nights
func (m *Matrix) BucketTotals() []int {
	totals := make([]int, m.Buckets())
	for _, row := range m.Counts {
		for j, c := range row {
			totals[j] += c
		}
	}
	return totals
}

// Scaled returns the counts as floats, log1p compressed when logScale is set
func (m *Matrix) Scaled(logScale bool) [][]float64 {
	out := make([][]float64, len(m.Counts))
	for i, row := range m.Counts {
		out[i] = make([]float64, len(row))
		for j, c := range row {
			if logScale {
				out[i][j] = math.Log1p(float64(c))
			} else {
				out[i][j] = float64(c)
			}
		}
	}
	return out
}

func newValidationError(err error) *errors.EnhancedError {
	return errors.New(err).
		Component("activity").
		Category(errors.CategoryValidation).
		Build()
}

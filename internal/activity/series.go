package activity

import (
	"time"

	"github.com/tphakala/roostlogger/internal/roostlog"
)

// NightSeries is per-night activity, one entry per consecutive night
type NightSeries struct {
	Nights    []time.Time
	Counts    []int
	Durations []time.Duration
}

// Nightly totals detection counts and call durations per night. nights adds
// recorded nights without detections.
func Nightly(detections []roostlog.DetectionRecord, nights []time.Time, offset time.Duration) (*NightSeries, error) {
	if offset < 0 || offset >= day {
		return nil, newValidationError(errNightOffset(offset))
	}

	stamps := make([]time.Time, len(detections))
	for i := range detections {
		stamps[i] = detections[i].Timestamp
	}

	s := &NightSeries{}
	span, ok := spanNights(stamps, nights, offset)
	if !ok {
		return s, nil
	}

	s.Nights = span.dates()
	s.Counts = make([]int, span.count)
	s.Durations = make([]time.Duration, span.count)
	for _, d := range detections {
		i := span.index(NightOf(d.Timestamp, offset))
		s.Counts[i]++
		s.Durations[i] += d.Duration
	}
	return s, nil
}

// Total is the number of detections in the series
func (s *NightSeries) Total() int {
	var total int
	for _, c := range s.Counts {
		total += c
	}
	return total
}

// TotalDuration sums call time over all nights
func (s *NightSeries) TotalDuration() time.Duration {
	var total time.Duration
	for _, d := range s.Durations {
		total += d
	}
	return total
}

// Index returns the position of night n, or -1 when n is outside the series
func (s *NightSeries) Index(n time.Time) int {
	if len(s.Nights) == 0 {
		return -1
	}
	i := dayNumber(n) - dayNumber(s.Nights[0])
	if i < 0 || i >= len(s.Nights) {
		return -1
	}
	return i
}

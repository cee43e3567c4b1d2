// Package activity aggregates detections and temperature readings into the
// per-night structures the charts are drawn from.
//
// A night is named after the date of its evening and runs from the night
// offset (noon by default) to the same time the next day. All grouping uses
// wall clock time so nights keep their length across DST changes.
package activity

import (
	"time"
)

const day = 24 * time.Hour

// timeOfDay is the wall clock time since local midnight
func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// midnight truncates t to its calendar date in t's location
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NightOf returns the night t belongs to: its calendar date, or the previous
// date when t is earlier in the day than offset.
func NightOf(t time.Time, offset time.Duration) time.Time {
	y, m, d := t.Date()
	if timeOfDay(t) < offset {
		d--
	}
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayNumber counts civil days since the Unix epoch, ignoring the zone offset
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / int64(day/time.Second))
}

// nightSpan covers every night from first to last, with no gaps
type nightSpan struct {
	first  time.Time
	firstN int
	count  int
}

// spanNights finds the contiguous range of nights that covers every known
// night and every timestamp. ok is false when there is nothing to cover.
func spanNights(stamps []time.Time, nights []time.Time, offset time.Duration) (span nightSpan, ok bool) {
	var lo, hi time.Time
	see := func(n time.Time) {
		if !ok || dayNumber(n) < dayNumber(lo) {
			lo = n
		}
		if !ok || dayNumber(n) > dayNumber(hi) {
			hi = n
		}
		ok = true
	}
	for _, n := range nights {
		see(midnight(n))
	}
	for _, ts := range stamps {
		see(NightOf(ts, offset))
	}
	if !ok {
		return nightSpan{}, false
	}
	return nightSpan{first: lo, firstN: dayNumber(lo), count: dayNumber(hi) - dayNumber(lo) + 1}, true
}

// index is the row of night n
func (s nightSpan) index(n time.Time) int {
	return dayNumber(n) - s.firstN
}

// dates lists every night in the span
func (s nightSpan) dates() []time.Time {
	out := make([]time.Time, s.count)
	y, m, d := s.first.Date()
	for i := range out {
		out[i] = time.Date(y, m, d+i, 0, 0, 0, 0, s.first.Location())
	}
	return out
}

// DayIndex counts calendar days from first to t, negative when t is earlier
func DayIndex(first, t time.Time) int {
	return dayNumber(t) - dayNumber(first)
}

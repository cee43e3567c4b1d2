package activity

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/roostlogger/internal/errors"
	"github.com/tphakala/roostlogger/internal/roostlog"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := roostlog.ParseTimestamp(s, time.UTC)
	require.NoError(t, err)
	return ts
}

func detections(t *testing.T, stamps ...string) []roostlog.DetectionRecord {
	t.Helper()
	out := make([]roostlog.DetectionRecord, len(stamps))
	for i, s := range stamps {
		out[i] = roostlog.DetectionRecord{Timestamp: at(t, s), Tag: "Myotis", Duration: time.Second}
	}
	return out
}

func TestNightOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ts     string
		offset time.Duration
		want   string
	}{
		{"2020-01-01 22:15:00", 12 * time.Hour, "2020-01-01"},
		{"2020-01-02 03:00:00", 12 * time.Hour, "2020-01-01"},
		{"2020-01-02 11:59:59", 12 * time.Hour, "2020-01-01"},
		{"2020-01-02 12:00:00", 12 * time.Hour, "2020-01-02"},
		{"2020-03-01 01:00:00", 12 * time.Hour, "2020-02-29"},
		{"2020-01-02 03:00:00", 0, "2020-01-02"},
	}
	for _, tt := range tests {
		got := NightOf(at(t, tt.ts), tt.offset)
		assert.Equal(t, tt.want, got.Format(time.DateOnly), "%s offset %s", tt.ts, tt.offset)
		assert.Zero(t, timeOfDay(got))
	}
}

func TestBuildMatrixThirtyMinuteBuckets(t *testing.T) {
	t.Parallel()

	input := "2020-01-01 22:15:00, Myotis\n2020-01-01 22:45:00, Myotis\n"
	ds, err := roostlog.Parse(strings.NewReader(input), "example.csv", roostlog.Options{Location: time.UTC})
	require.NoError(t, err)

	m, err := BuildMatrix(ds.Detections, nil, MatrixOptions{BinSize: 30 * time.Minute, NightOffset: 12 * time.Hour})
	require.NoError(t, err)

	require.Len(t, m.Nights, 1)
	assert.Equal(t, 48, m.Buckets())

	nonZero := map[string]int{}
	for j, c := range m.Counts[0] {
		if c > 0 {
			nonZero[m.Bucket(j).Label()] = c
		}
	}
	assert.Equal(t, map[string]int{"22:00-22:30": 1, "22:30-23:00": 1}, nonZero)
}

func TestBuildMatrixTotals(t *testing.T) {
	t.Parallel()

	dets := detections(t,
		"2020-06-01 21:40:00",
		"2020-06-01 23:59:59",
		"2020-06-02 00:00:00",
		"2020-06-02 05:10:00",
		"2020-06-02 11:59:00",
		"2020-06-04 12:00:00",
	)
	m, err := BuildMatrix(dets, nil, MatrixOptions{BinSize: 15 * time.Minute, NightOffset: 12 * time.Hour})
	require.NoError(t, err)

	assert.Equal(t, len(dets), m.Total())
	require.Len(t, m.Nights, 4, "nights are contiguous from first to last")
	assert.Equal(t, []int{5, 0, 0, 1}, m.NightTotals())
	assert.Equal(t, 0, m.BucketOf(at(t, "2020-06-04 12:00:00")))
	assert.Equal(t, 95, m.BucketOf(at(t, "2020-06-02 11:59:00")))

	bucketSum := 0
	for _, c := range m.BucketTotals() {
		bucketSum += c
	}
	assert.Equal(t, m.Total(), bucketSum)
	assert.Equal(t, 1, m.Max())
}

func TestBuildMatrixKeepsEmptyNights(t *testing.T) {
	t.Parallel()

	nights := []time.Time{
		time.Date(2015, 7, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 7, 14, 0, 0, 0, 0, time.UTC),
	}
	dets := detections(t, "2015-07-16 22:00:00")

	m, err := BuildMatrix(dets, nights, MatrixOptions{BinSize: time.Hour, NightOffset: 12 * time.Hour})
	require.NoError(t, err)

	require.Len(t, m.Nights, 7)
	assert.Equal(t, nights[1], m.Nights[0])
	assert.Equal(t, nights[0], m.Nights[6])
	assert.Equal(t, []int{0, 0, 1, 0, 0, 0, 0}, m.NightTotals())
}

func TestBuildMatrixEmpty(t *testing.T) {
	t.Parallel()

	m, err := BuildMatrix(nil, nil, MatrixOptions{BinSize: 15 * time.Minute, NightOffset: 12 * time.Hour})
	require.NoError(t, err)

	assert.True(t, m.Empty())
	assert.Zero(t, m.Total())
	assert.Zero(t, m.Max())
	assert.Empty(t, m.Scaled(true))
	assert.Len(t, m.BucketTotals(), 96)
}

func TestBuildMatrixInvalidOptions(t *testing.T) {
	t.Parallel()

	for _, opts := range []MatrixOptions{
		{BinSize: 0},
		{BinSize: 7 * time.Minute},
		{BinSize: time.Hour, NightOffset: 24 * time.Hour},
	} {
		_, err := BuildMatrix(nil, nil, opts)
		require.Error(t, err)
		assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
	}
}

func TestBuildMatrixDeterministic(t *testing.T) {
	t.Parallel()

	dets := detections(t,
		"2020-06-03 01:00:00",
		"2020-06-01 22:00:00",
		"2020-06-02 23:30:00",
		"2020-06-01 22:05:00",
	)
	opts := MatrixOptions{BinSize: 30 * time.Minute, NightOffset: 12 * time.Hour}

	first, err := BuildMatrix(dets, nil, opts)
	require.NoError(t, err)
	for range 5 {
		again, err := BuildMatrix(dets, nil, opts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	for i := 1; i < len(first.Nights); i++ {
		assert.True(t, first.Nights[i-1].Before(first.Nights[i]))
	}
}

func TestBucketLabels(t *testing.T) {
	t.Parallel()

	m := &Matrix{BinSize: 30 * time.Minute, Origin: 12 * time.Hour}
	assert.Equal(t, "12:00-12:30", m.Bucket(0).Label())
	assert.Equal(t, "23:30-00:00", m.Bucket(23).Label())
	assert.Equal(t, "00:00-00:30", m.Bucket(24).String())
	assert.Equal(t, "11:30-12:00", m.Bucket(47).Label())
}

func TestPositionAndDayIndex(t *testing.T) {
	t.Parallel()

	m := &Matrix{BinSize: 30 * time.Minute, Origin: 12 * time.Hour}
	assert.InDelta(t, 20.5, m.Position(at(t, "2020-01-01 22:15:00")), 1e-9)
	assert.InDelta(t, 36, m.Position(at(t, "2020-01-02 06:00:00")), 1e-9)

	first := at(t, "2020-02-27 00:00:00")
	assert.Equal(t, 3, DayIndex(first, at(t, "2020-03-01 23:00:00")))
	assert.Equal(t, -1, DayIndex(first, at(t, "2020-02-26 12:00:00")))
}

func TestScaled(t *testing.T) {
	t.Parallel()

	m := &Matrix{Counts: [][]int{{0, 1, 9}}}
	assert.Equal(t, [][]float64{{0, 1, 9}}, m.Scaled(false))

	logged := m.Scaled(true)
	assert.InDelta(t, 0, logged[0][0], 1e-12)
	assert.InDelta(t, math.Log(2), logged[0][1], 1e-12)
	assert.InDelta(t, math.Log(10), logged[0][2], 1e-12)
}

func TestNightly(t *testing.T) {
	t.Parallel()

	dets := detections(t, "2020-06-01 22:00:00", "2020-06-02 02:00:00", "2020-06-03 21:00:00")
	s, err := Nightly(dets, nil, 12*time.Hour)
	require.NoError(t, err)

	require.Len(t, s.Nights, 3)
	assert.Equal(t, []int{2, 0, 1}, s.Counts)
	assert.Equal(t, []time.Duration{2 * time.Second, 0, time.Second}, s.Durations)
	assert.Equal(t, 3, s.Total())
	assert.Equal(t, 3*time.Second, s.TotalDuration())
	assert.Equal(t, 2, s.Index(time.Date(2020, 6, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, s.Index(time.Date(2020, 6, 4, 0, 0, 0, 0, time.UTC)))

	empty, err := Nightly(nil, nil, 12*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, empty.Total())
	assert.Equal(t, -1, empty.Index(time.Now()))
}

func TestDailyTemperatures(t *testing.T) {
	t.Parallel()

	temps := []roostlog.TemperatureRecord{
		{Timestamp: at(t, "2015-07-15 01:00:00"), Celsius: 12},
		{Timestamp: at(t, "2015-07-14 20:00:00"), Celsius: 20},
		{Timestamp: at(t, "2015-07-14 23:00:00"), Celsius: 16},
		{Timestamp: at(t, "2015-07-15 14:00:00"), Celsius: 24},
	}
	daily := DailyTemperatures(temps)

	require.Len(t, daily, 2)
	assert.Equal(t, "2015-07-14", daily[0].Date.Format(time.DateOnly))
	assert.InDelta(t, 16, daily[0].Min, 1e-9)
	assert.InDelta(t, 20, daily[0].Max, 1e-9)
	assert.InDelta(t, 18, daily[0].Mean, 1e-9)
	assert.Equal(t, 2, daily[1].Readings)
	assert.Empty(t, DailyTemperatures(nil))
}

func TestBuildTemperatureMatrix(t *testing.T) {
	t.Parallel()

	temps := []roostlog.TemperatureRecord{
		{Timestamp: at(t, "2015-07-16 00:02:00"), Celsius: 9},
		{Timestamp: at(t, "2015-07-14 20:00:00"), Celsius: 20},
		{Timestamp: at(t, "2015-07-14 20:04:00"), Celsius: 19},
	}
	tm, err := BuildTemperatureMatrix(temps, 5*time.Minute)
	require.NoError(t, err)

	require.Len(t, tm.Dates, 2, "only dates with readings get a row")
	assert.Equal(t, 288, tm.Buckets())
	assert.InDelta(t, 19, tm.Values[0][240], 1e-9, "last reading in a bucket wins")
	assert.InDelta(t, 9, tm.Values[1][0], 1e-9)
	assert.True(t, math.IsNaN(tm.Values[0][0]))

	lo, hi, ok := tm.Range()
	require.True(t, ok)
	assert.InDelta(t, 9, lo, 1e-9)
	assert.InDelta(t, 19, hi, 1e-9)

	empty, err := BuildTemperatureMatrix(nil, 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	_, _, ok = empty.Range()
	assert.False(t, ok)
}

func TestCelsiusToFahrenheit(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 32, CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 212, CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, -40, CelsiusToFahrenheit(-40), 1e-9)
}

package export

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/roostlogger/internal/activity"
	"github.com/tphakala/roostlogger/internal/errors"
	"github.com/tphakala/roostlogger/internal/roostlog"
)

func detectionsFrom(t *testing.T, input string) []roostlog.DetectionRecord {
	t.Helper()
	ds, err := roostlog.Parse(strings.NewReader(input), "test.csv", roostlog.Options{Location: time.UTC})
	require.NoError(t, err)
	return ds.Detections
}

func TestSummaryFromMatrix(t *testing.T) {
	t.Parallel()

	dets := detectionsFrom(t, "2020-01-01 22:15:00, Myotis\n2020-01-01 22:45:00, Myotis\n2020-01-03 01:00:00\n")
	m, err := activity.BuildMatrix(dets, nil, activity.MatrixOptions{BinSize: 30 * time.Minute, NightOffset: 12 * time.Hour})
	require.NoError(t, err)

	s := &Summary{Source: "test.csv", Chart: "heatmap"}
	s.AddMatrix(m)

	assert.Equal(t, 3, s.Detections)
	assert.Equal(t, "30m0s", s.BinSize)
	require.Len(t, s.Nights, 2)
	assert.Equal(t, NightSummary{Night: "2020-01-01", Detections: 2}, s.Nights[0])
	assert.Equal(t, NightSummary{Night: "2020-01-02", Detections: 1}, s.Nights[1])
	require.Len(t, s.Buckets, 48)
	assert.Equal(t, BucketSummary{Bucket: "22:00-22:30", Detections: 1}, s.Buckets[20])
	assert.Equal(t, BucketSummary{Bucket: "22:30-23:00", Detections: 1}, s.Buckets[21])
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0o755))

	series := &activity.NightSeries{
		Nights:    []time.Time{time.Date(2015, 7, 14, 0, 0, 0, 0, time.UTC)},
		Counts:    []int{12},
		Durations: []time.Duration{90 * time.Second},
	}
	s := &Summary{Source: "/data/roost", Chart: "report", SkippedRows: 1}
	s.AddSeries(series)
	s.AddTemperatures([]activity.DailyTemperature{
		{Date: time.Date(2015, 7, 14, 0, 0, 0, 0, time.UTC), Min: 11.5, Max: 24, Mean: 17.25, Readings: 288},
	})

	require.NoError(t, Write(fs, "/out/summary.yaml", s))

	got, err := Read(fs, "/out/summary.yaml")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWriteDeterministic(t *testing.T) {
	t.Parallel()

	dets := detectionsFrom(t, "2020-06-03 01:00:00\n2020-06-01 22:00:00\n2020-06-02 23:30:00\n")
	build := func() []byte {
		m, err := activity.BuildMatrix(dets, nil, activity.MatrixOptions{BinSize: 15 * time.Minute, NightOffset: 12 * time.Hour})
		require.NoError(t, err)
		s := &Summary{Source: "test.csv", Chart: "heatmap"}
		s.AddMatrix(m)

		fs := afero.NewMemMapFs()
		require.NoError(t, Write(fs, "/summary.yaml", s))
		data, err := afero.ReadFile(fs, "/summary.yaml")
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, build(), build())
}

func TestWriteUnwritable(t *testing.T) {
	t.Parallel()

	err := Write(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out/summary.yaml", &Summary{})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileIO))
}

func TestReadMalformed(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("nights: [unclosed"), 0o644))

	_, err := Read(fs, "/bad.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileParsing))
}

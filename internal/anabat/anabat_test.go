package anabat

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/roostlogger/internal/errors"
)

// buildFile lays out a type 132 header with the given time and interval stream
func buildFile(ts time.Time, stream ...byte) []byte {
	const dataInfo, dataStart = 0x11A, 0x150
	data := make([]byte, dataStart, dataStart+len(stream))
	binary.LittleEndian.PutUint16(data[0:2], dataInfo)
	data[3] = 132
	binary.LittleEndian.PutUint16(data[dataInfo:dataInfo+2], dataStart)
	binary.LittleEndian.PutUint16(data[0x120:0x122], uint16(ts.Year()))
	data[0x122] = byte(ts.Month())
	data[0x123] = byte(ts.Day())
	data[0x124] = byte(ts.Hour())
	data[0x125] = byte(ts.Minute())
	data[0x126] = byte(ts.Second())
	return append(data, stream...)
}

func TestReadTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2015, 7, 14, 22, 47, 5, 0, time.UTC)
	got, err := ReadTimestamp(buildFile(want), time.UTC)
	require.NoError(t, err)
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestReadTimestampErrors(t *testing.T) {
	t.Parallel()

	_, err := ReadTimestamp(make([]byte, 0x100), time.UTC)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileParsing))

	bad := buildFile(time.Date(2015, 7, 14, 22, 0, 0, 0, time.UTC))
	bad[0x122] = 13
	_, err = ReadTimestamp(bad, time.UTC)
	require.Error(t, err)

	feb30 := buildFile(time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC))
	feb30[0x123] = 30
	_, err = ReadTimestamp(feb30, time.UTC)
	require.ErrorContains(t, err, "invalid date")
}

func TestDecodeIntervals(t *testing.T) {
	t.Parallel()

	ts := time.Date(2015, 7, 14, 22, 47, 5, 0, time.UTC)
	stream := []byte{
		0x05,                   // leading one-byte offset, ignored
		0x81, 0x00,             // 13-bit: 0x100 = 256us
		0x04,                   // +4 -> 260us
		0x7E,                   // -2 -> 258us
		0xA1, 0x00, 0x00,       // 21-bit: 0x10000 = 65536us
		0xE3, 0x10,             // status for 16 dots
		0xC0, 0x00, 0x01, 0x00, // 29-bit: 256us
	}

	f, err := Decode(buildFile(ts, stream...), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, uint8(132), f.FileType)
	assert.True(t, ts.Equal(f.Timestamp))
	assert.Equal(t, 5, f.Intervals)
	assert.Equal(t, 3, f.Skipped)
	assert.Equal(t, time.Duration(256+260+258+65536+256)*time.Microsecond, f.Duration)
}

func TestDecodeEmptySequence(t *testing.T) {
	t.Parallel()

	f, err := Decode(buildFile(time.Date(2015, 7, 14, 22, 0, 0, 0, time.UTC)), time.UTC)
	require.NoError(t, err)
	assert.Zero(t, f.Duration)
	assert.Zero(t, f.Intervals)
}

func TestDecodeTruncated(t *testing.T) {
	t.Parallel()

	ts := time.Date(2015, 7, 14, 22, 0, 0, 0, time.UTC)
	for _, stream := range [][]byte{{0x81}, {0xA1, 0x00}, {0xC1, 0x00, 0x00}, {0xE0}} {
		_, err := Decode(buildFile(ts, stream...), ts.Location())
		require.Error(t, err, "stream % x", stream)
		assert.Contains(t, err.Error(), "truncated")
	}
}

func TestDecodeBadDataInfoPointer(t *testing.T) {
	t.Parallel()

	data := buildFile(time.Date(2015, 7, 14, 22, 0, 0, 0, time.UTC))
	binary.LittleEndian.PutUint16(data[0:2], 0xFFFF)
	_, err := Decode(data, time.UTC)
	require.ErrorContains(t, err, "data info pointer")
}

func FuzzDecode(f *testing.F) {
	f.Add(buildFile(time.Date(2015, 7, 14, 22, 0, 0, 0, time.UTC), 0x81, 0x00, 0x04))
	f.Add([]byte{0x00, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must never panic, whatever the input
		_, _ = Decode(data, time.UTC)
	})
}

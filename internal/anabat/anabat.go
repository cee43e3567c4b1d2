// Package anabat decodes the header timestamp and call sequence of Anabat
// zero-crossing files written by the RoostLogger.
//
// Layout reference: http://users.lmi.net/corben/fileform.htm#ANABAT_SEQUENCE_FILE_TYPE_132
package anabat

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/tphakala/roostlogger/internal/errors"
)

const (
	// timestampOffset is where the <HBBBBB recording time starts
	timestampOffset = 0x120
	timestampSize   = 7

	// headerSize covers the data info pointer, one pad byte and the file type
	headerSize = 4
)

// File is the decoded subset of an Anabat sequence file
type File struct {
	FileType  uint8
	Timestamp time.Time
	Duration  time.Duration // sum of all zero-crossing intervals
	Intervals int           // number of decoded intervals
	Skipped   int           // bytes ignored: leading offsets and status blocks
}

// ReadTimestamp extracts the recording start time from the file header.
// The logger stores local wall clock time, interpreted in loc.
func ReadTimestamp(data []byte, loc *time.Location) (time.Time, error) {
	if len(data) < timestampOffset+timestampSize {
		return time.Time{}, newDecodeError(fmt.Errorf("file too short for timestamp: %d bytes", len(data)))
	}

	b := data[timestampOffset : timestampOffset+timestampSize]
	year := int(binary.LittleEndian.Uint16(b[0:2]))
	month, day, hour, minute, second := int(b[2]), int(b[3]), int(b[4]), int(b[5]), int(b[6])

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, newDecodeError(fmt.Errorf("invalid timestamp %04d-%02d-%02d %02d:%02d:%02d",
			year, month, day, hour, minute, second))
	}

	if loc == nil {
		loc = time.Local
	}
	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	if ts.Day() != day {
		return time.Time{}, newDecodeError(fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day))
	}
	return ts, nil
}

// Decode reads the timestamp and walks the interval stream of a sequence file.
func Decode(data []byte, loc *time.Location) (*File, error) {
	ts, err := ReadTimestamp(data, loc)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, newDecodeError(fmt.Errorf("file too short for header"))
	}

	dataInfo := int(binary.LittleEndian.Uint16(data[0:2]))
	if dataInfo+2 > len(data) {
		return nil, newDecodeError(fmt.Errorf("data info pointer 0x%x beyond end of file", dataInfo))
	}
	dataPointer := int(binary.LittleEndian.Uint16(data[dataInfo : dataInfo+2]))

	f := &File{FileType: data[3], Timestamp: ts}
	total, err := f.walkIntervals(data, dataPointer)
	if err != nil {
		return nil, err
	}
	f.Duration = time.Duration(total) * time.Microsecond
	return f, nil
}

// walkIntervals sums the interval stream starting at offset i, in microseconds.
func (f *File) walkIntervals(data []byte, i int) (int64, error) {
	var total, prev int64

	// need returns the next n bytes after the control byte at i
	need := func(i, n int) ([]byte, error) {
		if i+n >= len(data) {
			return nil, newDecodeError(fmt.Errorf("truncated interval at offset 0x%x", i))
		}
		return data[i+1 : i+1+n], nil
	}

	for i < len(data) {
		b := data[i]
		switch {
		case b <= 0x7F:
			// 7-bit two's complement offset from the previous interval
			offset := int64(b)
			if b >= 0x40 {
				offset -= 0x80
			}
			if f.Intervals == 0 {
				f.Skipped++
				break
			}
			prev += offset
			total += prev
			f.Intervals++

		case b <= 0x9F:
			rest, err := need(i, 1)
			if err != nil {
				return 0, err
			}
			prev = int64(b&0x1F)<<8 | int64(rest[0])
			total += prev
			f.Intervals++
			i++

		case b <= 0xBF:
			rest, err := need(i, 2)
			if err != nil {
				return 0, err
			}
			prev = int64(b&0x1F)<<16 | int64(rest[0])<<8 | int64(rest[1])
			total += prev
			f.Intervals++
			i += 2

		case b <= 0xDF:
			rest, err := need(i, 3)
			if err != nil {
				return 0, err
			}
			prev = int64(b&0x1F)<<24 | int64(rest[0])<<16 | int64(rest[1])<<8 | int64(rest[2])
			total += prev
			f.Intervals++
			i += 3

		default:
			// Status byte for the next n dots; the status itself is not used
			if _, err := need(i, 1); err != nil {
				return 0, err
			}
			f.Skipped += 2
			i++
		}
		i++
	}

	return total, nil
}

func newDecodeError(err error) *errors.EnhancedError {
	return errors.New(err).
		Component("anabat").
		Category(errors.CategoryFileParsing).
		Build()
}

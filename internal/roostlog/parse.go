package roostlog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tphakala/roostlogger/internal/errors"
	"github.com/tphakala/roostlogger/internal/logger"
)

// timestampLayouts are tried in order for the first field of every row
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
}

// Options controls how logs are interpreted
type Options struct {
	// Location is the zone the logger clock was set to. Defaults to time.Local.
	Location *time.Location
	Logger   logger.Logger
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) log() logger.Logger {
	if o.Logger == nil {
		return logger.Global().Module("roostlog")
	}
	return o.Logger
}

// ParseTimestamp parses a log timestamp in loc
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Parse reads a delimited log. Malformed rows are logged, recorded in
// Dataset.Skipped and otherwise ignored; only read failures are returned.
func Parse(r io.Reader, source string, opts Options) (*Dataset, error) {
	log := opts.log()
	loc := opts.location()
	ds := &Dataset{Source: source}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		delim     string
		lineNo    int
		firstData = true
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if delim == "" {
			delim = sniffDelimiter(line)
		}

		fields := strings.Split(line, delim)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if firstData {
			firstData = false
			if _, err := ParseTimestamp(fields[0], loc); err != nil {
				log.Debug("skipping header row", logger.String("source", source), logger.Int("line", lineNo))
				continue
			}
		}

		if perr := ds.addRow(fields, loc); perr != nil {
			perr.Source = source
			perr.Line = lineNo
			perr.Text = line
			ds.Skipped = append(ds.Skipped, perr)
			log.Warn("skipping malformed row",
				logger.String("source", source),
				logger.Int("line", lineNo),
				logger.String("reason", perr.Reason))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New(fmt.Errorf("reading %s: %w", source, err)).
			Component("roostlog").
			Category(errors.CategoryFileIO).
			Context("line", lineNo).
			Build()
	}

	log.Debug("parsed log",
		logger.String("source", source),
		logger.Int("detections", len(ds.Detections)),
		logger.Int("temperatures", len(ds.Temperatures)),
		logger.Int("skipped", len(ds.Skipped)))
	return ds, nil
}

// sniffDelimiter picks tab when the first line has one, comma otherwise
func sniffDelimiter(line string) string {
	if strings.Contains(line, "\t") {
		return "\t"
	}
	return ","
}

// addRow dispatches on the column count:
//
//	timestamp                      detection
//	timestamp, tag                 detection with species or call type
//	timestamp, celsius             temperature
//	timestamp, celsius, humidity   temperature with humidity
func (ds *Dataset) addRow(fields []string, loc *time.Location) *ParseError {
	ts, err := ParseTimestamp(fields[0], loc)
	if err != nil {
		return &ParseError{Reason: err.Error()}
	}

	switch len(fields) {
	case 1:
		ds.Detections = append(ds.Detections, DetectionRecord{Timestamp: ts})

	case 2:
		if c, err := strconv.ParseFloat(fields[1], 64); err == nil {
			ds.Temperatures = append(ds.Temperatures, TemperatureRecord{Timestamp: ts, Celsius: c})
			break
		}
		ds.Detections = append(ds.Detections, DetectionRecord{Timestamp: ts, Tag: NormalizeTag(fields[1])})

	case 3:
		c, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return &ParseError{Reason: fmt.Sprintf("invalid temperature %q", fields[1])}
		}
		rec := TemperatureRecord{Timestamp: ts, Celsius: c}
		if fields[2] != "" {
			h, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return &ParseError{Reason: fmt.Sprintf("invalid humidity %q", fields[2])}
			}
			rec.Humidity, rec.HasHumidity = h, true
		}
		ds.Temperatures = append(ds.Temperatures, rec)

	default:
		return &ParseError{Reason: fmt.Sprintf("unexpected column count %d", len(fields))}
	}
	return nil
}

// NormalizeTag tidies a species or call type tag. All-lowercase tags get the
// genus capitalized ("myotis lucifugus" -> "Myotis lucifugus"); anything with
// capitals already, like four letter codes, is kept as written.
func NormalizeTag(tag string) string {
	tag = strings.Join(strings.Fields(tag), " ")
	if tag == "" || tag != strings.ToLower(tag) {
		return tag
	}
	genus, rest, found := strings.Cut(tag, " ")
	genus = cases.Title(language.English).String(genus)
	if !found {
		return genus
	}
	return genus + " " + rest
}

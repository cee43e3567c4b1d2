package roostlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/tphakala/roostlogger/internal/anabat"
	"github.com/tphakala/roostlogger/internal/errors"
	"github.com/tphakala/roostlogger/internal/logger"
)

// HumiTempFile is the temperature log the logger writes next to its recordings
const HumiTempFile = "HumiTemp.txt"

// filesPerMark is how many recordings one '#' stands for in progress output
const filesPerMark = 100

// Open loads path from fsys: a folder is read as Anabat recordings, anything
// else as a delimited log. A missing path is a not-found error.
func Open(fsys afero.Fs, path string, opts Options) (*Dataset, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		category := errors.CategoryFileIO
		if os.IsNotExist(err) {
			category = errors.CategoryNotFound
		}
		return nil, errors.New(fmt.Errorf("input %s: %w", path, err)).
			Component("roostlog").
			Category(category).
			FileContext(path, 0).
			Build()
	}

	if info.IsDir() {
		return LoadFolder(fsys, path, opts)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.New(fmt.Errorf("opening %s: %w", path, err)).
			Component("roostlog").
			Category(errors.CategoryFileIO).
			FileContext(path, info.Size()).
			Build()
	}
	defer f.Close()

	return Parse(f, path, opts)
}

// LoadFolder reads a folder of Anabat recordings. Nightly YYYYMMDD sub-folders
// are preferred; without any, the folder itself is scanned. A HumiTemp.txt
// in the folder is loaded as temperatures.
func LoadFolder(fsys afero.Fs, dir string, opts Options) (*Dataset, error) {
	log := opts.log()
	loc := opts.location()

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.New(fmt.Errorf("reading folder %s: %w", dir, err)).
			Component("roostlog").
			Category(errors.CategoryFileIO).
			Context("folder", dir).
			Build()
	}

	ds := &Dataset{Source: dir}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		night, ok := parseNightFolder(entry.Name(), loc)
		if !ok {
			continue
		}
		ds.Nights = append(ds.Nights, night)

		n, err := ds.readRecordings(fsys, filepath.Join(dir, entry.Name()), opts)
		if err != nil {
			return nil, err
		}
		log.Info("loaded night",
			logger.String("night", entry.Name()),
			logger.Int("files", n),
			logger.String("activity", activityBar(n)))
	}

	if len(ds.Nights) == 0 {
		n, err := ds.readRecordings(fsys, dir, opts)
		if err != nil {
			return nil, err
		}
		log.Info("loaded flat folder", logger.String("folder", dir), logger.Int("files", n))
	}

	if err := ds.loadHumiTemp(fsys, dir, opts); err != nil {
		return nil, err
	}

	return ds, nil
}

// parseNightFolder accepts folder names like 20150714
func parseNightFolder(name string, loc *time.Location) (time.Time, bool) {
	if len(name) != 8 || !strings.HasPrefix(name, "20") {
		return time.Time{}, false
	}
	night, err := time.ParseInLocation("20060102", name, loc)
	if err != nil {
		return time.Time{}, false
	}
	return night, true
}

// IsRecording reports whether name looks like an Anabat sequence (*.*#) or
// zero-crossing (*.zc) file
func IsRecording(name string) bool {
	if strings.EqualFold(filepath.Ext(name), ".zc") {
		return true
	}
	ext := filepath.Ext(name)
	return len(ext) > 2 && strings.HasSuffix(ext, "#")
}

// readRecordings adds one detection per readable recording in dir and
// returns how many were added
func (ds *Dataset) readRecordings(fsys afero.Fs, dir string, opts Options) (int, error) {
	log := opts.log()

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return 0, errors.New(fmt.Errorf("reading folder %s: %w", dir, err)).
			Component("roostlog").
			Category(errors.CategoryFileIO).
			Context("folder", dir).
			Build()
	}

	var added int
	for _, entry := range entries {
		if entry.IsDir() || !IsRecording(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		rec, err := readRecording(fsys, path, opts.location())
		if err != nil {
			perr := &ParseError{Source: path, Reason: err.Error()}
			ds.Skipped = append(ds.Skipped, perr)
			log.Warn("skipping unreadable recording", logger.String("file", path), logger.Error(err))
			continue
		}
		ds.Detections = append(ds.Detections, rec)
		added++
	}
	return added, nil
}

// readRecording decodes one file. Zero-crossing .zc files only carry a usable
// timestamp; sequence files also yield the call duration.
func readRecording(fsys afero.Fs, path string, loc *time.Location) (DetectionRecord, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return DetectionRecord{}, err
	}

	if strings.EqualFold(filepath.Ext(path), ".zc") {
		ts, err := anabat.ReadTimestamp(data, loc)
		if err != nil {
			return DetectionRecord{}, err
		}
		return DetectionRecord{Timestamp: ts}, nil
	}

	f, err := anabat.Decode(data, loc)
	if err != nil {
		return DetectionRecord{}, err
	}
	return DetectionRecord{Timestamp: f.Timestamp, Duration: f.Duration}, nil
}

func (ds *Dataset) loadHumiTemp(fsys afero.Fs, dir string, opts Options) error {
	path := filepath.Join(dir, HumiTempFile)
	if ok, _ := afero.Exists(fsys, path); !ok {
		return nil
	}

	temps, err := Open(fsys, path, opts)
	if err != nil {
		return err
	}
	ds.Temperatures = append(ds.Temperatures, temps.Temperatures...)
	ds.Skipped = append(ds.Skipped, temps.Skipped...)
	return nil
}

func activityBar(files int) string {
	return strings.Repeat("#", (files+filesPerMark/2)/filesPerMark)
}

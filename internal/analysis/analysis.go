// Package analysis runs the load, aggregate and render pipeline behind each
// roostlogger command.
package analysis

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tphakala/roostlogger/internal/chart"
	"github.com/tphakala/roostlogger/internal/conf"
	"github.com/tphakala/roostlogger/internal/errors"
	"github.com/tphakala/roostlogger/internal/export"
	"github.com/tphakala/roostlogger/internal/logger"
	"github.com/tphakala/roostlogger/internal/roostlog"
)

// runner carries what every pipeline needs
type runner struct {
	settings *conf.Settings
	fs       afero.Fs
	log      logger.Logger
	printer  *message.Printer
}

func newRunner(settings *conf.Settings, command string) *runner {
	return &runner{
		settings: settings,
		fs:       afero.NewOsFs(),
		log:      logger.Global().Module("analysis").Module(command),
		printer:  message.NewPrinter(language.English),
	}
}

// input describes the loaded input path
type input struct {
	path    string
	isDir   bool
	dataset *roostlog.Dataset
}

// load reads path as a log file or Anabat folder
func (r *runner) load(path string) (*input, error) {
	if path == "" {
		return nil, errors.New(fmt.Errorf("no input path given")).
			Component("analysis").
			Category(errors.CategoryValidation).
			Build()
	}

	start := time.Now()
	ds, err := roostlog.Open(r.fs, path, roostlog.Options{
		Location: r.settings.TimeLocation(),
		Logger:   logger.Global().Module("roostlog"),
	})
	if err != nil {
		return nil, err
	}

	isDir, err := afero.IsDir(r.fs, path)
	if err != nil {
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}

	r.log.Info("loaded input",
		logger.String("path", path),
		logger.String("detections", r.printer.Sprintf("%d", len(ds.Detections))),
		logger.String("temperatures", r.printer.Sprintf("%d", len(ds.Temperatures))),
		logger.Int("skipped", len(ds.Skipped)),
		logger.Duration("elapsed", time.Since(start)))
	if len(ds.Skipped) > 0 {
		r.log.Warn("some rows were skipped", logger.Int("count", len(ds.Skipped)))
	}

	return &input{path: path, isDir: isDir, dataset: ds}, nil
}

// outputPath is the configured output or one derived from the input
func (r *runner) outputPath(in *input, kind chart.Kind) (string, error) {
	if r.settings.Output.Path != "" {
		return r.settings.Output.Path, nil
	}
	return chart.OutputPath(in.path, in.isDir, kind)
}

func (r *runner) chartOptions(in *input) chart.Options {
	return chart.Options{
		Title:  chart.DatasetName(in.path, in.isDir),
		Width:  r.settings.Output.Width,
		Height: r.settings.Output.Height,
	}
}

// writeSummary stores the YAML summary when one was requested
func (r *runner) writeSummary(s *export.Summary) error {
	path := r.settings.Output.Summary
	if path == "" {
		return nil
	}
	if err := export.Write(r.fs, path, s); err != nil {
		return err
	}
	r.log.Info("wrote summary", logger.String("path", path))
	return nil
}

func (r *runner) rendered(kind chart.Kind, path string, start time.Time) {
	r.log.Info("rendered chart",
		logger.String("chart", string(kind)),
		logger.String("output", path),
		logger.Duration("elapsed", time.Since(start)))
}

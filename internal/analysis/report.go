package analysis

import (
	"strings"
	"time"

	"github.com/tphakala/roostlogger/internal/activity"
	"github.com/tphakala/roostlogger/internal/chart"
	"github.com/tphakala/roostlogger/internal/conf"
	"github.com/tphakala/roostlogger/internal/export"
	"github.com/tphakala/roostlogger/internal/logger"
)

// filesPerMark is how many detections one '#' stands for in the progress log
const filesPerMark = 100

// Report renders per-night activity above daily temperatures. Temperatures
// come from the separate temperature log when one is configured, otherwise
// from the input itself.
func Report(settings *conf.Settings) error {
	r := newRunner(settings, "report")
	start := time.Now()

	in, err := r.load(settings.Input.Path)
	if err != nil {
		return err
	}

	series, err := activity.Nightly(in.dataset.Detections, in.dataset.Nights, settings.Heatmap.NightOffset)
	if err != nil {
		return err
	}
	for i, night := range series.Nights {
		r.log.Info("night",
			logger.String("night", night.Format(time.DateOnly)),
			logger.Int("detections", series.Counts[i]),
			logger.Duration("duration", series.Durations[i].Round(100*time.Millisecond)),
			logger.String("activity", strings.Repeat("#", (series.Counts[i]+filesPerMark/2)/filesPerMark)))
	}

	temps := in.dataset.Temperatures
	skipped := len(in.dataset.Skipped)
	if settings.Input.Temperature != "" {
		tin, err := r.load(settings.Input.Temperature)
		if err != nil {
			return err
		}
		temps = tin.dataset.Temperatures
		skipped += len(tin.dataset.Skipped)
	}
	daily := activity.DailyTemperatures(temps)
	if len(daily) == 0 {
		r.log.Info("no temperature readings, drawing activity only")
	}

	out, err := r.outputPath(in, chart.KindReport)
	if err != nil {
		return err
	}
	opts := chart.ReportOptions{Options: r.chartOptions(in), Metric: settings.Report.Metric}
	if err := chart.Report(series, daily, opts, out); err != nil {
		return err
	}
	r.rendered(chart.KindReport, out, start)

	summary := &export.Summary{Source: in.path, Chart: string(chart.KindReport), SkippedRows: skipped}
	summary.AddSeries(series)
	summary.AddTemperatures(daily)
	return r.writeSummary(summary)
}

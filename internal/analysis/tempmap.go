package analysis

import (
	"time"

	"github.com/tphakala/roostlogger/internal/activity"
	"github.com/tphakala/roostlogger/internal/chart"
	"github.com/tphakala/roostlogger/internal/conf"
	"github.com/tphakala/roostlogger/internal/export"
	"github.com/tphakala/roostlogger/internal/logger"
)

// TemperatureMap renders temperature readings by date and time of day.
func TemperatureMap(settings *conf.Settings) error {
	r := newRunner(settings, "tempmap")
	start := time.Now()

	in, err := r.load(settings.Input.Path)
	if err != nil {
		return err
	}
	temps := in.dataset.Temperatures
	if len(temps) == 0 {
		r.log.Warn("input has no temperature readings", logger.String("path", in.path))
	}

	tm, err := activity.BuildTemperatureMatrix(temps, settings.TempMap.BinSize)
	if err != nil {
		return err
	}
	daily := activity.DailyTemperatures(temps)

	out, err := r.outputPath(in, chart.KindTempMap)
	if err != nil {
		return err
	}
	if err := chart.TemperatureMap(tm, daily, r.chartOptions(in), out); err != nil {
		return err
	}
	r.rendered(chart.KindTempMap, out, start)

	summary := &export.Summary{Source: in.path, Chart: string(chart.KindTempMap), SkippedRows: len(in.dataset.Skipped)}
	summary.AddTemperatures(daily)
	return r.writeSummary(summary)
}

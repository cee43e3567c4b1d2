package analysis

import (
	"time"

	"github.com/tphakala/roostlogger/internal/activity"
	"github.com/tphakala/roostlogger/internal/chart"
	"github.com/tphakala/roostlogger/internal/conf"
	"github.com/tphakala/roostlogger/internal/export"
	"github.com/tphakala/roostlogger/internal/logger"
	"github.com/tphakala/roostlogger/internal/suncalc"
)

// Heatmap renders detection activity by night and time of night.
func Heatmap(settings *conf.Settings) error {
	r := newRunner(settings, "heatmap")
	start := time.Now()

	in, err := r.load(settings.Input.Path)
	if err != nil {
		return err
	}

	m, err := activity.BuildMatrix(in.dataset.Detections, in.dataset.Nights, activity.MatrixOptions{
		BinSize:     settings.Heatmap.BinSize,
		NightOffset: settings.Heatmap.NightOffset,
	})
	if err != nil {
		return err
	}

	totals := m.NightTotals()
	for i, night := range m.Nights {
		r.log.Debug("night activity",
			logger.String("night", night.Format(time.DateOnly)),
			logger.Int("detections", totals[i]))
	}

	out, err := r.outputPath(in, chart.KindHeatmap)
	if err != nil {
		return err
	}

	opts := chart.HeatmapOptions{
		Options:       r.chartOptions(in),
		LogScale:      settings.Heatmap.LogScale,
		Sun:           r.sunEvents(m.Nights),
		CivilTwilight: settings.Heatmap.CivilTwilight,
	}
	if err := chart.Heatmap(m, opts, out); err != nil {
		return err
	}
	r.rendered(chart.KindHeatmap, out, start)

	summary := &export.Summary{Source: in.path, Chart: string(chart.KindHeatmap), SkippedRows: len(in.dataset.Skipped)}
	summary.AddMatrix(m)
	return r.writeSummary(summary)
}

// sunEvents computes the overlay for every night, skipping nights the sun
// does not set or rise on
func (r *runner) sunEvents(nights []time.Time) []suncalc.NightEvents {
	loc := r.settings.Location
	if !loc.Enabled() || len(nights) == 0 {
		return nil
	}

	sc := suncalc.NewSunCalc(loc.Latitude, loc.Longitude, r.settings.TimeLocation())
	events := make([]suncalc.NightEvents, 0, len(nights))
	for _, night := range nights {
		ev, err := sc.Night(night)
		if err != nil {
			r.log.Debug("no sun events for night",
				logger.String("night", night.Format(time.DateOnly)),
				logger.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events
}

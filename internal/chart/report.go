package chart

import (
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tphakala/roostlogger/internal/activity"
)

// Activity metrics for the report bars
const (
	MetricCount    = "count"
	MetricDuration = "duration"
)

// ReportOptions controls the activity/temperature report
type ReportOptions struct {
	Options
	Metric string // MetricCount or MetricDuration
}

// Report draws per-night activity bars above the daily temperature band.
// Without temperatures only the activity panel is drawn.
func Report(series *activity.NightSeries, daily []activity.DailyTemperature, opts ReportOptions, path string) error {
	if len(series.Nights) == 0 && len(daily) == 0 {
		p := plot.New()
		p.Title.Text = opts.title()
		if err := noDataLabel(p, "no detections"); err != nil {
			return newRenderError(err, path)
		}
		return save(p, opts.Options, path)
	}

	var first time.Time
	if len(series.Nights) > 0 {
		first = series.Nights[0]
	} else {
		first = daily[0].Date
	}
	lo, hi := dayRange(len(series.Nights), daily, first)

	top, err := activityPlot(series, opts)
	if err != nil {
		return newRenderError(err, path)
	}
	top.Title.Text = opts.title()

	plots := []*plot.Plot{top}
	if len(daily) > 0 {
		bottom, err := temperaturePlot(daily, first)
		if err != nil {
			return newRenderError(err, path)
		}
		bottom.X.Label.Text = "Date"
		plots = append(plots, bottom)
	} else {
		top.X.Label.Text = "Date"
	}

	for _, p := range plots {
		p.X.Min, p.X.Max = float64(lo)-0.5, float64(hi)+0.5
		p.X.Tick.Marker = dateTicker(first, lo, hi)
	}

	if len(plots) == 1 {
		return save(top, opts.Options, path)
	}
	return saveStacked(plots, opts.Options, path)
}

// activityPlot draws one bar per night
func activityPlot(series *activity.NightSeries, opts ReportOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Add(plotter.NewGrid())

	values := make(plotter.Values, len(series.Nights))
	for i := range series.Nights {
		if opts.Metric == MetricDuration {
			values[i] = series.Durations[i].Minutes()
		} else {
			values[i] = float64(series.Counts[i])
		}
	}
	if opts.Metric == MetricDuration {
		p.Y.Label.Text = "Activity duration (minutes)"
	} else {
		p.Y.Label.Text = "Detections per night"
	}

	if len(values) == 0 {
		return p, nil
	}

	// Bars take 85% of a night's slot; the data area is roughly 85% of the image width
	w, _ := opts.size()
	width := w * 0.85 * 0.85 / vg.Length(len(values))
	bars, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.Y.Min = 0
	return p, nil
}

package chart

import (
	"gonum.org/v1/plot"

	"github.com/tphakala/roostlogger/internal/activity"
)

// TemperatureMap draws readings as a date by time-of-day color matrix above
// the daily min/max/mean temperature panel
func TemperatureMap(tm *activity.TemperatureMatrix, daily []activity.DailyTemperature, opts Options, path string) error {
	lo, hi, ok := tm.Range()
	if tm.Empty() || !ok {
		p := plot.New()
		p.Title.Text = opts.title()
		if err := noDataLabel(p, "no temperature readings"); err != nil {
			return newRenderError(err, path)
		}
		return save(p, opts, path)
	}
	if hi == lo {
		hi = lo + 1
	}

	first := tm.Dates[0]
	xs := make([]float64, len(tm.Dates))
	for i, d := range tm.Dates {
		xs[i] = float64(activity.DayIndex(first, d))
	}

	top := heatPlot(heatGrid{values: tm.Values, xs: xs}, lo, hi)
	top.Title.Text = opts.title()
	top.Y.Label.Text = "Time"
	top.Y.Tick.Marker = clockTicker(0, tm.BinSize)

	bottom, err := temperaturePlot(daily, first)
	if err != nil {
		return newRenderError(err, path)
	}
	bottom.X.Label.Text = "Date"

	xlo, xhi := dayRange(int(xs[len(xs)-1])+1, daily, first)
	for _, p := range []*plot.Plot{top, bottom} {
		p.X.Min, p.X.Max = float64(xlo)-0.5, float64(xhi)+0.5
		p.X.Tick.Marker = dateTicker(first, xlo, xhi)
	}

	return saveStacked([]*plot.Plot{top, bottom}, opts, path)
}

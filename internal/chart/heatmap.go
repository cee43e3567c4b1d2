package chart

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tphakala/roostlogger/internal/activity"
	"github.com/tphakala/roostlogger/internal/suncalc"
)

// paletteSize is the number of colors the color maps are sampled into
const paletteSize = 255

// HeatmapOptions controls the activity heatmap
type HeatmapOptions struct {
	Options
	LogScale      bool
	Sun           []suncalc.NightEvents // optional sunset/sunrise overlay
	CivilTwilight bool                  // also draw civil dusk and dawn
}

// heatGrid exposes [column][row] values as a plotter.GridXYZ
type heatGrid struct {
	values [][]float64
	xs     []float64 // column positions, nil for 0..n-1
}

func (g heatGrid) Dims() (c, r int) {
	if len(g.values) == 0 {
		return 0, 0
	}
	return len(g.values), len(g.values[0])
}

func (g heatGrid) Z(c, r int) float64 { return g.values[c][r] }

func (g heatGrid) X(c int) float64 {
	if g.xs == nil {
		return float64(c)
	}
	return g.xs[c]
}

func (g heatGrid) Y(r int) float64 { return float64(r) }

// blackBody samples the extended black body map, dark for quiet cells
func blackBody() palette.Palette {
	cm := moreland.ExtendedBlackBody()
	cm.SetMax(1)
	return cm.Palette(paletteSize)
}

// clockTicker labels bucket rows every 6 hours of wall clock time starting at
// origin, with a minor tick every hour. Rows are centered on whole numbers.
func clockTicker(origin, binSize time.Duration) plot.Ticker {
	return tickerFunc(func(_, _ float64) []plot.Tick {
		var ticks []plot.Tick
		for h := time.Duration(0); h <= 24*time.Hour; h += time.Hour {
			tick := plot.Tick{Value: float64(h)/float64(binSize) - 0.5}
			if h%(6*time.Hour) == 0 {
				tick.Label = clock(origin + h)
			}
			ticks = append(ticks, tick)
		}
		return ticks
	})
}

// clock formats a time of day as HH:MM, wrapping at midnight
func clock(d time.Duration) string {
	d = ((d % (24 * time.Hour)) + 24*time.Hour) % (24 * time.Hour)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// heatPlot builds a plot with an inverted time axis so the evening is at the top
func heatPlot(grid heatGrid, zmin, zmax float64) *plot.Plot {
	p := plot.New()
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	heat := plotter.NewHeatMap(grid, blackBody())
	heat.Min = zmin
	heat.Max = zmax
	p.Add(heat)
	return p
}

// Heatmap draws detection counts as a night by time-of-night color matrix
func Heatmap(m *activity.Matrix, opts HeatmapOptions, path string) error {
	var p *plot.Plot
	if m.Empty() {
		p = plot.New()
		if err := noDataLabel(p, "no detections"); err != nil {
			return newRenderError(err, path)
		}
	} else {
		scaled := m.Scaled(opts.LogScale)
		zmax := 0.0
		for _, row := range scaled {
			for _, v := range row {
				zmax = max(zmax, v)
			}
		}
		if zmax == 0 {
			zmax = 1
		}

		p = heatPlot(heatGrid{values: scaled}, 0, zmax)
		p.Y.Tick.Marker = clockTicker(m.Origin, m.BinSize)
		p.X.Tick.Marker = dateTicker(m.Nights[0], 0, len(m.Nights)-1)
		p.X.Label.Text = "Night"
		p.Y.Label.Text = "Time"

		if err := addSunLines(p, m, opts); err != nil {
			return newRenderError(err, path)
		}
	}

	p.Title.Text = opts.title()
	return save(p, opts.Options, path)
}

// addSunLines overlays sunset and sunrise, and civil twilight when asked, as
// lines across the nights that have sun events
func addSunLines(p *plot.Plot, m *activity.Matrix, opts HeatmapOptions) error {
	if len(opts.Sun) == 0 {
		return nil
	}

	type overlay struct {
		name  string
		pick  func(suncalc.NightEvents) time.Time
		color color.Color
		dash  []vg.Length
	}
	overlays := []overlay{
		{"sunset", func(e suncalc.NightEvents) time.Time { return e.Sunset }, color.RGBA{R: 0xFF, G: 0xA5, A: 0xFF}, nil},
		{"sunrise", func(e suncalc.NightEvents) time.Time { return e.Sunrise }, color.RGBA{R: 0xFF, G: 0xA5, A: 0xFF}, nil},
	}
	if opts.CivilTwilight {
		dash := []vg.Length{vg.Points(3), vg.Points(3)}
		overlays = append(overlays,
			overlay{"civil dusk", func(e suncalc.NightEvents) time.Time { return e.CivilDusk }, color.Gray{Y: 0xA0}, dash},
			overlay{"civil dawn", func(e suncalc.NightEvents) time.Time { return e.CivilDawn }, color.Gray{Y: 0xA0}, dash},
		)
	}

	for _, o := range overlays {
		xys := make(plotter.XYs, 0, len(opts.Sun))
		for _, ev := range opts.Sun {
			t := o.pick(ev)
			i := activity.DayIndex(m.Nights[0], ev.Night)
			if t.IsZero() || i < 0 || i >= len(m.Nights) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(i), Y: m.Position(t) - 0.5})
		}
		if len(xys) == 0 {
			continue
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle = draw.LineStyle{Color: o.color, Width: vg.Points(1.5), Dashes: o.dash}
		p.Add(line)
		p.Legend.Add(o.name, line)
	}
	p.Legend.Top = true
	return nil
}

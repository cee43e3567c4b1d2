// Package chart renders aggregated RoostLogger activity and temperature data
// to PNG images with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/tphakala/roostlogger/internal/activity"
	"github.com/tphakala/roostlogger/internal/errors"
)

// Kind names the chart type, used in derived output file names
type Kind string

const (
	KindHeatmap Kind = "heatmap"
	KindReport  Kind = "report"
	KindTempMap Kind = "tempmap"
)

// Options are shared by all charts
type Options struct {
	Title  string  // dataset name shown after "RoostLogger: "
	Width  float64 // inches
	Height float64 // inches
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 12
	}
	if h <= 0 {
		h = 6
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

func (o Options) title() string {
	if o.Title == "" {
		return "RoostLogger"
	}
	return "RoostLogger: " + o.Title
}

var (
	bandColor = color.Gray{Y: 0xD0}
	minColor  = color.RGBA{B: 0xFF, A: 0xFF}
	maxColor  = color.RGBA{R: 0xFF, A: 0xFF}
	meanColor = color.RGBA{G: 0x80, A: 0xFF}
	barColor  = color.RGBA{R: 0x1F, G: 0x77, B: 0xB4, A: 0xFF}
)

// OutputPath derives where a chart for input is written:
// <input-without-ext>.<kind>.png for a file, <folder>/<folder-name>.<kind>.png
// for a folder of recordings.
func OutputPath(input string, isDir bool, kind Kind) (string, error) {
	clean := filepath.Clean(input)
	if input == "" || clean == "." || clean == string(filepath.Separator) {
		return "", errors.New(fmt.Errorf("cannot derive output path from input %q", input)).
			Component("chart").
			Category(errors.CategoryValidation).
			Context("input", input).
			Build()
	}

	if isDir {
		return filepath.Join(clean, fmt.Sprintf("%s.%s.png", filepath.Base(clean), kind)), nil
	}
	base := strings.TrimSuffix(clean, filepath.Ext(clean))
	return fmt.Sprintf("%s.%s.png", base, kind), nil
}

// DatasetName is the human name of an input: the folder it sits in for a
// log file, or the folder itself, with underscores as spaces
func DatasetName(input string, isDir bool) string {
	clean := filepath.Clean(input)
	if !isDir {
		if abs, err := filepath.Abs(clean); err == nil {
			clean = abs
		}
		clean = filepath.Dir(clean)
	}
	return strings.ReplaceAll(filepath.Base(clean), "_", " ")
}

// newRenderError wraps failures to draw or write an image
func newRenderError(err error, path string) *errors.EnhancedError {
	return errors.New(err).
		Component("chart").
		Category(errors.CategoryRender).
		Context("output_path", path).
		Build()
}

// save writes a single plot as PNG
func save(p *plot.Plot, opts Options, path string) error {
	w, h := opts.size()
	if err := p.Save(w, h, path); err != nil {
		return newRenderError(fmt.Errorf("saving chart to %s: %w", path, err), path)
	}
	return nil
}

// saveStacked draws plots top to bottom with aligned axes into one PNG
func saveStacked(plots []*plot.Plot, opts Options, path string) (err error) {
	w, h := opts.size()
	img := vgimg.New(w, h)
	dc := draw.New(img)

	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
		PadY:      vg.Millimeter * 4,
	}
	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return newRenderError(fmt.Errorf("creating %s: %w", path, err), path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = newRenderError(fmt.Errorf("closing %s: %w", path, cerr), path)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return newRenderError(fmt.Errorf("encoding %s: %w", path, err), path)
	}
	return nil
}

// tickerFunc adapts a function to plot.Ticker
type tickerFunc func(lo, hi float64) []plot.Tick

func (f tickerFunc) Ticks(lo, hi float64) []plot.Tick {
	return f(lo, hi)
}

// dateTicker labels day indices lo..hi counted from first, thinning labels
// to about a dozen; every day keeps a minor tick
func dateTicker(first time.Time, lo, hi int) plot.Ticker {
	return tickerFunc(func(_, _ float64) []plot.Tick {
		days := hi - lo + 1
		step := max(1, (days+11)/12)
		ticks := make([]plot.Tick, 0, days)
		y, m, d := first.Date()
		for i := lo; i <= hi; i++ {
			tick := plot.Tick{Value: float64(i)}
			if (i-lo)%step == 0 {
				tick.Label = time.Date(y, m, d+i, 0, 0, 0, 0, first.Location()).Format("Jan 02")
			}
			ticks = append(ticks, tick)
		}
		return ticks
	})
}

// celsiusTicker labels temperatures in both scales, e.g. "10°C (50°F)"
func celsiusTicker() plot.Ticker {
	return tickerFunc(func(lo, hi float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(lo, hi)
		for i := range ticks {
			if ticks[i].Label == "" {
				continue
			}
			f := activity.CelsiusToFahrenheit(ticks[i].Value)
			ticks[i].Label = fmt.Sprintf("%s°C (%.0f°F)", ticks[i].Label, f)
		}
		return ticks
	})
}

// temperaturePlot draws the daily min-max band with min, max and mean lines.
// Days are positioned relative to first. The X range is left for the caller.
func temperaturePlot(daily []activity.DailyTemperature, first time.Time) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = "Temperature"
	p.Y.Tick.Marker = celsiusTicker()
	p.Add(plotter.NewGrid())

	if len(daily) == 0 {
		return p, nil
	}

	mins := make(plotter.XYs, len(daily))
	maxs := make(plotter.XYs, len(daily))
	means := make(plotter.XYs, len(daily))
	for i, d := range daily {
		x := float64(activity.DayIndex(first, d.Date))
		mins[i] = plotter.XY{X: x, Y: d.Min}
		maxs[i] = plotter.XY{X: x, Y: d.Max}
		means[i] = plotter.XY{X: x, Y: d.Mean}
	}

	band := make(plotter.XYs, 0, 2*len(daily))
	band = append(band, mins...)
	for i := len(maxs) - 1; i >= 0; i-- {
		band = append(band, maxs[i])
	}
	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return nil, err
	}
	poly.Color = bandColor
	poly.LineStyle.Width = 0
	p.Add(poly)

	for _, series := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
		width vg.Length
	}{
		{"mean", means, meanColor, vg.Points(1)},
		{"min", mins, minColor, vg.Points(1.5)},
		{"max", maxs, maxColor, vg.Points(1.5)},
	} {
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = series.color
		line.LineStyle.Width = series.width
		p.Add(line)
		p.Legend.Add(series.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// dayRange returns the X range covering days nights plus every daily
// temperature, in day indices relative to first
func dayRange(days int, daily []activity.DailyTemperature, first time.Time) (lo, hi int) {
	lo, hi = 0, max(days-1, 0)
	for _, d := range daily {
		i := activity.DayIndex(first, d.Date)
		lo = min(lo, i)
		hi = max(hi, i)
	}
	return lo, hi
}

// noDataLabel marks an empty chart
func noDataLabel(p *plot.Plot, text string) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	p.Add(labels)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return nil
}

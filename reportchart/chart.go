// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportchart draws comparison charts of benchmark report
// timings with gonum.org/v1/plot.
//
// Three kinds of chart are supported: a line chart of the mean timing
// per size and algorithm, a band chart that adds the min-max range of
// each algorithm, and a facet grid with one subplot of per-run timings
// for each size.
package reportchart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/zeebo/errs"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mmbench/benchplot/reportstat"
	"github.com/mmbench/benchplot/reportunit"
)

// Error is the error class for charts that cannot be drawn or saved.
var Error = errs.Class("reportchart")

// Options configures chart drawing.
type Options struct {
	// Title overrides the default chart title.
	Title string

	// XLabel names the size axis. The default is "Data Size".
	XLabel string

	// Log draws line and band charts with logarithmic axes. If a
	// value to plot is not positive, linear axes are used instead
	// and a warning is reported.
	Log bool

	// Values labels each plotted point with its value.
	Values bool

	// Width and Height are the size of the saved image. The default
	// is 12 by 8 inches.
	Width, Height vg.Length

	// DPI is the resolution of PNG output. The default is 96.
	DPI int

	// Warn is called for data that cannot be plotted, such as an
	// algorithm without samples. If nil, warnings are discarded.
	Warn func(format string, args ...interface{})
}

func (o *Options) warn(format string, args ...interface{}) {
	if o.Warn != nil {
		o.Warn(format, args...)
	}
}

func (o *Options) size() (w, h vg.Length) {
	w, h = o.Width, o.Height
	if w <= 0 {
		w = 12 * vg.Inch
	}
	if h <= 0 {
		h = 8 * vg.Inch
	}
	return w, h
}

func (o *Options) xLabel() string {
	if o.XLabel != "" {
		return o.XLabel
	}
	return "Data Size"
}

const lineWidth = 2

// colors returns n distinguishable colors, taken from the Set1 Brewer
// palette while it has enough and from plotutil's defaults after that.
func colors(n int) []color.Color {
	k := n
	if k < 3 {
		k = 3
	}
	if k <= 9 {
		if p, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", k); err == nil {
			return p.Colors()[:n]
		}
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = plotutil.Color(i)
	}
	return out
}

// translucent returns c with the given alpha.
func translucent(c color.Color, alpha uint8) color.Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	nc.A = alpha
	return nc
}

// sizeTicks returns a tick at every size, labeled in short form.
func sizeTicks(sizes []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(sizes))
	for i, s := range sizes {
		ticks[i] = plot.Tick{Value: float64(s), Label: reportunit.SizeLabel(s)}
	}
	return ticks
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)
	p.Legend.Top = true
	return p
}

func timeLabel(unit string) string {
	if unit == "" {
		return "Execution Time"
	}
	return fmt.Sprintf("Execution Time (%s)", reportunit.Display(unit))
}

// useLog reports whether log axes can be used for the given values,
// warning if they were requested but cannot.
func (o *Options) useLog(values []float64) bool {
	if !o.Log {
		return false
	}
	for _, v := range values {
		if !(v > 0) {
			o.warn("log scale needs positive values, found %v; using linear axes\n", v)
			return false
		}
	}
	return true
}

// setLog switches p to log-log axes.
func setLog(p *plot.Plot) {
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.TickerFunc(logTicks)
	// A log axis cannot span a single value.
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		if a.Min == a.Max {
			a.Min /= 2
			a.Max *= 2
		}
	}
}

// logTicks returns ticks for a log axis from min to max: a tick at
// every integer multiple of each power of ten, labeled at 1, 2 and 5
// times the power. If that labels fewer than two ticks, every tick is
// labeled, and failing that min and max are added as labeled ticks.
func logTicks(min, max float64) []plot.Tick {
	if !(min > 0) || !(max >= min) {
		return nil
	}
	const eps = 1e-9
	var (
		ticks   []plot.Tick
		majors  []bool
		labeled int
	)
	for e := int(math.Floor(math.Log10(min))); e <= int(math.Ceil(math.Log10(max))); e++ {
		for m := 1; m <= 9; m++ {
			v := float64(m) * math.Pow10(e)
			if v < min*(1-eps) || v > max*(1+eps) {
				continue
			}
			major := m == 1 || m == 2 || m == 5
			if major {
				labeled++
			}
			ticks = append(ticks, plot.Tick{Value: v})
			majors = append(majors, major)
		}
	}
	switch {
	case labeled >= 2:
		for i := range ticks {
			if majors[i] {
				ticks[i].Label = tickLabel(ticks[i].Value)
			}
		}
	case len(ticks) >= 2:
		for i := range ticks {
			ticks[i].Label = tickLabel(ticks[i].Value)
		}
	default:
		ticks = append(ticks[:0], plot.Tick{Value: min, Label: tickLabel(min)})
		if max > min {
			ticks = append(ticks, plot.Tick{Value: max, Label: tickLabel(max)})
		}
	}
	return ticks
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// valueLabels returns labels showing the Y value of each point.
func valueLabels(xys plotter.XYs) (*plotter.Labels, error) {
	labels := make([]string, len(xys))
	for i, xy := range xys {
		labels[i] = fmt.Sprintf("%.1f", xy.Y)
	}
	return plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
}

// addSeries adds a line with markers of shape i to p.
// If name is empty, the series has no legend entry.
func addSeries(p *plot.Plot, name string, i int, clr color.Color, xys plotter.XYs, values bool) error {
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return Error.Wrap(err)
	}
	line.Color = clr
	line.Width = vg.Points(lineWidth)
	points.Color = clr
	points.Shape = plotutil.Shape(i)
	points.Radius = vg.Points(3)
	p.Add(line, points)
	if name != "" {
		p.Legend.Add(name, line, points)
	}
	if values {
		l, err := valueLabels(xys)
		if err != nil {
			return Error.Wrap(err)
		}
		p.Add(l)
	}
	return nil
}

// Line draws the mean timing of every algorithm against input size.
func Line(st *reportstat.Stats, opts Options) (*plot.Plot, error) {
	title := opts.Title
	if title == "" {
		title = "Performance Comparison: " + joinLabels(st.Labels())
	}
	p := newPlot(title, opts.xLabel(), timeLabel(st.Unit))
	p.X.Tick.Marker = sizeTicks(st.Sizes())

	labels := st.Labels()
	palette := colors(len(labels))
	var all []float64
	drawn := 0
	for i, label := range labels {
		pts := st.Series(label)
		if len(pts) == 0 {
			opts.warn("no data for algorithm=%s; omitted from chart\n", label)
			continue
		}
		xys := make(plotter.XYs, len(pts))
		for j, pt := range pts {
			xys[j].X, xys[j].Y = float64(pt.Size), pt.Mean
			all = append(all, pt.Mean)
		}
		if err := addSeries(p, label, i, palette[i], xys, opts.Values); err != nil {
			return nil, err
		}
		drawn++
	}
	if drawn == 0 {
		return nil, Error.New("no data to plot")
	}
	if opts.useLog(all) {
		setLog(p)
	}
	return p, nil
}

// Band draws the mean timing of every algorithm against input size,
// with a translucent band from the minimum to the maximum sample.
func Band(st *reportstat.Stats, opts Options) (*plot.Plot, error) {
	title := opts.Title
	if title == "" {
		title = "Algorithm Performance Comparison"
	}
	p := newPlot(title, opts.xLabel(), timeLabel(st.Unit))
	p.X.Tick.Marker = sizeTicks(st.Sizes())

	labels := st.Labels()
	palette := colors(len(labels))
	var all []float64
	drawn := 0
	for i, label := range labels {
		pts := st.Series(label)
		if len(pts) == 0 {
			opts.warn("no data for algorithm=%s; omitted from chart\n", label)
			continue
		}
		mean := make(plotter.XYs, len(pts))
		band := make(plotter.XYs, 0, 2*len(pts))
		for j, pt := range pts {
			mean[j].X, mean[j].Y = float64(pt.Size), pt.Mean
			band = append(band, plotter.XY{X: float64(pt.Size), Y: pt.Min})
			all = append(all, pt.Min, pt.Mean, pt.Max)
		}
		for j := len(pts) - 1; j >= 0; j-- {
			band = append(band, plotter.XY{X: float64(pts[j].Size), Y: pts[j].Max})
		}

		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return nil, Error.Wrap(err)
		}
		poly.Color = translucent(palette[i], 0x33)
		poly.LineStyle.Width = 0
		p.Add(poly)

		if err := addSeries(p, label+" (Avg)", i, palette[i], mean, opts.Values); err != nil {
			return nil, err
		}
		drawn++
	}
	if drawn == 0 {
		return nil, Error.New("no data to plot")
	}
	if opts.useLog(all) {
		setLog(p)
	}
	return p, nil
}

func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return "no algorithms"
	case 1:
		return labels[0]
	}
	s := labels[0]
	for _, l := range labels[1:] {
		s += " vs " + l
	}
	return s
}

// gridShape returns the rows and columns of a facet grid with n
// cells: at most two rows, filled row by row.
func gridShape(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	rows = 2
	if n < rows {
		rows = n
	}
	cols = int(math.Ceil(float64(n) / float64(rows)))
	return rows, cols
}

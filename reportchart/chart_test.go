// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportchart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/assert"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/mmbench/benchplot/reportfmt"
	"github.com/mmbench/benchplot/reportstat"
)

func testTable(sizes ...int) *reportfmt.Table {
	t := reportfmt.NewTable("μs", "Naive", "2-Way", "4-Way")
	for _, size := range sizes {
		base := float64(size) / 1000
		for run := 0; run < 3; run++ {
			t.Add(reportfmt.Sample{Size: size, Label: "Naive", Value: base + float64(run)})
			t.Add(reportfmt.Sample{Size: size, Label: "2-Way", Value: base/2 + float64(run)})
			t.Add(reportfmt.Sample{Size: size, Label: "4-Way", Value: base/4 + float64(run)})
		}
	}
	return t
}

type warnings []string

func (w *warnings) warn(format string, args ...interface{}) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

func smallOpts(w *warnings) Options {
	return Options{Width: 8 * vg.Inch, Height: 6 * vg.Inch, DPI: 50, Warn: w.warn}
}

func TestGridShape(t *testing.T) {
	for _, test := range []struct{ n, rows, cols int }{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
	} {
		rows, cols := gridShape(test.n)
		if rows != test.rows || cols != test.cols {
			t.Errorf("gridShape(%d) = %d, %d; want %d, %d", test.n, rows, cols, test.rows, test.cols)
		}
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("line, facet,line")
	assert.NoError(t, err)
	assert.DeepEqual(t, kinds, []Kind{KindLine, KindFacet})

	kinds, err = ParseKinds("all")
	assert.NoError(t, err)
	assert.DeepEqual(t, kinds, Kinds)

	kinds, err = ParseKinds("")
	assert.NoError(t, err)
	assert.Equal(t, len(kinds), 0)

	_, err = ParseKinds("line,pie")
	assert.Error(t, err)
	assert.That(t, Error.Has(err))
}

func TestLine(t *testing.T) {
	var w warnings
	st := reportstat.Aggregate(testTable(1000000, 5000000, 10000000), nil)
	opts := smallOpts(&w)
	opts.Log = true
	opts.Values = true
	p, err := Line(st, opts)
	assert.NoError(t, err)
	assert.Equal(t, p.Title.Text, "Performance Comparison: Naive vs 2-Way vs 4-Way")
	assert.Equal(t, p.Y.Label.Text, "Execution Time (μs)")
	_, isLog := p.X.Scale.(plot.LogScale)
	assert.That(t, isLog)

	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	var labels []string
	for _, tick := range ticks {
		labels = append(labels, tick.Label)
	}
	assert.DeepEqual(t, labels, []string{"1e6", "5e6", "1e7"})
	assert.That(t, len(labeledTicks(p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max))) >= 2)
	assert.Equal(t, len(w), 0)
}

func labeledTicks(ticks []plot.Tick) []string {
	var labels []string
	for _, tick := range ticks {
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	return labels
}

func TestLogTicks(t *testing.T) {
	for _, test := range []struct {
		min, max float64
		n        int
		labels   []string
	}{
		{240, 4210, 11, []string{"500", "1000", "2000"}},
		{300, 800, 6, []string{"300", "400", "500", "600", "700", "800"}},
		{3.1, 3.9, 2, []string{"3.1", "3.9"}},
		{0.5, 20, 16, []string{"0.5", "1", "2", "5", "10", "20"}},
		{0, 10, 0, nil},
	} {
		ticks := logTicks(test.min, test.max)
		assert.Equal(t, len(ticks), test.n)
		assert.DeepEqual(t, labeledTicks(ticks), test.labels)
	}
}

func TestLineLogFallback(t *testing.T) {
	tab := reportfmt.NewTable("μs", "Naive")
	tab.Add(reportfmt.Sample{Size: 10, Label: "Naive", Value: 0})
	tab.Add(reportfmt.Sample{Size: 20, Label: "Naive", Value: 5})

	var w warnings
	opts := smallOpts(&w)
	opts.Log = true
	p, err := Line(reportstat.Aggregate(tab, nil), opts)
	assert.NoError(t, err)
	_, isLog := p.X.Scale.(plot.LogScale)
	assert.That(t, !isLog)
	assert.Equal(t, len(w), 1)
	assert.That(t, strings.Contains(w[0], "using linear axes"))
}

func TestLineMissingAlgorithm(t *testing.T) {
	tab := reportfmt.NewTable("μs", "Naive", "2-Way")
	tab.Add(reportfmt.Sample{Size: 10, Label: "Naive", Value: 1})

	var w warnings
	_, err := Line(reportstat.Aggregate(tab, nil), smallOpts(&w))
	assert.NoError(t, err)
	assert.DeepEqual(t, []string(w), []string{"no data for algorithm=2-Way; omitted from chart\n"})
}

func TestNoData(t *testing.T) {
	st := reportstat.Aggregate(reportfmt.NewTable("μs", "Naive"), nil)
	_, err := Line(st, Options{})
	assert.That(t, Error.Has(err))
	_, err = Band(st, Options{})
	assert.That(t, Error.Has(err))
	_, err = Facet(reportfmt.NewTable("μs"), Options{})
	assert.That(t, Error.Has(err))
}

func TestFacet(t *testing.T) {
	tab := testTable(1000, 2000, 3000)
	tab.Add(reportfmt.Sample{Size: 4000, Label: "Naive", Value: 9})

	var w warnings
	grid, err := Facet(tab, smallOpts(&w))
	assert.NoError(t, err)
	assert.Equal(t, len(grid), 2)
	assert.Equal(t, len(grid[0]), 2)
	assert.Equal(t, grid[0][0].Title.Text, "Size: 1000")
	assert.Equal(t, grid[0][1].Title.Text, "Size: 2000")
	assert.Equal(t, grid[1][0].Title.Text, "Size: 3000")
	assert.Equal(t, grid[1][1].Title.Text, "Size: 4000")
	assert.Equal(t, grid[1][1].X.Label.Text, "Run Number")
	assert.DeepEqual(t, []string(w), []string{
		"no data for size=4000, algorithm=2-Way\n",
		"no data for size=4000, algorithm=4-Way\n",
	})
}

func TestFacetOdd(t *testing.T) {
	grid, err := Facet(testTable(1, 2, 3), Options{})
	assert.NoError(t, err)
	assert.Equal(t, len(grid), 2)
	assert.Equal(t, len(grid[1]), 2)
	assert.Nil(t, grid[1][1])
}

func TestRender(t *testing.T) {
	tab := testTable(1000, 2000, 3000)
	st := reportstat.Aggregate(tab, nil)
	dir := filepath.Join(t.TempDir(), "charts")

	for _, format := range Formats {
		var w warnings
		paths, err := Render(dir, "report", Kinds, tab, st, format, smallOpts(&w))
		assert.NoError(t, err)
		assert.DeepEqual(t, paths, []string{
			filepath.Join(dir, "report-line."+format),
			filepath.Join(dir, "report-band."+format),
			filepath.Join(dir, "report-facet."+format),
		})
		for _, path := range paths {
			data, err := os.ReadFile(path)
			assert.NoError(t, err)
			assert.That(t, len(data) > 0)
			if format == "png" {
				assert.That(t, bytes.HasPrefix(data, []byte("\x89PNG")))
			}
			if format == "pdf" {
				assert.That(t, bytes.HasPrefix(data, []byte("%PDF")))
			}
		}
		assert.Equal(t, len(w), 0)
	}
}

func TestRenderBadFormat(t *testing.T) {
	tab := testTable(1000)
	_, err := Render(t.TempDir(), "report", Kinds, tab, reportstat.Aggregate(tab, nil), "bmp", Options{})
	assert.Error(t, err)
	assert.That(t, Error.Has(err))
}

func TestSaveSingleSize(t *testing.T) {
	tab := testTable(1000)
	st := reportstat.Aggregate(tab, nil)
	p, err := Band(st, Options{Log: true})
	assert.NoError(t, err)
	path := filepath.Join(t.TempDir(), "band.svg")
	assert.NoError(t, Save(p, path, Options{Width: 6 * vg.Inch, Height: 4 * vg.Inch}))
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.That(t, bytes.Contains(data, []byte("<svg")))
}

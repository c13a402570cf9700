// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportchart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/mmbench/benchplot/reportfmt"
)

// Facet draws one subplot per input size, plotting each algorithm's
// timings against their run number. Subplots are laid out row by row
// in a grid of at most two rows; cells past the last size are nil.
//
// Algorithms with no samples at a size are reported through
// opts.Warn and left out of that subplot.
func Facet(t *reportfmt.Table, opts Options) ([][]*plot.Plot, error) {
	sizes := t.Sizes()
	if len(sizes) == 0 {
		return nil, Error.New("no data to plot")
	}
	rows, cols := gridShape(len(sizes))
	grid := make([][]*plot.Plot, rows)
	for r := range grid {
		grid[r] = make([]*plot.Plot, cols)
	}

	labels := t.Labels()
	palette := colors(len(labels))
	for k, size := range sizes {
		p := newPlot(fmt.Sprintf("Size: %d", size), "Run Number", timeLabel(t.Unit))
		for i, label := range labels {
			values := t.Values(size, label)
			if len(values) == 0 {
				opts.warn("no data for size=%d, algorithm=%s\n", size, label)
				continue
			}
			xys := make(plotter.XYs, len(values))
			for j, v := range values {
				xys[j].X, xys[j].Y = float64(j+1), v
			}
			name := label
			if k > 0 {
				// Only the first subplot carries a legend.
				name = ""
			}
			if err := addSeries(p, name, i, palette[i], xys, opts.Values); err != nil {
				return nil, err
			}
		}
		grid[k/cols][k%cols] = p
	}
	return grid, nil
}

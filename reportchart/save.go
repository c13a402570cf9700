// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportchart

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mmbench/benchplot/reportfmt"
	"github.com/mmbench/benchplot/reportstat"
)

// A Kind names a kind of chart.
type Kind string

const (
	KindLine  Kind = "line"
	KindBand  Kind = "band"
	KindFacet Kind = "facet"
)

// Kinds lists every chart kind.
var Kinds = []Kind{KindLine, KindBand, KindFacet}

// ParseKinds parses a comma-separated list of chart kinds. "all"
// selects every kind.
func ParseKinds(s string) ([]Kind, error) {
	var out []Kind
	seen := make(map[Kind]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f == "all" {
			return append([]Kind(nil), Kinds...), nil
		}
		k := Kind(f)
		switch k {
		case KindLine, KindBand, KindFacet:
		default:
			return nil, Error.New("unknown chart kind %q", f)
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// Formats lists the supported image formats.
var Formats = []string{"png", "svg", "pdf"}

func checkFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return Error.New("unsupported image format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

func newCanvas(format string, opts Options) (vg.CanvasWriterTo, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	w, h := opts.size()
	if format == "png" {
		dpi := opts.DPI
		if dpi <= 0 {
			dpi = 96
		}
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}, nil
	}
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return c, nil
}

func formatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func writeCanvas(c vg.CanvasWriterTo, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = Error.Wrap(e)
		}
	}()
	if _, err := c.WriteTo(f); err != nil {
		return Error.Wrap(err)
	}
	return nil
}

// Save writes p to path. The image format is chosen by the file
// extension: .png, .svg or .pdf.
func Save(p *plot.Plot, path string, opts Options) error {
	c, err := newCanvas(formatOf(path), opts)
	if err != nil {
		return err
	}
	p.Draw(draw.New(c))
	return writeCanvas(c, path)
}

// SaveGrid writes a grid of plots, such as one returned by Facet, to
// path as a single image. Nil cells are left blank.
func SaveGrid(grid [][]*plot.Plot, path string, opts Options) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return Error.New("empty plot grid")
	}
	c, err := newCanvas(formatOf(path), opts)
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows:      len(grid),
		Cols:      len(grid[0]),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(grid, tiles, draw.New(c))
	for j, row := range grid {
		for i, p := range row {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}
	return writeCanvas(c, path)
}

// Render draws each requested kind of chart and writes it to dir as
// base-kind.format, such as "report-line.png". It returns the paths
// written.
//
// The stats must have been computed from t.
func Render(dir, base string, kinds []Kind, t *reportfmt.Table, st *reportstat.Stats, format string, opts Options) ([]string, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, Error.Wrap(err)
	}
	var paths []string
	for _, kind := range kinds {
		path := filepath.Join(dir, base+"-"+string(kind)+"."+format)
		var err error
		switch kind {
		case KindLine, KindBand:
			chart := Line
			if kind == KindBand {
				chart = Band
			}
			var p *plot.Plot
			if p, err = chart(st, opts); err == nil {
				err = Save(p, path, opts)
			}
		case KindFacet:
			var grid [][]*plot.Plot
			if grid, err = Facet(t, opts); err == nil {
				err = SaveGrid(grid, path, opts)
			}
		default:
			err = Error.New("unknown chart kind %q", kind)
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

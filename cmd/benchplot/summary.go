// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/mmbench/benchplot/internal/texttab"
	"github.com/mmbench/benchplot/reportfmt"
	"github.com/mmbench/benchplot/reportstat"
	"github.com/mmbench/benchplot/reportunit"
)

// A summary is the printed result of a run: one row per size and one
// cell per algorithm.
type summary struct {
	Unit     string
	Baseline string
	Labels   []string
	Rows     []*summaryRow
}

type summaryRow struct {
	Size  int
	Cells []*summaryCell
}

type summaryCell struct {
	Label   string
	Missing bool
	reportstat.Summary

	// Compared is set for algorithms other than the baseline when
	// both have samples.
	Compared   bool
	Comparison reportstat.Comparison
}

// MeanString formats the mean with its confidence interval.
func (c *summaryCell) MeanString(unit string) string {
	if c.Missing {
		return "-"
	}
	return reportunit.FormatTime(c.Summary.Mean, unit) + " ± " + c.PctRangeString()
}

// Delta formats the speedup over the baseline, with the test result.
func (c *summaryCell) Delta() string {
	if !c.Compared {
		return ""
	}
	return c.Comparison.FormatSpeedup() + " (" + c.Comparison.String() + ")"
}

func newSummary(t *reportfmt.Table, st *reportstat.Stats, baseline string, warn func(format string, args ...interface{})) *summary {
	s := &summary{Unit: st.Unit, Baseline: baseline, Labels: st.Labels()}
	for _, size := range st.Sizes() {
		row := &summaryRow{Size: size}
		for _, label := range s.Labels {
			cell := &summaryCell{Label: label}
			sum, ok := st.Get(size, label)
			cell.Summary, cell.Missing = sum, !ok
			if ok && label != baseline {
				cell.Comparison, cell.Compared = reportstat.Compare(t, size, baseline, label)
				for _, err := range cell.Comparison.Warnings {
					warn("%v\n", err)
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func (s *summary) formatText(w io.Writer) error {
	var tab texttab.Table
	tab.Row().Cell("size")
	for _, label := range s.Labels {
		tab.Cell(label)
		if label != s.Baseline {
			tab.Cell("vs " + s.Baseline)
		}
	}
	for _, row := range s.Rows {
		tab.Row().Cell(strconv.Itoa(row.Size))
		for _, c := range row.Cells {
			tab.Cell(c.MeanString(s.Unit), texttab.Right)
			if c.Label != s.Baseline {
				tab.Cell(c.Delta())
			}
		}
	}
	return tab.Format(w)
}

var csvHeader = []string{"size", "algorithm", "n", "mean", "min", "max", "median", "stddev", "unit", "speedup", "p"}

func (s *summary) formatCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write(csvHeader)
	f := reportunit.NoOpScaler.Format
	for _, row := range s.Rows {
		for _, c := range row.Cells {
			if c.Missing {
				continue
			}
			rec := []string{
				strconv.Itoa(row.Size), c.Label, strconv.Itoa(c.N),
				f(c.Summary.Mean), f(c.Min), f(c.Max), f(c.Median), f(c.StdDev),
				s.Unit, "", "",
			}
			if c.Compared {
				rec[9], rec[10] = f(c.Comparison.Speedup), f(c.Comparison.P)
			}
			cw.Write(rec)
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonResult struct {
	Unit      string        `json:"unit"`
	Baseline  string        `json:"baseline,omitempty"`
	Counts    jsonCounts    `json:"counts"`
	Summaries []jsonSummary `json:"summaries"`
	Compares  []jsonCompare `json:"comparisons,omitempty"`
}

type jsonCounts struct {
	Lines    int `json:"lines"`
	Skipped  int `json:"skipped"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

type jsonSummary struct {
	Size      int     `json:"size"`
	Algorithm string  `json:"algorithm"`
	N         int     `json:"n"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"stddev"`
}

type jsonCompare struct {
	Size      int     `json:"size"`
	Algorithm string  `json:"algorithm"`
	Speedup   float64 `json:"speedup"`
	P         float64 `json:"p"`
}

func (s *summary) formatJSON(w io.Writer, counts reportfmt.Counts) error {
	res := jsonResult{
		Unit:      s.Unit,
		Baseline:  s.Baseline,
		Counts:    jsonCounts(counts),
		Summaries: []jsonSummary{},
	}
	for _, row := range s.Rows {
		for _, c := range row.Cells {
			if c.Missing {
				continue
			}
			res.Summaries = append(res.Summaries, jsonSummary{
				row.Size, c.Label, c.N, c.Summary.Mean, c.Min, c.Max, c.Median, c.StdDev,
			})
			if c.Compared {
				res.Compares = append(res.Compares, jsonCompare{row.Size, c.Label, c.Comparison.Speedup, c.Comparison.P})
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(res)
}

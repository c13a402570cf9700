// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportstat computes summary statistics over the timing
// samples of a parsed benchmark report.
//
// Aggregation never fails. Gaps in the data, such as an algorithm
// that has no samples at some size, are captured as an []error value
// of warnings that should be presented to the user along with the
// results.
package reportstat

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"

	"github.com/mmbench/benchplot/reportfmt"
)

// DefaultConfidence is the confidence level of the interval around
// Summary.Mean.
const DefaultConfidence = 0.95

// A Summary summarizes the samples of one (size, algorithm) key.
type Summary struct {
	N      int
	Mean   float64
	Min    float64
	Max    float64
	Median float64
	StdDev float64

	// Lo and Hi bound the confidence interval around Mean. They are
	// infinite if there is only one sample.
	Lo, Hi float64
}

// Summarize computes the summary of values, which must not be empty.
// values is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		panic("reportstat: Summarize of empty sample")
	}
	xs := append([]float64(nil), values...)
	sort.Float64s(xs)
	sample := stats.Sample{Xs: xs, Sorted: true}

	mean, lo, hi := sample.MeanCI(DefaultConfidence)
	min, max := sample.Bounds()
	return Summary{
		N:      len(xs),
		Mean:   mean,
		Min:    min,
		Max:    max,
		Median: sample.Quantile(0.5),
		StdDev: sample.StdDev(),
		Lo:     lo,
		Hi:     hi,
	}
}

// PctRangeString returns the half-width of the confidence interval
// as a percentage of the mean, such as "3%".
func (s Summary) PctRangeString() string {
	if math.IsInf(s.Lo, 0) || math.IsInf(s.Hi, 0) {
		return "∞"
	}

	var csign = mathx.Sign(s.Mean)
	if csign != mathx.Sign(s.Lo) || csign != mathx.Sign(s.Hi) {
		return "?"
	}
	if s.Mean == 0 {
		return "0%"
	}
	v := math.Max(s.Hi/s.Mean-1, 1-s.Lo/s.Mean)
	return fmt.Sprintf("%.0f%%", 100*v)
}

// A MissingDataError reports a (size, algorithm) key with no samples.
type MissingDataError struct {
	Size  int
	Label string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("no data for size=%d, algorithm=%s", e.Size, e.Label)
}

// Stats holds the summaries of every key of a table.
type Stats struct {
	// Summaries maps size to algorithm label to summary. Keys
	// without samples are absent.
	Summaries map[int]map[string]Summary

	// Unit is the unit of the summarized values.
	Unit string

	// Warnings lists the keys that had no samples, in size then
	// label order.
	Warnings []error

	sizes  []int
	labels []string
}

// Aggregate summarizes every (size, algorithm) key of t, where sizes
// are those present in t and labels are all labels t knows. Each key
// without samples adds a *MissingDataError to Warnings and is reported
// through warn, if warn is non-nil.
//
// Aggregate does not modify t.
func Aggregate(t *reportfmt.Table, warn func(format string, args ...interface{})) *Stats {
	s := &Stats{
		Summaries: make(map[int]map[string]Summary),
		Unit:      t.Unit,
		sizes:     t.Sizes(),
		labels:    t.Labels(),
	}
	for _, size := range s.sizes {
		bySize := make(map[string]Summary)
		s.Summaries[size] = bySize
		for _, label := range s.labels {
			values := t.Values(size, label)
			if len(values) == 0 {
				err := &MissingDataError{size, label}
				s.Warnings = append(s.Warnings, err)
				if warn != nil {
					warn("%v\n", err)
				}
				continue
			}
			bySize[label] = Summarize(values)
		}
	}
	return s
}

// Sizes returns the sizes of the stats in ascending order.
func (s *Stats) Sizes() []int {
	return append([]int(nil), s.sizes...)
}

// Labels returns the algorithm labels of the stats in display order.
func (s *Stats) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Get returns the summary of a key and whether it has samples.
func (s *Stats) Get(size int, label string) (Summary, bool) {
	sum, ok := s.Summaries[size][label]
	return sum, ok
}

// A Point is one defined key of a series.
type Point struct {
	Size int
	Summary
}

// Series returns the summaries of label in ascending size order,
// omitting sizes where label has no samples.
func (s *Stats) Series(label string) []Point {
	var pts []Point
	for _, size := range s.sizes {
		if sum, ok := s.Summaries[size][label]; ok {
			pts = append(pts, Point{size, sum})
		}
	}
	return pts
}

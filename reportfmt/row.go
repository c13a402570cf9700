// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportfmt parses the plain-text reports written by matrix
// and summation micro-benchmark harnesses.
//
// A report is a sequence of lines. Data lines hold an input size, an
// optional run or group number, and one or more timings, either one
// algorithm per line:
//
//	Size        Group     Algorithm      Min(μs)       Max(μs)       Avg(μs)       Valid
//	1000000     1         Naive          812.00        950.00        845.30        ✓
//	1000000     1         2-Way          420.00        501.00        433.10        ✓
//
// or one column per algorithm:
//
//	Size      Run     Naive Matrix (μs)        Optimized Matrix (μs)
//	256       1       120.5                    64.2
//
// The column layout of each report variant is declared by a Schema.
// A Reader classifies each line as skipped, data or unparseable;
// unparseable lines are reported as *SyntaxError records and never stop
// the parse. Parse collects the data lines of a whole report into a
// Table.
package reportfmt

// A Row is one data line of a report.
//
// Rows are freshly allocated by the Reader, so callers may retain them.
type Row struct {
	// Size is the input size of the line.
	Size int

	// Group is the run or group number, or 0 if the schema has no
	// group field.
	Group int

	// Label is the algorithm label of a long report, after
	// unrecognized labels have been grouped. It is empty for wide
	// reports.
	Label string

	// Values holds one entry per schema field, in schema order.
	Values []Value

	fileName string
	line     int
}

// A Value is one field of a data line.
type Value struct {
	// Text is the field exactly as it appeared in the line.
	Text string
	// Num is the parsed value of numeric fields, and NaN for label and
	// token fields. In block mode the size field holds the block's size.
	Num float64
}

// Pos returns the file name and line number the row was read from.
func (r *Row) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A Sample is one timing measurement.
type Sample struct {
	Size  int
	Label string
	Value float64
}

// Samples returns the timing samples carried by r under schema s:
// one for a long report, and one per timing column for a wide report.
func (r *Row) Samples(s *Schema) []Sample {
	if !s.Wide() {
		return []Sample{{r.Size, r.Label, r.Values[s.timings[0]].Num}}
	}
	out := make([]Sample, 0, len(s.timings))
	for _, i := range s.timings {
		out = append(out, Sample{r.Size, s.Fields[i].Label, r.Values[i].Num})
	}
	return out
}

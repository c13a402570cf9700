// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportstat

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"

	"github.com/mmbench/benchplot/reportfmt"
)

// DefaultAlpha is the significance level used by Compare.
const DefaultAlpha = 0.05

// A Comparison compares the timings of an algorithm against a
// baseline algorithm at one size.
type Comparison struct {
	Size            int
	Baseline, Label string

	// Speedup is the baseline mean divided by the algorithm's mean.
	// It is 0 if the algorithm's mean is 0.
	Speedup float64

	// P is the p-value of Welch's t-test of the null hypothesis that
	// both samples have the same mean. P is 1 if the test could not
	// be performed.
	P float64

	// N1 and N2 are the sizes of the baseline and algorithm samples.
	N1, N2 int

	// Alpha is the significance threshold for P.
	Alpha float64

	// Warnings is a list of warnings about this comparison.
	Warnings []error
}

// Compare compares label against baseline at size. It reports false
// if either key has no samples.
func Compare(t *reportfmt.Table, size int, baseline, label string) (Comparison, bool) {
	xs1, xs2 := t.Values(size, baseline), t.Values(size, label)
	if len(xs1) == 0 || len(xs2) == 0 {
		return Comparison{}, false
	}
	s1, s2 := stats.Sample{Xs: xs1}, stats.Sample{Xs: xs2}
	c := Comparison{
		Size:     size,
		Baseline: baseline,
		Label:    label,
		N1:       len(xs1),
		N2:       len(xs2),
		Alpha:    DefaultAlpha,
	}
	if m := s2.Mean(); m != 0 {
		c.Speedup = s1.Mean() / m
	}
	res, err := stats.TwoSampleWelchTTest(s1, s2, stats.LocationDiffers)
	if err != nil {
		// Report as if there's no significant difference, along
		// with the reason.
		c.P = 1
		c.Warnings = append(c.Warnings, fmt.Errorf("%s vs %s at size %d: %w", label, baseline, size, err))
	} else {
		c.P = res.P
	}
	return c, true
}

// CompareAll compares every other label of t against baseline at
// every size where both have samples.
func CompareAll(t *reportfmt.Table, baseline string) []Comparison {
	var out []Comparison
	for _, size := range t.Sizes() {
		for _, label := range t.Labels() {
			if label == baseline {
				continue
			}
			if c, ok := Compare(t, size, baseline, label); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// Significant reports whether the difference is significant at
// c.Alpha.
func (c Comparison) Significant() bool {
	return c.P < c.Alpha
}

// String summarizes the test. The general form of this string is
// "p=0.PPP n=N1+N2" but can be shortened.
func (c Comparison) String() string {
	var s string
	if c.P != 0 {
		s = fmt.Sprintf("p=%0.3f ", c.P)
	}
	if c.N1 == c.N2 {
		return s + fmt.Sprintf("n=%d", c.N1)
	}
	return s + fmt.Sprintf("n=%d+%d", c.N1, c.N2)
}

// FormatSpeedup formats the speedup over the baseline, such as
// "1.95x". It returns "~" if the difference is not significant and
// "?" if the speedup is undefined.
func (c Comparison) FormatSpeedup() string {
	if !c.Significant() {
		return "~"
	}
	if c.Speedup == 0 {
		return "?"
	}
	return fmt.Sprintf("%.2fx", c.Speedup)
}

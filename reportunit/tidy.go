// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportunit formats timing values and input sizes for
// display.
//
// Report timings are usually recorded in a pre-scaled unit such as
// "μs". Tidy converts such values to base units ("sec") and
// Scale then picks an SI prefix that shows at least three significant
// digits.
package reportunit

import "strings"

// timeUnits maps pre-scaled time units to their factor in seconds.
// Both the micro sign (U+00B5) and Greek mu (U+03BC) spellings of
// "μs" appear in reports.
var timeUnits = map[string]float64{
	"s":   1,
	"sec": 1,
	"ms":  1e-3,
	"µs":  1e-6,
	"μs":  1e-6,
	"us":  1e-6,
	"ns":  1e-9,
}

// Tidy normalizes a value with a pre-scaled time unit into seconds.
// For example, Tidy(1500, "μs") returns 0.0015, "sec". Units it does
// not know are returned unchanged.
func Tidy(value float64, unit string) (tidiedValue float64, tidiedUnit string) {
	tidied, factor := tidyUnit(unit)
	return value * factor, tidied
}

func tidyUnit(unit string) (tidied string, factor float64) {
	u := strings.TrimSpace(unit)
	if f, ok := timeUnits[u]; ok {
		return "sec", f
	}
	return unit, 1
}

// Display returns a short unit name for axis labels: "sec" becomes
// "s" and the micro sign is normalized to Greek mu.
func Display(unit string) string {
	switch unit {
	case "sec":
		return "s"
	case "µs", "us":
		return "μs"
	}
	return unit
}

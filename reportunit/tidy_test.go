// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportunit

import "testing"

func TestTidy(t *testing.T) {
	test := func(unit, tidied string, factor float64) {
		t.Helper()
		got, gotFactor := tidyUnit(unit)
		if got != tidied || gotFactor != factor {
			t.Errorf("for %s, want %s*%f, got %s*%f", unit, tidied, factor, got, gotFactor)
		}
	}

	test("μs", "sec", 1e-6)
	test("µs", "sec", 1e-6)
	test("us", "sec", 1e-6)
	test("ns", "sec", 1e-9)
	test("ms", "sec", 1e-3)
	test("sec", "sec", 1)
	test("s", "sec", 1)
	test("B", "B", 1)
	test("", "", 1)

	if v, u := Tidy(2000, "μs"); v != 2000*1e-6 || u != "sec" {
		t.Errorf("Tidy(2000, μs) = %v %s", v, u)
	}
}

func TestDisplay(t *testing.T) {
	for in, want := range map[string]string{"sec": "s", "µs": "μs", "us": "μs", "μs": "μs", "ops": "ops"} {
		if got := Display(in); got != want {
			t.Errorf("Display(%q) = %q, want %q", in, got, want)
		}
	}
}

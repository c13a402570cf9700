// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustBuiltin(t *testing.T, name string) *Schema {
	t.Helper()
	s, err := Builtin(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// parseAll reads every record of data and renders each one with
// printRecord.
func parseAll(t *testing.T, data string, s *Schema) ([]string, Counts) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test", s)
	var out []string
	for r.Scan() {
		var buf bytes.Buffer
		printRecord(&buf, r.Result(), s)
		out = append(out, buf.String())
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out, r.Counts()
}

func printRecord(w io.Writer, rec Record, s *Schema) {
	switch rec := rec.(type) {
	case *Row:
		_, line := rec.Pos()
		fmt.Fprintf(w, "%d:", line)
		for _, smp := range rec.Samples(s) {
			fmt.Fprintf(w, " %d/%s=%v", smp.Size, smp.Label, smp.Value)
		}
	case *SyntaxError:
		fmt.Fprintf(w, "SyntaxError: %s", rec)
	default:
		panic(fmt.Sprintf("unknown record type %T", rec))
	}
}

func compareRecords(t *testing.T, got, want []string) {
	t.Helper()
	var diff bytes.Buffer
	for i := 0; i < len(got) || i < len(want); i++ {
		switch {
		case i >= len(got):
			fmt.Fprintf(&diff, "[%d] got: none, want: %s\n", i, want[i])
		case i >= len(want):
			fmt.Fprintf(&diff, "[%d] want: none, got: %s\n", i, got[i])
		case got[i] != want[i]:
			fmt.Fprintf(&diff, "[%d] got:  %s\n[%d] want: %s\n", i, got[i], i, want[i])
		}
	}
	if diff.Len() != 0 {
		t.Error(diff.String())
	}
}

func TestReader(t *testing.T) {
	type testCase struct {
		name   string
		schema string
		input  string
		want   []string
		counts Counts
	}
	for _, test := range []testCase{
		{
			"basic", "sum-long",
			"1000 1 Naive 10.0 20.0 15.0 yes",
			[]string{"1: 1000/Naive=15"},
			Counts{Lines: 1, Accepted: 1},
		},
		{
			"skipLines", "sum-long",
			`Size  Group  Algorithm  Min(μs)  Max(μs)  Avg(μs)  Valid
ize  Group  Algorithm  Min(μs)  Max(μs)  Avg(μs)  Valid
------------------
1000 1 2-Way 10 20 12 yes
Global Stats
1000 2 2-Way 10 20 18 yes`,
			[]string{"4: 1000/2-Way=12", "6: 1000/2-Way=18"},
			Counts{Lines: 6, Skipped: 4, Accepted: 2},
		},
		{
			"blankLines", "sum-long",
			"\n\n   1000 1 Naive 1 2 1.5 ok   \n\n",
			[]string{"3: 1000/Naive=1.5"},
			Counts{Lines: 1, Accepted: 1},
		},
		{
			"noLeadingInteger", "sum-long",
			"abc def ghi",
			[]string{"SyntaxError: test:1: expected 7 fields, found 3"},
			Counts{Lines: 1, Rejected: 1},
		},
		{
			"badSize", "sum-long",
			"abc 1 Naive 1 2 3 ok\n0 1 Naive 1 2 3 ok\n-5 1 Naive 1 2 3 ok",
			[]string{
				`SyntaxError: test:1: parsing size: invalid integer "abc"`,
				`SyntaxError: test:2: parsing size: 0 is not positive`,
				`SyntaxError: test:3: parsing size: -5 is not positive`,
			},
			Counts{Lines: 3, Rejected: 3},
		},
		{
			"badGroup", "sum-long",
			"1000 x Naive 1 2 3 ok",
			[]string{`SyntaxError: test:1: parsing Group: invalid integer "x"`},
			Counts{Lines: 1, Rejected: 1},
		},
		{
			"badNumber", "sum-long",
			"1000 1 Naive 1 2 3.x ok\n1000 1 Naive 1 NaN 3 ok\n1000 1 Naive 1 2 -3 ok",
			[]string{
				`SyntaxError: test:1: parsing Avg(μs): invalid number "3.x"`,
				`SyntaxError: test:2: parsing Max(μs): invalid number "NaN"`,
				`SyntaxError: test:3: parsing Avg(μs): negative timing "-3"`,
			},
			Counts{Lines: 3, Rejected: 3},
		},
		{
			"badLabel", "sum-long",
			"1000 1 Naive_2 1 2 3 ok\n1000 1 8-Way 1 2 3 ok",
			[]string{
				`SyntaxError: test:1: invalid algorithm label "Naive_2"`,
				`SyntaxError: test:2: unknown algorithm label "8-Way"`,
			},
			Counts{Lines: 2, Rejected: 2},
		},
		{
			"continueAfterError", "sum-long",
			"1000 1 Naive 1 2 3 ok\ngarbage\n1000 2 Naive 1 2 4 ok",
			[]string{
				"1: 1000/Naive=3",
				"SyntaxError: test:2: expected 7 fields, found 1",
				"3: 1000/Naive=4",
			},
			Counts{Lines: 3, Accepted: 2, Rejected: 1},
		},
		{
			"longLine", "sum-long",
			"1000 1 Naive 1 2 3 ok\n" + strings.Repeat("x", 70000) + "\n1000 2 Naive 1 2 4 ok\n",
			[]string{
				"1: 1000/Naive=3",
				"SyntaxError: test:2: line longer than 65536 bytes",
				"3: 1000/Naive=4",
			},
			Counts{Lines: 3, Accepted: 2, Rejected: 1},
		},
		{
			"longLastLine", "sum-long",
			"1000 1 Naive 1 2 3 ok\r\n" + strings.Repeat("x", MaxLineLen),
			[]string{
				"1: 1000/Naive=3",
				"SyntaxError: test:2: line longer than 65536 bytes",
			},
			Counts{Lines: 2, Accepted: 1, Rejected: 1},
		},
		{
			"wide", "matvec",
			"Size Run Naive Optimized\n256 1 120.5 64.25\n256 Avg 120.5 64.25\n256 2 1e2 50",
			[]string{
				"2: 256/Naive=120.5 256/Optimized=64.25",
				"4: 256/Naive=100 256/Optimized=50",
			},
			Counts{Lines: 4, Skipped: 2, Accepted: 2},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, counts := parseAll(t, test.input, mustBuiltin(t, test.schema))
			compareRecords(t, got, test.want)
			if counts != test.counts {
				t.Errorf("counts: got %+v, want %+v", counts, test.counts)
			}
		})
	}
}

func TestReaderBlocks(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sum-blocks.txt"))
	if err != nil {
		t.Fatal(err)
	}
	got, counts := parseAll(t, string(data), mustBuiltin(t, "sum-blocks"))
	compareRecords(t, got, []string{
		"3: 1000000/Naive=845.3",
		"4: 1000000/2-Way=433.1",
		// The size column is read once per block.
		"5: 1000000/4-Way=241.75",
		`SyntaxError: test:7: parsing size: invalid integer "size?"`,
		`SyntaxError: test:8: block starting at line 7 has no valid size: parsing size: invalid integer "size?"`,
		"11: 10000000/Naive=8420",
		"12: 10000000/4-Way=2455.5",
	})
	want := Counts{Lines: 11, Skipped: 4, Accepted: 5, Rejected: 2}
	if counts != want {
		t.Errorf("counts: got %+v, want %+v", counts, want)
	}
}

func TestReaderMultiSpace(t *testing.T) {
	s, err := NewSchema("spaced").
		Size("Size").Label("Algorithm").Timing("Avg").Token("Note").
		Delimit(MultiSpace).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	got, _ := parseAll(t, "100  Naive  3.5  warm cache\n100\tNaive\t4\tcold", s)
	compareRecords(t, got, []string{"1: 100/Naive=3.5", "2: 100/Naive=4"})

	r := NewReader(strings.NewReader("100  Naive  3.5  warm cache"), "test", s)
	if !r.Scan() {
		t.Fatal("Scan failed")
	}
	row := r.Result().(*Row)
	if note := row.Values[3].Text; note != "warm cache" {
		t.Errorf("note: got %q, want %q", note, "warm cache")
	}
}

func TestReaderOtherLabel(t *testing.T) {
	s, err := NewSchema("other").
		Size("Size").Label("Algorithm").Timing("Avg").
		Labels("Naive").Other("other").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	got, counts := parseAll(t, "10 Naive 1\n10 8-Way 2\n10 16-Way 3", s)
	compareRecords(t, got, []string{"1: 10/Naive=1", "2: 10/other=2", "3: 10/other=3"})
	if counts.Rejected != 0 {
		t.Errorf("got %d rejected lines, want 0", counts.Rejected)
	}
}

func TestReaderInvalidSchema(t *testing.T) {
	r := NewReader(strings.NewReader("1 2 3"), "test", &Schema{Name: "bad"})
	if r.Scan() {
		t.Fatal("Scan succeeded with invalid schema")
	}
	if err := r.Err(); !SchemaError.Has(err) {
		t.Fatalf("got error %v, want schema error", err)
	}
}

func TestReaderNoScan(t *testing.T) {
	r := NewReader(strings.NewReader(""), "test", mustBuiltin(t, "sum-long"))
	if _, ok := r.Result().(*SyntaxError); !ok {
		t.Errorf("Result before Scan: got %T, want *SyntaxError", r.Result())
	}
	if r.Scan() {
		t.Error("Scan of empty input returned true")
	}
	if err := r.Err(); err != nil {
		t.Error(err)
	}
}

func TestSplitMulti(t *testing.T) {
	check := func(line string, want ...string) {
		t.Helper()
		got := splitMulti(line)
		if strings.Join(got, "|") != strings.Join(want, "|") || len(got) != len(want) {
			t.Errorf("splitMulti(%q): got %q, want %q", line, got, want)
		}
	}
	check("a  b", "a", "b")
	check("a b  c", "a b", "c")
	check("a\tb", "a", "b")
	check("a     b   c d", "a", "b", "c d")
	check("a", "a")
	check("")
}

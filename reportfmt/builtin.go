// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"sort"
)

// Lines starting with these are never data.
var defaultSkip = []string{"Size", "ize", "--", "Global Stats"}

var builtins = map[string]func() *SchemaBuilder{
	// Matrix-vector product report: one line per run with the naive
	// and the cache-friendly timing, followed by an "Avg" line.
	"matvec": func() *SchemaBuilder {
		return NewSchema("matvec").
			Size("Size").Group("Run").
			TimingFor("Naive Matrix", "Naive").
			TimingFor("Optimized Matrix", "Optimized").
			Skip(defaultSkip...).
			Summary("Avg")
	},

	// Summation report in wide form: naive, two-way and four-way
	// unrolled sums side by side.
	"sum": func() *SchemaBuilder {
		return NewSchema("sum").
			Size("Size").Group("Run").
			TimingFor("Naive Sum", "Naive").
			TimingFor("Optimized Sum", "2-Way").
			TimingFor("Unrolled Sum", "4-Way").
			Skip(defaultSkip...).
			Summary("Avg")
	},

	// Summation report in long form, one algorithm per line. The
	// representative timing is the Avg column.
	"sum-long": sumLong,

	// sum-long with fields separated by runs of spaces and samples
	// grouped into "Global Stats" delimited blocks.
	"sum-blocks": func() *SchemaBuilder {
		b := sumLong()
		b.s.Name = "sum-blocks"
		return b.Delimit(MultiSpace).Blocks("Global Stats")
	},
}

func sumLong() *SchemaBuilder {
	return NewSchema("sum-long").
		Size("Size").Group("Group").Label("Algorithm").
		Float("Min(μs)").Float("Max(μs)").Timing("Avg(μs)").Token("Valid").
		Labels("Naive", "2-Way", "4-Way").
		Skip(defaultSkip...)
}

var aliases = map[string]string{
	"1.1": "matvec",
	"1.2": "sum-long",
}

// Builtin returns a fresh copy of the built-in schema called name.
// It also accepts the report version names "1.1" and "1.2".
func Builtin(name string) (*Schema, error) {
	if a, ok := aliases[name]; ok {
		name = a
	}
	mk, ok := builtins[name]
	if !ok {
		return nil, SchemaError.New("unknown report format %q (have %v)", name, BuiltinNames())
	}
	return mk().Build()
}

// BuiltinNames returns the names of the built-in schemas in sorted
// order.
func BuiltinNames() []string {
	var names []string
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"io"
	"os"

	"github.com/zeebo/errs"
)

// Error is the error class for reports that cannot be read at all.
var Error = errs.Class("reportfmt")

// Parse reads a whole report from r and returns its samples.
//
// Unparseable lines are excluded and reported through warn, which may
// be nil to discard them. The returned error is non-nil only if r
// itself fails or schema is invalid.
func Parse(r io.Reader, fileName string, schema *Schema, warn func(format string, args ...interface{})) (*Table, Counts, error) {
	t := NewTable(schema.Unit, schema.DisplayLabels()...)
	counts, err := ParseInto(t, r, fileName, schema, warn, nil)
	if err != nil {
		return nil, counts, err
	}
	return t, counts, nil
}

// ParseInto is like Parse, but adds the samples to t, which may
// already hold samples of other reports. If onRow is non-nil, it is
// called for every data line with the samples taken from it.
func ParseInto(t *Table, r io.Reader, fileName string, schema *Schema, warn func(format string, args ...interface{}), onRow func(row *Row, samples []Sample)) (Counts, error) {
	rd := NewReader(r, fileName, schema)
	for rd.Scan() {
		switch rec := rd.Result().(type) {
		case *Row:
			samples := rec.Samples(schema)
			for _, s := range samples {
				t.Add(s)
			}
			if onRow != nil {
				onRow(rec, samples)
			}
		case *SyntaxError:
			if warn != nil {
				warn("%v\n", rec)
			}
		}
	}
	return rd.Counts(), Error.Wrap(rd.Err())
}

// ParseFile is like Parse, but reads the named file. If path is "-",
// it reads standard input.
func ParseFile(path string, schema *Schema, warn func(format string, args ...interface{})) (*Table, Counts, error) {
	t := NewTable(schema.Unit, schema.DisplayLabels()...)
	counts, err := ParseFileInto(t, path, schema, warn, nil)
	if err != nil {
		return nil, counts, err
	}
	return t, counts, nil
}

// ParseFileInto is like ParseInto, but reads the named file. If path
// is "-", it reads standard input.
func ParseFileInto(t *Table, path string, schema *Schema, warn func(format string, args ...interface{}), onRow func(row *Row, samples []Sample)) (Counts, error) {
	if path == "-" {
		return ParseInto(t, os.Stdin, "<stdin>", schema, warn, onRow)
	}
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, Error.Wrap(err)
	}
	defer f.Close()
	return ParseInto(t, f, path, schema, warn, onRow)
}

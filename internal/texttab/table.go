// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Its methods return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows   [][]cell
	widths []int
	// Sep is printed between columns. The default is two spaces.
	Sep string
}

type cell struct {
	value string
	align align
}

type align int

const (
	alignLeft align = iota
	alignRight
)

// A CellOption modifies a cell.
type CellOption func(c *cell)

// Right right-aligns a cell within its column.
var Right CellOption = func(c *cell) { c.align = alignRight }

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := len(t.rows) - 1
	col := len(t.rows[r])
	t.rows[r] = append(t.rows[r], c)
	for len(t.widths) <= col {
		t.widths = append(t.widths, 0)
	}
	if w := utf8.RuneCountInString(value); w > t.widths[col] {
		t.widths[col] = w
	}
	return t
}

// Format lays out table t and writes it to w. Trailing empty cells
// and trailing spaces are omitted.
func (t *Table) Format(w io.Writer) error {
	sep := t.Sep
	if sep == "" {
		sep = "  "
	}
	var buf strings.Builder
	for _, row := range t.rows {
		buf.Reset()
		for len(row) > 0 && row[len(row)-1].value == "" {
			row = row[:len(row)-1]
		}
		for i, c := range row {
			if i > 0 {
				buf.WriteString(sep)
			}
			last := i == len(row)-1
			switch {
			case c.align == alignRight:
				fmt.Fprintf(&buf, "%*s", t.widths[i], c.value)
			case last:
				buf.WriteString(c.value)
			default:
				fmt.Fprintf(&buf, "%-*s", t.widths[i], c.value)
			}
		}
		line := strings.TrimRight(buf.String(), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"bytes"
	"io"
	"strconv"
)

// A Writer writes rows in the layout of a schema.
//
// Numeric fields are written with the fewest digits that reproduce
// the parsed value exactly, so a written row reads back as an equal
// row.
type Writer struct {
	w      io.Writer
	schema *Schema
	buf    bytes.Buffer

	lastSize int // size of the previous row, for block mode
}

// NewWriter returns a writer that writes rows laid out by schema to w.
func NewWriter(w io.Writer, schema *Schema) *Writer {
	return &Writer{w: w, schema: schema}
}

func (w *Writer) sep() string {
	if w.schema.Delimiter == MultiSpace {
		return "  "
	}
	return " "
}

// WriteHeader writes a header line naming the schema's fields.
func (w *Writer) WriteHeader() error {
	for i, f := range w.schema.Fields {
		if i > 0 {
			w.buf.WriteString(w.sep())
		}
		w.buf.WriteString(f.Name)
	}
	return w.flush()
}

// Write writes row as one data line. In block mode, a row whose size
// differs from the previous row's starts a new block.
func (w *Writer) Write(row *Row) error {
	if w.schema.Blocks && w.lastSize != 0 && row.Size != w.lastSize {
		w.buf.WriteString(w.schema.BlockMarker)
		if err := w.flush(); err != nil {
			return err
		}
	}
	w.lastSize = row.Size
	for i, f := range w.schema.Fields {
		if i > 0 {
			w.buf.WriteString(w.sep())
		}
		v := row.Values[i]
		switch f.Kind {
		case Size:
			w.buf.WriteString(strconv.Itoa(row.Size))
		case Group:
			w.buf.WriteString(strconv.Itoa(row.Group))
		case Float, Timing:
			w.buf.WriteString(strconv.FormatFloat(v.Num, 'f', -1, 64))
		default:
			w.buf.WriteString(v.Text)
		}
	}
	return w.flush()
}

func (w *Writer) flush() error {
	w.buf.WriteByte('\n')
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

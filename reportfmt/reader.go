// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Reader reads a benchmark report one data line at a time.
//
// Its API is modeled on bufio.Scanner. Each call to Scan classifies
// input lines until it finds a data line, which it returns as a *Row,
// or an unparseable line, which it returns as a *SyntaxError. Header,
// separator and summary lines are counted and skipped.
type Reader struct {
	br     *bufio.Reader
	schema *Schema
	err    error // I/O or schema error

	fileName string
	line     int

	rec    Record
	counts Counts

	// Block mode state.
	inBlock   bool
	blockSize int
	blockErr  string // non-empty if the block's size was unreadable
	blockLine int
}

// Counts records how the lines of a report were classified.
//
// Blank lines are not counted, so Accepted+Rejected == Lines-Skipped.
type Counts struct {
	Lines    int // non-empty lines
	Skipped  int // header, separator, marker and summary lines
	Accepted int // data lines
	Rejected int // unparseable lines
}

// Add adds the counts of o to c.
func (c *Counts) Add(o Counts) {
	c.Lines += o.Lines
	c.Skipped += o.Skipped
	c.Accepted += o.Accepted
	c.Rejected += o.Rejected
}

// A Record is a single record read from a report. It is a *Row or a
// *SyntaxError.
type Record interface {
	// Pos returns the file name and 1-based line number of the
	// record.
	Pos() (fileName string, line int)
}

var _ Record = (*Row)(nil)
var _ Record = (*SyntaxError)(nil)

// MaxLineLen is the length in bytes of the longest line a Reader
// parses. Longer lines are rejected as syntax errors.
const MaxLineLen = 64 << 10

// A SyntaxError reports an unparseable line. It is not fatal: the
// line is excluded and reading continues.
type SyntaxError struct {
	FileName string
	Line     int
	Text     string // the offending line, trimmed
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noRecord = &SyntaxError{"", 0, "", "Reader.Scan has not been called"}

// NewReader returns a Reader that parses r according to schema.
// fileName is used in error messages; it is purely diagnostic.
//
// If schema has not been validated, NewReader validates it, and a
// validation failure is reported by Err.
func NewReader(r io.Reader, fileName string, schema *Schema) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	rd := &Reader{
		br:       bufio.NewReaderSize(r, MaxLineLen),
		schema:   schema,
		fileName: fileName,
	}
	if !schema.compiled {
		if err := schema.Validate(); err != nil {
			rd.err = err
		}
	}
	return rd
}

func (r *Reader) newSyntaxError(text, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, text, fmt.Sprintf(format, args...)}
}

// Scan advances to the next data line or unparseable line and reports
// whether one was found. At EOF or on an I/O error it returns false,
// and the caller should check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	s := r.schema
	for {
		text, long, err := r.readLine()
		if err != nil {
			if err != io.EOF {
				r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
			}
			return false
		}
		r.line++
		if long {
			r.counts.Lines++
			r.counts.Rejected++
			r.rec = r.newSyntaxError("", "line longer than %d bytes", MaxLineLen)
			return true
		}
		line := strings.TrimSpace(text)
		if line == "" {
			r.endBlock()
			continue
		}
		r.counts.Lines++
		if s.marker(line) {
			r.counts.Skipped++
			r.endBlock()
			continue
		}
		if s.skip(line) {
			r.counts.Skipped++
			continue
		}
		fields := s.split(line)
		if s.groupIdx >= 0 && s.groupIdx < len(fields) && s.summary(fields[s.groupIdx]) {
			r.counts.Skipped++
			continue
		}

		row, serr := r.parseRow(line, fields)
		if serr != nil {
			r.counts.Rejected++
			r.rec = serr
		} else {
			r.counts.Accepted++
			r.rec = row
		}
		return true
	}
}

// readLine returns the next line without its line ending. If the line
// is longer than MaxLineLen, it is consumed, text is empty and long is
// true. At the end of the input it returns io.EOF.
func (r *Reader) readLine() (text string, long bool, err error) {
	buf, err := r.br.ReadSlice('\n')
	for err == bufio.ErrBufferFull {
		long = true
		buf, err = r.br.ReadSlice('\n')
	}
	if err == io.EOF && (len(buf) > 0 || long) {
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	if long {
		return "", true, nil
	}
	return strings.TrimRight(string(buf), "\r\n"), false, nil
}

func (r *Reader) endBlock() {
	r.inBlock = false
	r.blockErr = ""
}

// parseRow parses the fields of a data line.
func (r *Reader) parseRow(line string, fields []string) (*Row, *SyntaxError) {
	s := r.schema
	// In block mode, only the first data line of a block supplies
	// the size.
	if s.Blocks {
		if !r.inBlock {
			r.inBlock = true
			r.blockLine = r.line
			r.blockErr = ""
			r.blockSize = 0
			if s.sizeIdx >= len(fields) {
				r.blockErr = "missing size field"
			} else {
				r.blockSize, r.blockErr = parseSize(fields[s.sizeIdx])
			}
		}
		if r.blockErr != "" {
			if r.blockLine == r.line {
				return nil, r.newSyntaxError(line, "%s", r.blockErr)
			}
			return nil, r.newSyntaxError(line, "block starting at line %d has no valid size: %s", r.blockLine, r.blockErr)
		}
	}

	if len(fields) != len(s.Fields) {
		return nil, r.newSyntaxError(line, "expected %d fields, found %d", len(s.Fields), len(fields))
	}

	row := &Row{
		Values:   make([]Value, len(fields)),
		fileName: r.fileName,
		line:     r.line,
	}

	for i, text := range fields {
		f := s.Fields[i]
		v := Value{Text: text, Num: math.NaN()}
		switch f.Kind {
		case Size:
			if s.Blocks {
				v.Num = float64(r.blockSize)
				row.Size = r.blockSize
				break
			}
			size, msg := parseSize(text)
			if msg != "" {
				return nil, r.newSyntaxError(line, "%s", msg)
			}
			v.Num = float64(size)
			row.Size = size
		case Group:
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, r.newSyntaxError(line, "parsing %s: invalid integer %q", f.Name, text)
			}
			v.Num = float64(n)
			row.Group = n
		case Label:
			if !isLabel(text) {
				return nil, r.newSyntaxError(line, "invalid algorithm label %q", text)
			}
			label, ok := s.resolve(text)
			if !ok {
				return nil, r.newSyntaxError(line, "unknown algorithm label %q", text)
			}
			row.Label = label
		case Float, Timing:
			x, err := strconv.ParseFloat(text, 64)
			if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, r.newSyntaxError(line, "parsing %s: invalid number %q", f.Name, text)
			}
			if f.Kind == Timing && x < 0 {
				return nil, r.newSyntaxError(line, "parsing %s: negative timing %q", f.Name, text)
			}
			v.Num = x
		}
		row.Values[i] = v
	}
	return row, nil
}

func parseSize(text string) (int, string) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Sprintf("parsing size: invalid integer %q", text)
	}
	if n <= 0 {
		return 0, fmt.Sprintf("parsing size: %d is not positive", n)
	}
	return n, ""
}

// Result returns the record read by the last call to Scan: a *Row or
// a *SyntaxError. Unlike a *Row, a *SyntaxError is never an I/O
// problem and reading may continue.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noRecord
	}
	return r.rec
}

// Err returns the first I/O error encountered by the Reader, or the
// schema validation error.
func (r *Reader) Err() error {
	return r.err
}

// Counts returns the line classification counts so far.
func (r *Reader) Counts() Counts {
	return r.counts
}

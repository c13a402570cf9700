// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"fmt"
	"strings"

	"github.com/zeebo/errs"
)

// SchemaError is the error class for invalid schemas.
var SchemaError = errs.Class("schema")

// A Kind is the type of one column of a report line.
type Kind int

const (
	// Token is any non-empty token. It is captured but not interpreted.
	Token Kind = iota
	// Size is the input size of the line. It must be a positive integer.
	Size
	// Group is a run or group number. It is an integer unless it is
	// one of the schema's summary tokens.
	Group
	// Label is the algorithm label. It must consist of letters,
	// digits and hyphens.
	Label
	// Float is a numeric column that is validated but not aggregated,
	// such as the per-run minimum and maximum.
	Float
	// Timing is the representative value of the line. It must be a
	// non-negative number.
	Timing
)

var kindNames = [...]string{
	Token:  "token",
	Size:   "size",
	Group:  "group",
	Label:  "label",
	Float:  "float",
	Timing: "timing",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, SchemaError.New("unknown field kind %q", s)
}

func (k Kind) numeric() bool {
	return k == Size || k == Float || k == Timing
}

// A Field describes one column of a data line.
type Field struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`

	// Label binds a Timing field to a fixed algorithm label. It is
	// required for every Timing field of a wide report (one without a
	// Label field) and must be empty otherwise.
	Label string `yaml:"label,omitempty"`
}

// A Delimiter selects how a line is split into fields.
type Delimiter int

const (
	// Whitespace splits on any run of whitespace.
	Whitespace Delimiter = iota
	// MultiSpace splits on runs of two or more whitespace characters,
	// or on a single tab, so a field may contain single spaces.
	MultiSpace
)

func (d Delimiter) String() string {
	switch d {
	case Whitespace:
		return "whitespace"
	case MultiSpace:
		return "multispace"
	}
	return fmt.Sprintf("Delimiter(%d)", int(d))
}

// ParseDelimiter returns the Delimiter named s.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(s) {
	case "", "whitespace", "ws":
		return Whitespace, nil
	case "multispace", "multi":
		return MultiSpace, nil
	}
	return 0, SchemaError.New("unknown delimiter %q", s)
}

// A Schema describes the layout of one report variant: the ordered
// columns of a data line, how lines are split, which lines are skipped
// and which algorithm labels are recognized.
//
// A Schema must be validated before use. Schemas returned by
// SchemaBuilder.Build, LoadSchema and Builtin are already valid; a
// Schema constructed as a struct literal is validated by NewReader.
type Schema struct {
	Name      string    `yaml:"name"`
	Fields    []Field   `yaml:"fields"`
	Delimiter Delimiter `yaml:"delimiter"`

	// Labels is the set of recognized algorithm labels, in display
	// order. If empty, any well-formed label is accepted.
	Labels []string `yaml:"labels"`

	// OtherLabel, if non-empty, is the label under which samples with
	// an unrecognized label are grouped. If empty, such lines are
	// rejected.
	OtherLabel string `yaml:"other_label"`

	// SkipPrefixes lists line prefixes that mark header, separator
	// and summary lines.
	SkipPrefixes []string `yaml:"skip"`

	// SummaryTokens lists Group column values that mark a
	// pre-computed summary row, such as "Avg".
	SummaryTokens []string `yaml:"summary"`

	// Blocks enables block mode: lines are grouped into blocks
	// separated by blank lines or BlockMarker lines and the size is
	// read once from the first data line of each block.
	Blocks      bool   `yaml:"blocks"`
	BlockMarker string `yaml:"block_marker"`

	// Unit is the unit of Timing values, such as "μs".
	Unit string `yaml:"unit"`

	compiled bool
	sizeIdx  int
	groupIdx int
	labelIdx int
	timings  []int
	known    map[string]bool
}

// Validate checks s and prepares it for use by a Reader.
func (s *Schema) Validate() error {
	s.compiled = false
	s.sizeIdx, s.groupIdx, s.labelIdx = -1, -1, -1
	s.timings = s.timings[:0]

	if len(s.Fields) == 0 {
		return SchemaError.New("%s: no fields", s.name())
	}
	for i, f := range s.Fields {
		if f.Kind < Token || f.Kind > Timing {
			return SchemaError.New("%s: field %d has invalid kind %d", s.name(), i, int(f.Kind))
		}
		switch f.Kind {
		case Size:
			if s.sizeIdx >= 0 {
				return SchemaError.New("%s: more than one size field", s.name())
			}
			s.sizeIdx = i
		case Group:
			if s.groupIdx >= 0 {
				return SchemaError.New("%s: more than one group field", s.name())
			}
			s.groupIdx = i
		case Label:
			if s.labelIdx >= 0 {
				return SchemaError.New("%s: more than one label field", s.name())
			}
			s.labelIdx = i
		case Timing:
			s.timings = append(s.timings, i)
		}
	}
	if s.sizeIdx < 0 {
		return SchemaError.New("%s: no size field", s.name())
	}
	if len(s.timings) == 0 {
		return SchemaError.New("%s: no timing field", s.name())
	}
	if s.labelIdx >= 0 {
		// Long layout: one timing column, labeled by the label column.
		if len(s.timings) != 1 {
			return SchemaError.New("%s: a schema with a label field must have exactly one timing field", s.name())
		}
		if f := s.Fields[s.timings[0]]; f.Label != "" {
			return SchemaError.New("%s: timing field %q cannot have a fixed label alongside a label field", s.name(), f.Name)
		}
	} else {
		// Wide layout: every timing column carries its own label.
		seen := make(map[string]bool)
		for _, i := range s.timings {
			f := s.Fields[i]
			if f.Label == "" {
				return SchemaError.New("%s: timing field %q needs a label", s.name(), f.Name)
			}
			if !isLabel(f.Label) {
				return SchemaError.New("%s: invalid label %q", s.name(), f.Label)
			}
			if seen[f.Label] {
				return SchemaError.New("%s: duplicate label %q", s.name(), f.Label)
			}
			seen[f.Label] = true
		}
	}
	for _, l := range s.Labels {
		if !isLabel(l) {
			return SchemaError.New("%s: invalid label %q", s.name(), l)
		}
	}
	if s.OtherLabel != "" && !isLabel(s.OtherLabel) {
		return SchemaError.New("%s: invalid label %q", s.name(), s.OtherLabel)
	}
	if s.Delimiter != Whitespace && s.Delimiter != MultiSpace {
		return SchemaError.New("%s: invalid delimiter %d", s.name(), int(s.Delimiter))
	}

	s.known = make(map[string]bool, len(s.Labels))
	for _, l := range s.Labels {
		s.known[l] = true
	}
	s.compiled = true
	return nil
}

func (s *Schema) name() string {
	if s.Name == "" {
		return "<unnamed>"
	}
	return s.Name
}

// Wide reports whether s describes a wide report, where each timing
// column belongs to a fixed algorithm label.
func (s *Schema) Wide() bool {
	return s.labelIdx < 0
}

// DisplayLabels returns the labels s declares, in display order.
func (s *Schema) DisplayLabels() []string {
	if s.Wide() {
		out := make([]string, 0, len(s.timings))
		for _, i := range s.timings {
			out = append(out, s.Fields[i].Label)
		}
		return out
	}
	return append([]string(nil), s.Labels...)
}

// skip reports whether line is a header, separator or summary line.
func (s *Schema) skip(line string) bool {
	for _, p := range s.SkipPrefixes {
		if p != "" && strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// marker reports whether line ends a block in block mode.
func (s *Schema) marker(line string) bool {
	return s.Blocks && s.BlockMarker != "" && strings.HasPrefix(line, s.BlockMarker)
}

func (s *Schema) summary(tok string) bool {
	for _, t := range s.SummaryTokens {
		if t == tok {
			return true
		}
	}
	return false
}

// resolve maps a label read from a long report to the label the
// sample is filed under, reporting false if the label is rejected.
func (s *Schema) resolve(label string) (string, bool) {
	if len(s.known) == 0 || s.known[label] {
		return label, true
	}
	if s.OtherLabel != "" {
		return s.OtherLabel, true
	}
	return "", false
}

// split splits a trimmed line into fields according to s.Delimiter.
func (s *Schema) split(line string) []string {
	if s.Delimiter == MultiSpace {
		return splitMulti(line)
	}
	return strings.Fields(line)
}

// splitMulti splits line at runs of two or more spaces or at tabs.
func splitMulti(line string) []string {
	var out []string
	start := 0
	for i := 0; i < len(line); {
		if line[i] != ' ' && line[i] != '\t' {
			i++
			continue
		}
		j := i
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
		if j-i >= 2 || line[i] == '\t' {
			if i > start {
				out = append(out, line[start:i])
			}
			start = j
		}
		i = j
	}
	if start < len(line) {
		out = append(out, line[start:])
	}
	return out
}

// isLabel reports whether x is a well-formed algorithm label.
func isLabel(x string) bool {
	if x == "" {
		return false
	}
	for i := 0; i < len(x); i++ {
		c := x[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}

// A SchemaBuilder constructs a Schema one column at a time.
//
// Its methods return the builder so calls can be chained:
//
//	s, err := NewSchema("sum").
//		Size("Size").Group("Group").Label("Algorithm").
//		Float("Min").Float("Max").Timing("Avg").Token("Valid").
//		Labels("Naive", "2-Way", "4-Way").
//		Build()
type SchemaBuilder struct {
	s Schema
}

// NewSchema returns a builder for a schema called name. The builder
// starts with the whitespace delimiter and the µs unit.
func NewSchema(name string) *SchemaBuilder {
	return &SchemaBuilder{s: Schema{Name: name, Unit: "μs"}}
}

func (b *SchemaBuilder) field(name string, kind Kind, label string) *SchemaBuilder {
	b.s.Fields = append(b.s.Fields, Field{Name: name, Kind: kind, Label: label})
	return b
}

// Size appends the size column.
func (b *SchemaBuilder) Size(name string) *SchemaBuilder { return b.field(name, Size, "") }

// Group appends the group (run number) column.
func (b *SchemaBuilder) Group(name string) *SchemaBuilder { return b.field(name, Group, "") }

// Label appends the algorithm label column.
func (b *SchemaBuilder) Label(name string) *SchemaBuilder { return b.field(name, Label, "") }

// Float appends a validated numeric column.
func (b *SchemaBuilder) Float(name string) *SchemaBuilder { return b.field(name, Float, "") }

// Token appends an uninterpreted column.
func (b *SchemaBuilder) Token(name string) *SchemaBuilder { return b.field(name, Token, "") }

// Timing appends the representative timing column of a long report.
func (b *SchemaBuilder) Timing(name string) *SchemaBuilder { return b.field(name, Timing, "") }

// TimingFor appends a timing column of a wide report whose values
// belong to label.
func (b *SchemaBuilder) TimingFor(name, label string) *SchemaBuilder {
	return b.field(name, Timing, label)
}

// Labels sets the recognized algorithm labels.
func (b *SchemaBuilder) Labels(labels ...string) *SchemaBuilder {
	b.s.Labels = append(b.s.Labels, labels...)
	return b
}

// Other groups samples with unrecognized labels under label instead
// of rejecting their lines.
func (b *SchemaBuilder) Other(label string) *SchemaBuilder {
	b.s.OtherLabel = label
	return b
}

// Skip adds line prefixes to skip.
func (b *SchemaBuilder) Skip(prefixes ...string) *SchemaBuilder {
	b.s.SkipPrefixes = append(b.s.SkipPrefixes, prefixes...)
	return b
}

// Summary adds group tokens that mark summary rows.
func (b *SchemaBuilder) Summary(tokens ...string) *SchemaBuilder {
	b.s.SummaryTokens = append(b.s.SummaryTokens, tokens...)
	return b
}

// Delimit sets the field delimiter.
func (b *SchemaBuilder) Delimit(d Delimiter) *SchemaBuilder {
	b.s.Delimiter = d
	return b
}

// Blocks enables block mode. Blocks end at blank lines and, if marker
// is non-empty, at lines starting with marker.
func (b *SchemaBuilder) Blocks(marker string) *SchemaBuilder {
	b.s.Blocks = true
	b.s.BlockMarker = marker
	return b
}

// Unit sets the unit of timing values.
func (b *SchemaBuilder) Unit(unit string) *SchemaBuilder {
	b.s.Unit = unit
	return b
}

// Build validates and returns the schema. The builder may be reused;
// each call returns an independent Schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	s := b.s.clone()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) clone() *Schema {
	s2 := &Schema{
		Name:          s.Name,
		Fields:        append([]Field(nil), s.Fields...),
		Delimiter:     s.Delimiter,
		Labels:        append([]string(nil), s.Labels...),
		OtherLabel:    s.OtherLabel,
		SkipPrefixes:  append([]string(nil), s.SkipPrefixes...),
		SummaryTokens: append([]string(nil), s.SummaryTokens...),
		Blocks:        s.Blocks,
		BlockMarker:   s.BlockMarker,
		Unit:          s.Unit,
	}
	if s.compiled {
		// Validate cannot fail on a copy of a valid schema.
		s2.Validate()
	}
	return s2
}

// Clone returns a copy of s that shares no state with it.
func (s *Schema) Clone() *Schema {
	return s.clone()
}

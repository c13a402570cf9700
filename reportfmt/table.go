// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"encoding/json"
	"sort"
)

// A Table holds the timing samples of one report, keyed by input size
// and then by algorithm label.
//
// Samples for a given size and label are kept in the order they
// appeared in the report.
type Table struct {
	// Samples maps size to algorithm label to timing values.
	Samples map[int]map[string][]float64

	// Unit is the unit of the timing values.
	Unit string

	// labels lists every label of the table: the labels declared by
	// the schema, then undeclared ones in order of first appearance.
	labels []string
}

// NewTable returns an empty table whose label order starts with
// labels.
func NewTable(unit string, labels ...string) *Table {
	t := &Table{Samples: make(map[int]map[string][]float64), Unit: unit}
	for _, l := range labels {
		t.addLabel(l)
	}
	return t
}

func (t *Table) addLabel(label string) {
	for _, l := range t.labels {
		if l == label {
			return
		}
	}
	t.labels = append(t.labels, label)
}

// Add appends a sample to the table.
func (t *Table) Add(s Sample) {
	byLabel := t.Samples[s.Size]
	if byLabel == nil {
		byLabel = make(map[string][]float64)
		t.Samples[s.Size] = byLabel
	}
	if _, ok := byLabel[s.Label]; !ok {
		t.addLabel(s.Label)
	}
	byLabel[s.Label] = append(byLabel[s.Label], s.Value)
}

// Sizes returns the sizes in the table in ascending order.
func (t *Table) Sizes() []int {
	sizes := make([]int, 0, len(t.Samples))
	for size := range t.Samples {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// Labels returns every algorithm label known to the table, declared
// labels first. A label may have no samples at some or all sizes.
func (t *Table) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Values returns the samples for size and label. The result must not
// be modified.
func (t *Table) Values(size int, label string) []float64 {
	return t.Samples[size][label]
}

// Len returns the total number of samples in the table.
func (t *Table) Len() int {
	n := 0
	for _, byLabel := range t.Samples {
		for _, vs := range byLabel {
			n += len(vs)
		}
	}
	return n
}

type jsonTable struct {
	Unit    string                       `json:"unit"`
	Labels  []string                     `json:"labels"`
	Samples map[int]map[string][]float64 `json:"samples"`
}

// MarshalJSON encodes the table as an object with "unit", "labels"
// and "samples" keys. Sizes become decimal string keys.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTable{t.Unit, t.labels, t.Samples})
}

// UnmarshalJSON decodes a table encoded by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var jt jsonTable
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	*t = *NewTable(jt.Unit, jt.Labels...)
	for size, byLabel := range jt.Samples {
		t.Samples[size] = byLabel
	}
	return nil
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"io"
	"os"

	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"
)

// LoadSchema decodes and validates a YAML schema description from r.
//
// For example:
//
//	name: sum-long
//	delimiter: whitespace
//	labels: [Naive, 2-Way, 4-Way]
//	skip: [Size, "--", Global Stats]
//	fields:
//	  - {name: Size, kind: size}
//	  - {name: Group, kind: group}
//	  - {name: Algorithm, kind: label}
//	  - {name: Min, kind: float}
//	  - {name: Max, kind: float}
//	  - {name: Avg, kind: timing}
//	  - {name: Valid, kind: token}
//
// The unit defaults to "μs".
func LoadSchema(r io.Reader) (*Schema, error) {
	s := &Schema{Unit: "μs"}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if err == io.EOF {
			return nil, SchemaError.New("empty schema")
		}
		return nil, SchemaError.Wrap(err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSchemaFile reads a YAML schema from the named file.
func LoadSchemaFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer f.Close()
	s, err := LoadSchema(f)
	if err != nil {
		return nil, SchemaError.New("%s: %v", path, errs.Unwrap(err))
	}
	return s, nil
}

// UnmarshalYAML decodes a Kind from its name.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	kind, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// MarshalYAML encodes a Kind as its name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a Delimiter from its name.
func (d *Delimiter) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	delim, err := ParseDelimiter(name)
	if err != nil {
		return err
	}
	*d = delim
	return nil
}

// MarshalYAML encodes a Delimiter as its name.
func (d Delimiter) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

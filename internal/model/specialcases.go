// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// SpecialCase is one override row: a post-transform name and its replacement.
type SpecialCase struct {
	Match   string `json:"match" yaml:"match"`
	Replace string `json:"replace" yaml:"replace"`
}

// SpecialCases is the ordered list of override rows of a column. Rows are
// kept in the order they were written so that Map can apply "later row wins".
type SpecialCases []SpecialCase

// RowsToSpecialCases builds the override list the way the settings editor
// does: both sides are trimmed and rows with two empty sides are dropped.
func RowsToSpecialCases(rows []SpecialCase) SpecialCases {
	out := make(SpecialCases, 0, len(rows))
	for _, r := range rows {
		m := strings.TrimSpace(r.Match)
		v := strings.TrimSpace(r.Replace)
		if m == "" && v == "" {
			continue
		}
		out = append(out, SpecialCase{Match: m, Replace: v})
	}
	return out
}

// Map collapses the rows into a lookup map. A later row with the same key
// silently overwrites an earlier one.
func (s SpecialCases) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, r := range s {
		m[r.Match] = r.Replace
	}
	return m
}

// Lookup returns the override for name, honouring "later row wins".
func (s SpecialCases) Lookup(name string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Match == name {
			return s[i].Replace, true
		}
	}
	return "", false
}

// collapsed returns the rows with earlier duplicates removed, keeping the
// position of the first occurrence and the value of the last.
func (s SpecialCases) collapsed() SpecialCases {
	idx := make(map[string]int, len(s))
	out := make(SpecialCases, 0, len(s))
	for _, r := range s {
		if i, ok := idx[r.Match]; ok {
			out[i].Replace = r.Replace
			continue
		}
		idx[r.Match] = len(out)
		out = append(out, r)
	}
	return out
}

// MarshalJSON writes the persisted object shape {"match": "replace", ...}.
func (s SpecialCases) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range s.collapsed() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(r.Match)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Replace)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either the persisted object shape or a list of rows.
// Object keys are read in document order, so a repeated key keeps its last
// value.
func (s *SpecialCases) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}
	if trimmed[0] == '[' {
		var rows []SpecialCase
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return fmt.Errorf("special cases: %w", err)
		}
		*s = rows
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("special cases: %w", err)
	}
	var out SpecialCases
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("special cases: %w", err)
		}
		key, _ := tok.(string)
		var val any
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("special cases %q: %w", key, err)
		}
		out = append(out, SpecialCase{Match: key, Replace: scalarString(val)})
	}
	*s = out
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for profiles decoded with go-yaml,
// which also covers JSON documents.
func (s *SpecialCases) UnmarshalYAML(unmarshal func(any) error) error {
	var shape any
	if err := unmarshal(&shape); err != nil {
		return fmt.Errorf("special cases: %w", err)
	}
	switch shape.(type) {
	case nil:
		*s = nil
		return nil
	case []any:
		var rows []SpecialCase
		if err := unmarshal(&rows); err != nil {
			return fmt.Errorf("special cases: %w", err)
		}
		*s = rows
		return nil
	}

	var ordered yaml.MapSlice
	if err := unmarshal(&ordered); err != nil {
		return fmt.Errorf("special cases: expected a mapping or a list of rows: %w", err)
	}
	out := make(SpecialCases, 0, len(ordered))
	for _, item := range ordered {
		out = append(out, SpecialCase{Match: scalarString(item.Key), Replace: scalarString(item.Value)})
	}
	*s = out
	return nil
}

// MarshalYAML writes the persisted mapping shape, in row order.
func (s SpecialCases) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(s))
	for _, r := range s.collapsed() {
		out = append(out, yaml.MapItem{Key: r.Match, Value: r.Replace})
	}
	return out, nil
}

func scalarString(v any) string {
	if v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

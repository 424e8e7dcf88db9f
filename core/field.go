// ABOUTME: FieldEntry tagged variant for form layouts: a single field or a group.
// ABOUTME: Encodes as a string or a list of strings in YAML and JSON.

package core

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FieldEntry is one row of a create/update form: either a single field or a
// group of fields rendered side by side.
type FieldEntry struct {
	name  string
	group []string
}

// Single returns an entry for one field.
func Single(name string) FieldEntry {
	return FieldEntry{name: name}
}

// Group returns an entry for fields rendered together.
func Group(names ...string) FieldEntry {
	g := make([]string, len(names))
	copy(g, names)
	return FieldEntry{group: g}
}

// Fields builds entries from plain names, a shorthand for Single on each.
func Fields(names ...string) []FieldEntry {
	entries := make([]FieldEntry, len(names))
	for i, n := range names {
		entries[i] = Single(n)
	}
	return entries
}

// IsGroup reports whether the entry is a group.
func (f FieldEntry) IsGroup() bool {
	return f.group != nil
}

// Name returns the field name of a single entry, or "" for a group.
func (f FieldEntry) Name() string {
	return f.name
}

// Names returns the field names covered by the entry.
func (f FieldEntry) Names() []string {
	if f.IsGroup() {
		out := make([]string, len(f.group))
		copy(out, f.group)
		return out
	}
	return []string{f.name}
}

// String renders "name" or "[a b]".
func (f FieldEntry) String() string {
	if f.IsGroup() {
		return "[" + strings.Join(f.group, " ") + "]"
	}
	return f.name
}

// FlattenFields returns every field name in form order.
func FlattenFields(entries []FieldEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Names()...)
	}
	return out
}

func (f FieldEntry) MarshalJSON() ([]byte, error) {
	if f.IsGroup() {
		return json.Marshal(f.group)
	}
	return json.Marshal(f.name)
}

func (f *FieldEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*f = Single(name)
		return nil
	}

	var group []string
	if err := json.Unmarshal(data, &group); err != nil {
		return fmt.Errorf("field entry must be a string or a list of strings: %s", string(data))
	}
	*f = Group(group...)
	return nil
}

func (f FieldEntry) MarshalYAML() (interface{}, error) {
	if f.IsGroup() {
		return f.group, nil
	}
	return f.name, nil
}

func (f *FieldEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		*f = Single(name)
		return nil
	case yaml.SequenceNode:
		var group []string
		if err := value.Decode(&group); err != nil {
			return fmt.Errorf("line %d: field group must be a list of strings: %w", value.Line, err)
		}
		*f = Group(group...)
		return nil
	default:
		return fmt.Errorf("line %d: field entry must be a string or a list of strings", value.Line)
	}
}

package schemafile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// File is the root of a schema file.
type File struct {
	// Version of the schema file format.
	Version string `yaml:"version,omitempty"`

	// Options controls casting and key matching.
	Options FileOptions `yaml:"options,omitempty"`

	// Fields lists the record's fields in declaration order.
	Fields []FieldDef `yaml:"fields"`
}

// FileOptions mirrors options.Options; empty values keep the defaults.
type FileOptions struct {
	ItemSeparator string `yaml:"item_separator,omitempty"`
	PairSeparator string `yaml:"pair_separator,omitempty"`
	KeyMatch      string `yaml:"key_match,omitempty"`
}

// FieldDef declares one field.
type FieldDef struct {
	// Name is the canonical field name; input keys match it case-insensitively.
	Name string `yaml:"name"`

	// Type is a type tag such as "int", "list[str]" or "dict[str,float]". Defaults to "string".
	Type string `yaml:"type,omitempty"`

	// Default is the raw default, cast like an input value.
	Default *RawValue `yaml:"default,omitempty"`

	// Description is shown by describe.
	Description string `yaml:"description,omitempty"`
}

// RawValue is a default written as a YAML scalar, a list or a map.
// Lists and maps are joined with the file's separators before casting.
type RawValue struct {
	Scalar *string
	Items  []string
	Pairs  map[string]string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RawValue) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		r.Scalar = &single
		return nil
	}

	var list []string
	if err := unmarshal(&list); err == nil {
		r.Items = list
		return nil
	}

	var m map[string]string
	if err := unmarshal(&m); err == nil {
		r.Pairs = m
		return nil
	}

	return errors.New("expected scalar, list of scalars, or map of scalars for default")
}

// MarshalYAML implements yaml.Marshaler.
func (r RawValue) MarshalYAML() (any, error) {
	switch {
	case r.Scalar != nil:
		return *r.Scalar, nil
	case r.Pairs != nil:
		return r.Pairs, nil
	default:
		return r.Items, nil
	}
}

// Raw renders the value as an input string. Map pairs are sorted by key.
func (r *RawValue) Raw(itemSep, pairSep string) string {
	switch {
	case r.Scalar != nil:
		return *r.Scalar
	case r.Pairs != nil:
		keys := make([]string, 0, len(r.Pairs))
		for k := range r.Pairs {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		items := make([]string, 0, len(keys))
		for _, k := range keys {
			items = append(items, k+pairSep+r.Pairs[k])
		}

		return strings.Join(items, itemSep)
	default:
		return strings.Join(r.Items, itemSep)
	}
}

// String returns the raw value with the default separators.
func (r *RawValue) String() string {
	return r.Raw(",", "=")
}

// Validate checks the structure of the file: names are present and unique.
func (f *File) Validate() error {
	var errs []error

	seen := make(map[string]int, len(f.Fields))
	for i, fd := range f.Fields {
		if strings.TrimSpace(fd.Name) == "" {
			errs = append(errs, fmt.Errorf("fields[%d]: name is required", i))
			continue
		}

		if prev, ok := seen[fd.Name]; ok {
			errs = append(errs, fmt.Errorf("fields[%d]: %s already declared at fields[%d]", i, fd.Name, prev))
		}

		seen[fd.Name] = i
	}

	return errors.Join(errs...)
}

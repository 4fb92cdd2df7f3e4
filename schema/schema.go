package schema

import (
	"typed-env/internal/match"
	"typed-env/node"
)

// Setter assigns a resolved value onto the record; nil means "no value" and resets the field.
type Setter func(value any)

// Field describes a single configuration field.
type Field struct {
	Name       string // canonical name, original casing
	Key        string // lookup key
	Descriptor *node.Descriptor
	Default    any
	HasDefault bool

	set Setter
}

// Set assigns value onto the record the schema was built for.
func (f *Field) Set(value any) {
	if f.set != nil {
		f.set(value)
	}
}

// Schema is the field set of one configuration record.
type Schema struct {
	conv   *node.Converter
	fields []*Field
	byKey  map[string]*Field
}

func newSchema(conv *node.Converter) *Schema {
	return &Schema{conv: conv, byKey: make(map[string]*Field)}
}

// add registers f; a field with the same lookup key shadows the earlier one.
func (s *Schema) add(f *Field) {
	f.Key = match.LookupKey(f.Name, s.conv.Options().KeyMatch)

	if prev, ok := s.byKey[f.Key]; ok {
		for i, existing := range s.fields {
			if existing == prev {
				s.fields = append(s.fields[:i], s.fields[i+1:]...)
				break
			}
		}
	}

	s.byKey[f.Key] = f
	s.fields = append(s.fields, f)
}

// Converter returns the converter used to cast values of the schema's fields.
func (s *Schema) Converter() *node.Converter {
	return s.conv
}

// Fields returns the effective fields in declaration order.
func (s *Schema) Fields() []*Field {
	return s.fields
}

// Len returns the number of effective fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Lookup finds the field a raw input key refers to.
func (s *Schema) Lookup(key string) (*Field, bool) {
	f, ok := s.byKey[match.LookupKey(key, s.conv.Options().KeyMatch)]
	return f, ok
}

// Names returns the canonical names of the effective fields.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}

	return names
}

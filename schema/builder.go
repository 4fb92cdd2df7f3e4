package schema

import (
	"errors"
	"fmt"
	"reflect"

	"typed-env/node"
	"typed-env/options"
)

var ErrDefaultType = errors.New("default value does not match the field type")

// Builder registers fields explicitly, for records that are not Go structs.
//
//	values := map[string]any{}
//	s, err := schema.NewBuilder(nil).
//	    Field("Port", node.Scalar(primitive.KindInt), func(v any) { values["Port"] = v }).Default(8080).
//	    Field("Hosts", node.Sequence(nil), func(v any) { values["Hosts"] = v }).
//	    Build()
type Builder struct {
	schema *Schema
	last   *Field
	errs   []error
}

// NewBuilder starts an empty schema; a nil conv means a converter with default options.
func NewBuilder(conv *node.Converter) *Builder {
	if conv == nil {
		conv = node.NewConverter(options.Default())
	}

	return &Builder{schema: newSchema(conv)}
}

// Field registers a field. A field whose lookup key is already taken shadows the earlier one.
func (b *Builder) Field(name string, d *node.Descriptor, set Setter) *Builder {
	b.last = nil

	if err := b.schema.conv.Validate(d); err != nil {
		b.errs = append(b.errs, fmt.Errorf("field %s: %w", name, err))
		return b
	}

	b.last = &Field{Name: name, Descriptor: d, set: set}
	b.schema.add(b.last)

	return b
}

// Default sets the typed default of the last registered field.
func (b *Builder) Default(value any) *Builder {
	if b.last == nil {
		return b
	}

	if value != nil && reflect.TypeOf(value) != b.last.Descriptor.Type {
		b.errs = append(b.errs, fmt.Errorf("field %s: %w: %T is not %s", b.last.Name, ErrDefaultType, value, b.last.Descriptor))
		return b
	}

	b.last.Default, b.last.HasDefault = value, true

	return b
}

// DefaultRaw sets the default of the last registered field by casting raw.
func (b *Builder) DefaultRaw(raw string) *Builder {
	if b.last == nil {
		return b
	}

	value, err := b.schema.conv.Cast(raw, b.last.Descriptor)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("field %s: default: %w", b.last.Name, err))
		return b
	}

	b.last.Default, b.last.HasDefault = value, true

	return b
}

// Build returns the schema, or every registration error joined.
func (b *Builder) Build() (*Schema, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return b.schema, nil
}

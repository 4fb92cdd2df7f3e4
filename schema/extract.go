package schema

import (
	"errors"
	"fmt"
	"reflect"

	"typed-env/node"
	"typed-env/options"
)

const (
	TagName    = "env"
	TagDefault = "default"
)

var ErrNotStructPointer = errors.New("target must be a non-nil pointer to a struct")

// Defaulter is implemented by records that set their own defaults.
// The binder calls SetDefaults on a fresh instance before extracting its schema.
type Defaulter interface {
	SetDefaults()
}

// Extract builds the schema of the struct target points to. Setters write into *target.
// A nil conv means a converter with default options.
func Extract(target any, conv *node.Converter) (*Schema, error) {
	if conv == nil {
		conv = node.NewConverter(options.Default())
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %T", ErrNotStructPointer, target)
	}

	record := rv.Elem()
	s := newSchema(conv)

	for _, sf := range reflect.VisibleFields(record.Type()) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		name, ok := fieldName(sf)
		if !ok {
			continue
		}

		fv, err := record.FieldByIndexErr(sf.Index)
		if err != nil {
			continue // promoted through a nil embedded pointer
		}

		f, err := extractField(conv, name, sf, fv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}

		s.add(f)
	}

	return s, nil
}

func extractField(conv *node.Converter, name string, sf reflect.StructField, fv reflect.Value) (*Field, error) {
	d, err := conv.Describe(sf.Type)
	if err != nil {
		return nil, err
	}

	f := &Field{
		Name:       name,
		Descriptor: d,
		set:        valueSetter(fv),
	}

	switch raw, tagged := sf.Tag.Lookup(TagDefault); {
	case !fv.IsZero():
		f.Default, f.HasDefault = fv.Interface(), true
	case tagged:
		value, err := conv.Cast(raw, d)
		if err != nil {
			return nil, fmt.Errorf("default tag: %w", err)
		}
		f.Default, f.HasDefault = value, true
	}

	return f, nil
}

func fieldName(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup(TagName)
	switch {
	case !ok || tag == "":
		return sf.Name, true
	case tag == "-":
		return "", false
	default:
		return tag, true
	}
}

func valueSetter(fv reflect.Value) Setter {
	return func(value any) {
		if value == nil {
			fv.Set(reflect.Zero(fv.Type()))
			return
		}

		fv.Set(reflect.ValueOf(value))
	}
}

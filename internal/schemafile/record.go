package schemafile

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"typed-env/schema"
)

// Record holds the values bound through a file schema, in field order.
type Record struct {
	names  []string
	values map[string]any
}

func newRecord() *Record {
	return &Record{values: make(map[string]any)}
}

func (r *Record) setter(name string) schema.Setter {
	return func(value any) { r.values[name] = value }
}

// Names returns the field names in declaration order.
func (r *Record) Names() []string {
	return r.names
}

// Get returns the bound value of a field.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Map returns the bound values converted with Plain.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.names))
	for _, name := range r.names {
		m[name] = Plain(r.values[name])
	}

	return m
}

// MarshalYAML implements yaml.Marshaler, keeping field order.
func (r *Record) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, name := range r.names {
		var value yaml.Node
		if err := value.Encode(Plain(r.values[name])); err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}

		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&value,
		)
	}

	return root, nil
}

// Plain converts a cast value into plain data for encoding:
// sets become lists sorted by element value, map keys become strings,
// durations and times become their textual forms.
func Plain(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case time.Duration:
		return tv.String()
	case time.Time:
		return tv.Format(time.RFC3339Nano)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Plain(rv.Index(i).Interface())
		}

		return out

	case reflect.Map:
		if isSet(rv.Type()) {
			keys := rv.MapKeys()
			sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })

			out := make([]any, 0, len(keys))
			for _, k := range keys {
				out = append(out, Plain(k.Interface()))
			}

			return out
		}

		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(Plain(iter.Key().Interface()))] = Plain(iter.Value().Interface())
		}

		return out

	default:
		return v
	}
}

// lessKey orders numbers and durations by value, times chronologically
// and everything else by its printed form.
func lessKey(a, b reflect.Value) bool {
	switch {
	case a.CanInt():
		return a.Int() < b.Int()
	case a.CanUint():
		return a.Uint() < b.Uint()
	case a.CanFloat():
		return a.Float() < b.Float()
	}

	if ta, ok := a.Interface().(time.Time); ok {
		return ta.Before(b.Interface().(time.Time))
	}

	return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
}

func isSet(t reflect.Type) bool {
	return t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0
}

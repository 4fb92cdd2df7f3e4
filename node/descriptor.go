package node

import (
	"reflect"
	"strings"

	"typed-env/primitive"
)

var emptyStruct = reflect.TypeFor[struct{}]()

// Descriptor is a tagged description of a target type:
// Scalar(kind), Sequence(elem), Set(elem) or Mapping(key, value).
//
// Type is the Go type a cast materializes into. Descriptors built with the
// constructors below get a canonical Go type; descriptors derived from Go types
// keep the original one, so named types and sized numbers survive the cast.
type Descriptor struct {
	Dispatcher DispatcherEnum
	Kind       primitive.KindEnum // scalar kind, zero for containers and custom casters
	Elem       *Descriptor        // sequence and set element
	Key, Value *Descriptor        // mapping key and value
	Type       reflect.Type
	custom     *Caster
}

// Scalar describes a string, number, bool, duration or time value.
func Scalar(kind primitive.KindEnum) *Descriptor {
	return &Descriptor{Dispatcher: DispatcherScalar, Kind: kind, Type: kind.ReflectType()}
}

// Sequence describes an ordered list; a nil elem means string.
func Sequence(elem *Descriptor) *Descriptor {
	elem = orString(elem)

	d := &Descriptor{Dispatcher: DispatcherSlice, Elem: elem}
	if elem.Type != nil {
		d.Type = reflect.SliceOf(elem.Type)
	}

	return d
}

// Set describes a deduplicated collection held as map[E]struct{}; a nil elem means string.
func Set(elem *Descriptor) *Descriptor {
	elem = orString(elem)

	d := &Descriptor{Dispatcher: DispatcherSet, Elem: elem}
	if elem.Type != nil && elem.Type.Comparable() {
		d.Type = reflect.MapOf(elem.Type, emptyStruct)
	}

	return d
}

// Mapping describes a map; nil key or value means string.
func Mapping(key, value *Descriptor) *Descriptor {
	key, value = orString(key), orString(value)

	d := &Descriptor{Dispatcher: DispatcherMap, Key: key, Value: value}
	if key.Type != nil && value.Type != nil && key.Type.Comparable() {
		d.Type = reflect.MapOf(key.Type, value.Type)
	}

	return d
}

func orString(d *Descriptor) *Descriptor {
	if d == nil {
		return Scalar(primitive.KindString)
	}

	return d
}

// String renders the descriptor as a type tag: "int", "list[int]", "set[string]", "map[string,float64]".
func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}

	switch d.Dispatcher {
	default:
		if d.Type != nil {
			return d.Type.String()
		}
		return "unknown"
	case DispatcherScalar:
		if tag := d.Kind.Tag(); tag != "" && (d.Type == nil || d.Type == d.Kind.ReflectType()) {
			return tag
		}
		if d.Type != nil {
			return d.Type.String()
		}
		return d.Kind.String()
	case DispatcherSlice:
		return "list[" + d.Elem.String() + "]"
	case DispatcherSet:
		return "set[" + d.Elem.String() + "]"
	case DispatcherMap:
		return "map[" + d.Key.String() + "," + d.Value.String() + "]"
	}
}

// ParseTag parses a type tag as rendered by Descriptor.String.
// "list[T]" may also be written as "[]T", "map[K,V]" as "dict[K,V]".
// Parameterless "list", "set" and "map" default their parameters to string.
func ParseTag(tag string) (*Descriptor, error) {
	tag = strings.TrimSpace(tag)

	if rest, ok := strings.CutPrefix(tag, "[]"); ok {
		elem, err := ParseTag(rest)
		if err != nil {
			return nil, err
		}
		return Sequence(elem), nil
	}

	name, params, hasParams, err := splitTag(tag)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(name) {
	case "list", "slice", "sequence":
		return containerTag(tag, params, hasParams, 1, func(d []*Descriptor) *Descriptor { return Sequence(d[0]) })
	case "set":
		return containerTag(tag, params, hasParams, 1, func(d []*Descriptor) *Descriptor { return Set(d[0]) })
	case "map", "dict", "mapping":
		return containerTag(tag, params, hasParams, 2, func(d []*Descriptor) *Descriptor { return Mapping(d[0], d[1]) })
	}

	if hasParams {
		return nil, unsupported(tag, "unknown container kind")
	}

	kind := primitive.FromTag(name)
	if kind == 0 {
		return nil, unsupported(tag, "unknown type tag")
	}

	return Scalar(kind), nil
}

func containerTag(
	tag string, params []string, hasParams bool, want int,
	build func([]*Descriptor) *Descriptor,
) (*Descriptor, error) {
	nested := make([]*Descriptor, want)
	if !hasParams {
		return build(nested), nil
	}

	if len(params) != want {
		return nil, unsupported(tag, "wrong number of type parameters")
	}

	for i, p := range params {
		d, err := ParseTag(p)
		if err != nil {
			return nil, err
		}
		nested[i] = d
	}

	return build(nested), nil
}

// splitTag splits "name[a,b[c]]" into "name" and the top-level parameters ["a", "b[c]"].
func splitTag(tag string) (name string, params []string, hasParams bool, err error) {
	open := strings.IndexByte(tag, '[')
	if open < 0 {
		return tag, nil, false, nil
	}

	if !strings.HasSuffix(tag, "]") {
		return "", nil, false, unsupported(tag, "unbalanced brackets")
	}

	name = strings.TrimSpace(tag[:open])
	inner := tag[open+1 : len(tag)-1]

	depth, start := 0, 0
	for i, r := range inner {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return "", nil, false, unsupported(tag, "unbalanced brackets")
			}
		case ',':
			if depth == 0 {
				params = append(params, inner[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return "", nil, false, unsupported(tag, "unbalanced brackets")
	}

	params = append(params, inner[start:])

	return name, params, true, nil
}

package node

import (
	"reflect"

	"typed-env/primitive"
)

// Dispatch classifies a Go type by the root of its descriptor.
// Pointers are not dispatched.
func Dispatch(rtype reflect.Type) DispatcherEnum {
	if rtype == nil || rtype.Kind() == reflect.Ptr {
		return DispatcherUnknown
	}

	if primitive.FromReflectType(rtype) != 0 {
		return DispatcherScalar
	}

	switch rtype.Kind() {
	default:
		return DispatcherUnknown
	case reflect.Slice:
		return DispatcherSlice
	case reflect.Map:
		if isEmptyStruct(rtype.Elem()) {
			return DispatcherSet
		}

		return DispatcherMap
	}
}

// FromReflectType derives a descriptor from a Go type without custom casters.
func FromReflectType(rtype reflect.Type) (*Descriptor, error) {
	return describe(rtype, nil)
}

func describe(rtype reflect.Type, customs map[reflect.Type]Caster) (*Descriptor, error) {
	if rtype == nil {
		return nil, unsupported("<nil>", "")
	}

	if c, ok := customs[rtype]; ok {
		return &Descriptor{Dispatcher: DispatcherScalar, Type: rtype, custom: &c}, nil
	}

	switch Dispatch(rtype) {
	default:
		return nil, unsupported(rtype.String(), "no caster for "+rtype.Kind().String())

	case DispatcherScalar:
		return &Descriptor{Dispatcher: DispatcherScalar, Kind: primitive.FromReflectType(rtype), Type: rtype}, nil

	case DispatcherSlice:
		elem, err := describe(rtype.Elem(), customs)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Dispatcher: DispatcherSlice, Elem: elem, Type: rtype}, nil

	case DispatcherSet:
		elem, err := describe(rtype.Key(), customs)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Dispatcher: DispatcherSet, Elem: elem, Type: rtype}, nil

	case DispatcherMap:
		key, err := describe(rtype.Key(), customs)
		if err != nil {
			return nil, err
		}
		value, err := describe(rtype.Elem(), customs)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Dispatcher: DispatcherMap, Key: key, Value: value, Type: rtype}, nil
	}
}

func isEmptyStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

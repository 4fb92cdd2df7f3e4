package primitive

import (
	"math"
	"reflect"
	"strings"
	"time"

	"typed-env/options"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named type over any integer number or string

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	case KindFloat32:
		return 32
	case KindFloat64:
		return 64
	}
}

// Categories returns the conversion categories able to produce a value of the kind.
func (k KindEnum) Categories() options.CategoryEnum {
	switch {
	default:
		return options.CategoryNone
	case k.IsNumber():
		return options.CategoryTextNumber
	case k == KindString:
		return options.CategoryNone // identity needs no category
	case k == KindBool:
		return options.CategoryTextualBool | options.CategoryNumericBool
	case k == KindTime:
		return options.CategoryDatetime | options.CategoryTimestamp
	case k == KindDuration:
		return options.CategoryDuration | options.CategoryNanoseconds | options.CategorySeconds
	case k == KindPrimitiveEnum:
		return options.CategoryEnumString
	}
}

// Supported reports whether the kind can be parsed with the allowed categories.
func (k KindEnum) Supported(allowed options.CategoryEnum) bool {
	if k == KindString {
		return true
	}

	return k.Categories()&allowed != 0
}

var tags = map[KindEnum]string{
	KindInt:      "int",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint:     "uint",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindBool:     "bool",
	KindString:   "string",
	KindTime:     "time",
	KindDuration: "duration",
}

var aliases = map[string]KindEnum{
	"str":     KindString,
	"float":   KindFloat64,
	"integer": KindInt,
	"boolean": KindBool,
}

// Tag returns the textual type tag of the kind, e.g. "int" or "duration".
// Primitive enums have no tag and render as an empty string.
func (k KindEnum) Tag() string {
	return tags[k]
}

// FromTag resolves a textual type tag (case-insensitive) into a kind, returns zero kind on failure.
func FromTag(tag string) KindEnum {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if k, ok := aliases[tag]; ok {
		return k
	}

	for k, t := range tags {
		if t == tag {
			return k
		}
	}

	return 0
}

// ReflectType returns the canonical Go type used to hold a value of the kind.
// Primitive enums have no canonical type, so nil is returned for them.
func (k KindEnum) ReflectType() reflect.Type {
	switch k {
	default:
		return nil
	case KindInt:
		return reflect.TypeFor[int]()
	case KindInt8:
		return reflect.TypeFor[int8]()
	case KindInt16:
		return reflect.TypeFor[int16]()
	case KindInt32:
		return reflect.TypeFor[int32]()
	case KindInt64:
		return reflect.TypeFor[int64]()
	case KindUint:
		return reflect.TypeFor[uint]()
	case KindUint8:
		return reflect.TypeFor[uint8]()
	case KindUint16:
		return reflect.TypeFor[uint16]()
	case KindUint32:
		return reflect.TypeFor[uint32]()
	case KindUint64:
		return reflect.TypeFor[uint64]()
	case KindFloat32:
		return reflect.TypeFor[float32]()
	case KindFloat64:
		return reflect.TypeFor[float64]()
	case KindBool:
		return reflect.TypeFor[bool]()
	case KindString:
		return reflect.TypeFor[string]()
	case KindTime:
		return reflect.TypeFor[time.Time]()
	case KindDuration:
		return reflect.TypeFor[time.Duration]()
	}
}

func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	// check if true primitive type
	switch rtype {
	case reflect.TypeOf(int(0)):
		return KindInt
	case reflect.TypeOf(int8(0)):
		return KindInt8
	case reflect.TypeOf(int16(0)):
		return KindInt16
	case reflect.TypeOf(int32(0)):
		return KindInt32
	case reflect.TypeOf(int64(0)):
		return KindInt64
	case reflect.TypeOf(uint(0)):
		return KindUint
	case reflect.TypeOf(uint8(0)):
		return KindUint8
	case reflect.TypeOf(uint16(0)):
		return KindUint16
	case reflect.TypeOf(uint32(0)):
		return KindUint32
	case reflect.TypeOf(uint64(0)):
		return KindUint64
	case reflect.TypeOf(float32(0)):
		return KindFloat32
	case reflect.TypeOf(float64(0)):
		return KindFloat64
	case reflect.TypeOf(false):
		return KindBool
	case reflect.TypeOf(""):
		return KindString
	case reflect.TypeOf(time.Time{}):
		return KindTime
	case reflect.TypeOf(time.Duration(0)):
		return KindDuration
	}

	// check if it's a primitive enum type
	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
		return KindPrimitiveEnum
	}
}

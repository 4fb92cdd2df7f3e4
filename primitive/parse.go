package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"typed-env/options"
)

var (
	ErrUnsupportedKind = errors.New("kind is not supported by the allowed categories")
	ErrInvalidBool     = errors.New("only strings true/false, yes/no, on/off, 1/0 are allowed for bool")
	ErrInvalidEnum     = errors.New("value is not valid for enum type")
	ErrInvalidDuration = errors.New("seconds out of duration range")
)

type validator interface{ IsValid() bool }

// Parse converts raw into a value of rtype, which must be a primitive type (see FromReflectType).
// Only conversions enabled by allowed are attempted.
func Parse(raw string, rtype reflect.Type, allowed options.CategoryEnum) (reflect.Value, error) {
	kind := FromReflectType(rtype)
	if kind == 0 || !kind.Supported(allowed) {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, rtype)
	}

	switch {
	case kind == KindString:
		return reflect.ValueOf(raw), nil

	case kind.IsInteger():
		return parseInteger(raw, kind, rtype)

	case kind.IsFloat():
		f, err := strconv.ParseFloat(raw, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f).Convert(rtype), nil

	case kind == KindBool:
		b, err := parseBool(raw, allowed)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case kind == KindTime:
		t, err := parseTime(raw, allowed)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t), nil

	case kind == KindDuration:
		d, err := parseDuration(raw, allowed)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil

	case kind == KindPrimitiveEnum:
		return parseEnum(raw, rtype)
	}

	return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, rtype)
}

func parseInteger(raw string, kind KindEnum, rtype reflect.Type) (reflect.Value, error) {
	switch {
	case kind.IsSigned():
		n, err := strconv.ParseInt(raw, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(rtype), nil

	case kind.IsUnsigned():
		n, err := strconv.ParseUint(raw, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(rtype), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, rtype)
}

func parseBool(raw string, allowed options.CategoryEnum) (bool, error) {
	if allowed.Has(options.CategoryTextualBool) {
		switch strings.ToLower(raw) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}

	if allowed.Has(options.CategoryNumericBool) {
		switch raw {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	}

	return false, fmt.Errorf("%w, got: %q", ErrInvalidBool, raw)
}

func parseTime(raw string, allowed options.CategoryEnum) (time.Time, error) {
	var err error

	if allowed.Has(options.CategoryDatetime) {
		var t time.Time
		if t, err = time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, nil
		}
	}

	if allowed.Has(options.CategoryTimestamp) {
		sec, perr := strconv.ParseInt(raw, 10, 64)
		if perr == nil {
			return time.Unix(sec, 0), nil
		}
		if err == nil {
			err = perr
		}
	}

	return time.Time{}, err
}

// parseDuration accepts a Go duration literal, then a bare number. A bare number
// counts seconds when CategorySeconds is enabled and nanoseconds only otherwise,
// so "30" and "30.0" never differ in unit.
func parseDuration(raw string, allowed options.CategoryEnum) (time.Duration, error) {
	var err error

	if allowed.Has(options.CategoryDuration) {
		var d time.Duration
		if d, err = time.ParseDuration(raw); err == nil {
			return d, nil
		}
	}

	switch {
	case allowed.Has(options.CategorySeconds):
		d, perr := parseSeconds(raw)
		if perr == nil {
			return d, nil
		}
		if err == nil || errors.Is(perr, ErrInvalidDuration) {
			err = perr
		}

	case allowed.Has(options.CategoryNanoseconds):
		ns, perr := strconv.ParseInt(raw, 10, 64)
		if perr == nil {
			return time.Duration(ns), nil
		}
		if err == nil {
			err = perr
		}
	}

	return 0, err
}

func parseSeconds(raw string) (time.Duration, error) {
	sec, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	ns := sec * float64(time.Second)
	if ns >= math.MaxInt64 || ns < math.MinInt64 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	return time.Duration(ns), nil
}

func parseEnum(raw string, rtype reflect.Type) (reflect.Value, error) {
	var value reflect.Value

	switch rtype.Kind() {
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, rtype)
	case reflect.String:
		value = reflect.ValueOf(raw).Convert(rtype)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, rtype.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value = reflect.ValueOf(n).Convert(rtype)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, rtype.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value = reflect.ValueOf(n).Convert(rtype)
	}

	if v, ok := value.Interface().(validator); ok && !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w %s: %q", ErrInvalidEnum, rtype.Name(), raw)
	}

	return value, nil
}

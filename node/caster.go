package node

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"typed-env/utils"
)

// Caster is a user supplied function converting a raw string into a custom type.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster struct if it is a valid caster function.
//
// Supports interfaces:
//   - func(src string) (dst Type)
//   - func(src string) (dst Type, bool)
//   - func(src string) (dst Type, error)
//   - func(src string) (dst Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	if fnType.NumIn() != 1 || fnType.NumOut() == 0 {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() != reflect.String {
		return Caster{}, ErrCasterSource
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	alias, name := utils.Unpack2(strings.SplitN(path.Base(fnPC.Name()), ".", 2))

	caster := Caster{
		Src:          src,
		Dst:          fnType.Out(0),
		Name:         name,
		PackageAlias: alias,
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}
		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true
		return caster, nil
	}
}

// String returns the qualified function name, e.g. "netip.ParseAddr".
func (c Caster) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

func (c Caster) call(raw string) (reflect.Value, error) {
	out := c.fn.Call([]reflect.Value{reflect.ValueOf(raw).Convert(c.Src)})

	if c.HasErr {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return reflect.Value{}, err
		}
	}

	if c.HasBool && !out[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrCasterRejected, c)
	}

	return out[0], nil
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	terr := reflect.TypeOf((*error)(nil)).Elem()

	return t.Implements(terr)
}

package node

import (
	"fmt"
	"reflect"
	"strings"

	"typed-env/options"
	"typed-env/primitive"
)

// Converter casts raw strings into values described by a Descriptor.
// It is safe for concurrent use once all custom casters are registered.
type Converter struct {
	opts    options.Options
	customs map[reflect.Type]Caster
}

// NewConverter creates a converter with the given options; zero separators fall back to "," and "=".
func NewConverter(opts options.Options) *Converter {
	return &Converter{opts: opts.Normalized()}
}

// Cast converts raw using a converter with default options.
func Cast(raw string, d *Descriptor) (any, error) {
	return NewConverter(options.Default()).Cast(raw, d)
}

// Options returns the options the converter was created with.
func (c *Converter) Options() options.Options {
	return c.opts
}

// Register adds custom caster functions (see ParseCaster). A registered caster
// takes precedence over the built-in scalar conversions for its destination type.
func (c *Converter) Register(fns ...any) error {
	for _, fn := range fns {
		caster, err := ParseCaster(fn)
		if err != nil {
			return fmt.Errorf("register caster %T: %w", fn, err)
		}

		if c.customs == nil {
			c.customs = make(map[reflect.Type]Caster)
		}

		c.customs[caster.Dst] = caster
	}

	return nil
}

// Describe derives a descriptor from a Go type, honouring registered custom casters.
func (c *Converter) Describe(rtype reflect.Type) (*Descriptor, error) {
	d, err := describe(rtype, c.customs)
	if err != nil {
		return nil, err
	}

	if err = c.Validate(d); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks recursively that every node of the descriptor has a caster.
func (c *Converter) Validate(d *Descriptor) error {
	if d == nil {
		return unsupported("<nil>", "")
	}

	if d.Type == nil {
		return unsupported(d.String(), "no Go type can hold it")
	}

	switch d.Dispatcher {
	default:
		return unsupported(d.String(), "unknown root kind "+d.Dispatcher.String())

	case DispatcherScalar:
		if d.custom != nil {
			return nil
		}

		if d.Kind == 0 || !d.Kind.Supported(c.opts.Categories) {
			return unsupported(d.String(), "no caster for "+d.Kind.String())
		}

		return nil

	case DispatcherSlice, DispatcherSet:
		return c.Validate(d.Elem)

	case DispatcherMap:
		if err := c.Validate(d.Key); err != nil {
			return err
		}

		return c.Validate(d.Value)
	}
}

// Cast converts raw into a value of d.Type.
// Sequences, sets and mappings are split on the item separator and cast element by element.
func (c *Converter) Cast(raw string, d *Descriptor) (any, error) {
	v, err := c.CastValue(raw, d)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

// CastValue is Cast returning a reflect.Value assignable to d.Type.
func (c *Converter) CastValue(raw string, d *Descriptor) (reflect.Value, error) {
	if err := c.Validate(d); err != nil {
		return reflect.Value{}, err
	}

	return c.cast(raw, d)
}

func (c *Converter) cast(raw string, d *Descriptor) (reflect.Value, error) {
	switch d.Dispatcher {
	default:
		return reflect.Value{}, unsupported(d.String(), "unknown root kind "+d.Dispatcher.String())
	case DispatcherScalar:
		return c.castScalar(raw, d)
	case DispatcherSlice:
		return c.castSlice(raw, d)
	case DispatcherSet:
		return c.castSet(raw, d)
	case DispatcherMap:
		return c.castMap(raw, d)
	}
}

func (c *Converter) castScalar(raw string, d *Descriptor) (reflect.Value, error) {
	var (
		v   reflect.Value
		err error
	)

	if d.custom != nil {
		v, err = d.custom.call(raw)
	} else {
		v, err = primitive.Parse(raw, d.Type, c.opts.Categories)
	}

	if err != nil {
		return reflect.Value{}, &ConversionError{Raw: raw, Type: d.String(), Err: err}
	}

	return v, nil
}

func (c *Converter) castSlice(raw string, d *Descriptor) (reflect.Value, error) {
	items := strings.Split(raw, c.opts.ItemSeparator)
	out := reflect.MakeSlice(d.Type, 0, len(items))

	for i, item := range items {
		v, err := c.cast(item, d.Elem)
		if err != nil {
			return reflect.Value{}, &ConversionError{Raw: raw, Type: d.String(), Err: fmt.Errorf("item %d: %w", i, err)}
		}

		out = reflect.Append(out, v)
	}

	return out, nil
}

func (c *Converter) castSet(raw string, d *Descriptor) (reflect.Value, error) {
	items := strings.Split(raw, c.opts.ItemSeparator)
	out := reflect.MakeMapWithSize(d.Type, len(items))
	present := reflect.Zero(d.Type.Elem())

	for i, item := range items {
		v, err := c.cast(item, d.Elem)
		if err != nil {
			return reflect.Value{}, &ConversionError{Raw: raw, Type: d.String(), Err: fmt.Errorf("item %d: %w", i, err)}
		}

		out.SetMapIndex(v, present)
	}

	return out, nil
}

func (c *Converter) castMap(raw string, d *Descriptor) (reflect.Value, error) {
	items := strings.Split(raw, c.opts.ItemSeparator)
	out := reflect.MakeMapWithSize(d.Type, len(items))

	for i, item := range items {
		pair := strings.Split(item, c.opts.PairSeparator)
		if len(pair) != 2 {
			return reflect.Value{}, &ConversionError{Raw: raw, Type: d.String(), Err: fmt.Errorf("item %d: %w, got: %q", i, ErrMalformedPair, item)}
		}

		key, err := c.cast(pair[0], d.Key)
		if err != nil {
			return reflect.Value{}, &ConversionError{Raw: raw, Type: d.String(), Err: fmt.Errorf("key %d: %w", i, err)}
		}

		value, err := c.cast(pair[1], d.Value)
		if err != nil {
			return reflect.Value{}, &ConversionError{Raw: raw, Type: d.String(), Err: fmt.Errorf("value %d: %w", i, err)}
		}

		out.SetMapIndex(key, value) // last duplicate key wins
	}

	return out, nil
}

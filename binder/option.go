package binder

import (
	"typed-env/node"
	"typed-env/options"
)

// UnknownKeyFunc is called for every input key that matches no field.
type UnknownKeyFunc func(line int, key, value string)

// Option configures a bind call.
type Option func(*config)

type config struct {
	opts      options.Options
	casters   []any
	onUnknown UnknownKeyFunc
}

func newConfig(opts []Option) *config {
	cfg := &config{opts: options.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// converter builds the converter used to extract a schema from a Go type.
func (c *config) converter() (*node.Converter, error) {
	conv := node.NewConverter(c.opts)
	if err := conv.Register(c.casters...); err != nil {
		return nil, err
	}

	return conv, nil
}

func (c *config) unknown(line int, key, value string) {
	if c.onUnknown != nil {
		c.onUnknown(line, key, value)
	}
}

// WithOptions sets the caster options used when a schema is extracted from a Go type.
// Explicit schemas carry their own converter and ignore it.
func WithOptions(opts options.Options) Option {
	return func(c *config) { c.opts = opts }
}

// WithCasters registers custom caster functions, see node.ParseCaster.
// Explicit schemas carry their own converter and ignore them.
func WithCasters(fns ...any) Option {
	return func(c *config) { c.casters = append(c.casters, fns...) }
}

// OnUnknownKey installs a hook for ignored keys.
func OnUnknownKey(fn UnknownKeyFunc) Option {
	return func(c *config) { c.onUnknown = fn }
}

package binder

import (
	"fmt"
	"slices"
	"strings"

	"typed-env/schema"
)

// BindTo creates a new T and binds raw "KEY=VALUE" lines onto it.
//
// T must be a struct type. If *T implements schema.Defaulter, SetDefaults runs
// before the schema is extracted, so the values it sets act as defaults.
// On error no record is returned.
func BindTo[T any](raw string, opts ...Option) (*T, error) {
	cfg := newConfig(opts)

	conv, err := cfg.converter()
	if err != nil {
		return nil, err
	}

	target := new(T)
	if d, ok := any(target).(schema.Defaulter); ok {
		d.SetDefaults()
	}

	s, err := schema.Extract(target, conv)
	if err != nil {
		return nil, fmt.Errorf("extract schema of %T: %w", target, err)
	}

	if err = Bind(s, raw, opts...); err != nil {
		return nil, err
	}

	return target, nil
}

// BindEnvironTo creates a new T and binds an environment mapping onto it.
func BindEnvironTo[T any](environ map[string]string, opts ...Option) (*T, error) {
	return BindTo[T](Lines(environ), opts...)
}

// Bind resolves raw against s and assigns every resolved value through the field setters.
// Nothing is assigned when resolving fails.
func Bind(s *schema.Schema, raw string, opts ...Option) error {
	resolved, err := ParseLines(s, raw, opts...)
	if err != nil {
		return err
	}

	assign(s, resolved)

	return nil
}

// BindEnviron is Bind for an environment mapping.
func BindEnviron(s *schema.Schema, environ map[string]string, opts ...Option) error {
	return Bind(s, Lines(environ), opts...)
}

// assign writes resolved values by canonical field name.
func assign(s *schema.Schema, resolved Resolved) {
	for _, f := range s.Fields() {
		if value, ok := resolved[f.Name]; ok {
			f.Set(value)
		}
	}
}

// Lines serializes an environment mapping into "KEY=VALUE" lines, sorted by key.
func Lines(environ map[string]string) string {
	keys := make([]string, 0, len(environ))
	for k := range environ {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(environ[k])
	}

	return sb.String()
}

// Environ converts a process environment, as returned by os.Environ, into a mapping.
// Entries without "=" are dropped, the last duplicate wins.
func Environ(env []string) map[string]string {
	environ := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}

	return environ
}

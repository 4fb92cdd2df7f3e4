package binder

import (
	"iter"
	"strings"

	"typed-env/schema"
)

// Resolved maps canonical field names to typed values; nil marks a field with no value.
type Resolved map[string]any

// line is one non-empty input line split on its first "=".
type line struct {
	num        int // 1-based
	text       string
	key, value string
	malformed  bool
}

// scanLines yields the non-empty lines of raw. A trailing "\r" is dropped first;
// whitespace-only lines are yielded and come out malformed.
func scanLines(raw string) iter.Seq[line] {
	return func(yield func(line) bool) {
		for i, text := range strings.Split(raw, "\n") {
			text = strings.TrimSuffix(text, "\r")
			if text == "" {
				continue
			}

			key, value, ok := strings.Cut(text, "=")
			if !yield(line{num: i + 1, text: text, key: key, value: value, malformed: !ok}) {
				return
			}
		}
	}
}

// ParseLines resolves raw "KEY=VALUE" lines against s.
//
// The mapping is seeded with every field's default. Keys are matched against the
// schema's lookup keys; unknown keys are ignored. A later line for the same field wins.
// A value that fails to cast aborts with a ParseError; if the field has a default,
// the mapping entry is reset to it before returning.
func ParseLines(s *schema.Schema, raw string, opts ...Option) (Resolved, error) {
	cfg := newConfig(opts)
	conv := s.Converter()

	resolved := make(Resolved, s.Len())
	for _, f := range s.Fields() {
		resolved[f.Name] = f.Default
	}

	for l := range scanLines(raw) {
		if l.malformed {
			return nil, &MalformedLineError{Line: l.num, Text: l.text}
		}

		f, ok := s.Lookup(l.key)
		if !ok {
			cfg.unknown(l.num, l.key, l.value)
			continue
		}

		value, err := conv.Cast(l.value, f.Descriptor)
		if err != nil {
			if f.HasDefault {
				resolved[f.Name] = f.Default
			}

			return resolved, &ParseError{Key: l.key, Value: l.value, Field: f.Name, Err: err}
		}

		resolved[f.Name] = value
	}

	return resolved, nil
}

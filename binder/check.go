package binder

import (
	"errors"
	"fmt"

	"typed-env/internal/diagnostic"
	"typed-env/internal/match"
	"typed-env/node"
	"typed-env/schema"
)

// Check reports every problem in raw against s without stopping at the first one.
// Malformed lines and values that fail to cast are errors; unknown keys and keys
// set more than once are warnings. Unknown keys carry a field name suggestion when
// one is a clear match.
func Check(s *schema.Schema, raw string) diagnostic.Diagnostics {
	var (
		diags diagnostic.Diagnostics
		seen  = make(map[string]int)
		names = s.Names()
		conv  = s.Converter()
	)

	for l := range scanLines(raw) {
		if l.malformed {
			diags.AddError(diagnostic.CodeMalformedLine, fmt.Sprintf("%q has no '='", l.text), l.num, "")
			continue
		}

		f, ok := s.Lookup(l.key)
		if !ok {
			var suggestions []string
			if name, ok := match.Suggest(l.key, names); ok {
				suggestions = append(suggestions, name)
			}

			diags.AddWarning(diagnostic.CodeUnknownKey, "key matches no field", l.num, l.key, suggestions...)

			continue
		}

		if prev, dup := seen[f.Name]; dup {
			diags.AddWarning(diagnostic.CodeDuplicateKey, fmt.Sprintf("overrides line %d", prev), l.num, l.key)
		}

		seen[f.Name] = l.num

		if _, err := conv.Cast(l.value, f.Descriptor); err != nil {
			code := diagnostic.CodeConversion
			if errors.Is(err, node.ErrTypeUnsupported) {
				code = diagnostic.CodeUnsupported
			}

			diags.AddError(code, err.Error(), l.num, l.key)
		}
	}

	return diags
}

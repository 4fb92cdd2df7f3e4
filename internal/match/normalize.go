package match

import (
	"strings"
	"unicode"

	"typed-env/options"
)

// LookupKey derives the key used to match raw input keys against field names.
// KeyMatchLower only case-folds, KeyMatchLoose normalizes with NormalizeIdent.
func LookupKey(name string, mode options.KeyMatchEnum) string {
	switch mode {
	default:
		return strings.ToLower(name)
	case options.KeyMatchLoose:
		return NormalizeIdent(name)
	}
}

// NormalizeIdent normalizes an identifier for loose matching.
// The normalization pipeline:
// 1. Tokenize CamelCase.
// 2. Case-fold to lower.
// 3. Strip separators (_, -, ., spaces).
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// EnvName renders an identifier as an environment variable name:
// "DatabaseURL" -> "DATABASE_URL", "httpPort" -> "HTTP_PORT".
func EnvName(s string) string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToUpper(t)
	}

	return strings.Join(tokens, "_")
}

// TokenizeIdent splits an identifier into normalized lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase, camelCase or snake_case string into tokens.
// Examples:
//   - "DatabaseURL" -> ["Database", "URL"]
//   - "httpPort" -> ["http", "Port"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "LOG_LEVEL" -> ["LOG", "LEVEL"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "portNumber": lower to upper transition
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": end of an acronym, next rune is lowercase
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

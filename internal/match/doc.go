// Package match provides key normalization, Levenshtein distance calculation
// and candidate ranking for matching raw input keys against field names.
//
// Key functions:
//   - LookupKey: derives the lookup key of a field name or raw input key
//   - NormalizeIdent: normalizes identifiers for loose matching
//   - EnvName: renders a field name as a SCREAMING_SNAKE_CASE variable name
//   - Levenshtein: computes edit distance between strings
//   - Rank, Suggest: rank field names against an unknown key for "did you mean" hints
package match

// Package diagnostic provides structured errors and warnings for env input
// checked against a schema.
//
// Key capabilities:
//   - Malformed line reports with line numbers
//   - Conversion failures per key
//   - Unknown key warnings with "did you mean" suggestions
package diagnostic

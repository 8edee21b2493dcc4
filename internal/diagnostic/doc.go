// Package diagnostic provides structured, span-anchored diagnostics for the
// accessor generator.
//
// Diagnostics are data: parsers and the classifier return them wrapped in an
// *Error, and batch callers collect them in a Diagnostics value instead of
// stopping at the first failure.
//
// Key capabilities:
//   - Stable codes for every grammar and classification failure
//   - Spans relative to the expression text, anchored to the file the
//     expression was declared in (Go directive, YAML or HCL mapping file)
//   - "Did you mean" suggestions
//   - Caret rendering of the offending expression
package diagnostic

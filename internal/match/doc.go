// Package match finds the nearest known word for a misspelled one. It backs
// the "did you mean" suggestions attached to diagnostics, such as
// `as scaler` or an unknown `//accessor:feild` directive.
package match

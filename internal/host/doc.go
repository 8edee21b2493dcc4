// Package host describes the calling convention generated accessors follow
// and spells declared types as Go types.
//
// A Contract is plain configuration: the receiver name, the execution
// context parameter, and text/template strings for the guard, the result,
// the field access expression and the association unwrap call. Compile checks the templates once and
// returns a Host that the generator uses for every method.
//
// Template data:
//
//	Guard   {{.Leaf}}   the leaf type, rendered as Go
//	Result  {{.Type}}   the declared type, rendered as Go
//	Access  {{.Field}}  the receiver selector, e.g. r.other.bar
//	Unwrap  {{.Field}}  the receiver selector, e.g. r.country
//	Wrappers {{.Elem}} {{.Key}} {{.Args}}
package host

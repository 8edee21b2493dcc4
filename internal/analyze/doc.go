// Package analyze discovers accessor declarations written as Go comments.
//
// Packages are loaded with golang.org/x/tools/go/packages and only their
// syntax is inspected. A struct type opts in with directive comments in its
// doc block:
//
//	//accessor:field other.bar -> Option<i32>
//	//accessor:association country -> Country
//	type Query struct { ... }
//
// Each directive becomes a mapping.Decl whose origin points at the first byte
// of the expression, so diagnostics land on the comment itself. Directives are
// read from the type spec's doc, or from the enclosing declaration's doc when
// it declares a single type.
package analyze

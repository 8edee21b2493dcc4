// Package typeexpr lexes and parses the type expressions written on the
// right-hand side of accessor invocations.
//
// The notation is the one GraphQL schema helpers use for declared field
// types:
//
//	String
//	Option<i32>
//	Vec<&User>
//	HashMap<String, Vec<models::User>>
//	Fn(i32) -> bool
//
// Parsing is purely syntactic. Shapes that the classifier later rejects
// (empty argument lists, call-style arguments, tuples, lifetimes) still parse
// so they can be reported with an exact span.
//
// The token stream is exported so the invocation grammars in package mapping
// can share the lexer and hand over to ParseType after the `->` token.
package typeexpr

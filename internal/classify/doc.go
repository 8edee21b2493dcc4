// Package classify reduces a type expression to its leaf type and decides
// whether an accessor returning it is a scalar accessor or an object
// accessor that needs a traversal guard.
//
// Leaf resolution unwraps generic and reference shells:
//
//	Option<Vec<Option<i32>>>  -> i32
//	Vec<&User>                -> User
//	HashMap<String, Country>  -> Country (only the last argument is inspected)
//
// The scalar test is a closed allowlist keyed by the leaf's identifier:
// String, i32, f64, bool and ID. Everything else is an object type. The
// field grammar's `as scalar` clause is the only way around the allowlist and
// is applied by the caller, not here.
package classify

// Package gen expands accessor declarations into Go methods.
//
// Each declaration becomes one method on its object type:
//
//	foo -> String                func (r *Query) field_foo(_ *resolve.Executor) (*string, error)
//	users -> Vec<User>           func (r *Query) field_users(_ *resolve.Executor, _ *resolve.Trail[User]) (*[]User, error)
//	country -> Country           func (r *Query) field_country(executor *resolve.Executor, trail *resolve.Trail[Country]) (*Country, error)
//
// Scalar fields take only the executor. Object fields also take a traversal
// guard parameterised by the leaf type. Associations always take the guard
// and return the loaded value through the host's unwrap call.
//
// Generation uses text/template for the file skeleton and gofumpt for
// formatting. A declaration that cannot be expanded is reported as a
// diagnostic and skipped; the rest of the file is still generated.
package gen

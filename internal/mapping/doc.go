// Package mapping parses accessor declarations and the files that carry them.
//
// Two invocation grammars are supported:
//
//	key.path -> Type [as scalar]   (field)
//	name -> Type                   (association)
//
// Declarations are grouped per object type in a File. Files come from YAML
// or HCL mapping documents, or from directive comments collected by the
// analyze package. Every declaration remembers its Origin so diagnostics can
// point back into the file it was written in.
//
// # YAML
//
//	version: "1"
//	package: models
//	objects:
//	  - type: Query
//	    fields:
//	      - foo -> String
//	      - other.bar -> Option<i32>
//	      - path: cursor        # structured form
//	        type: Cursor
//	        scalar: true
//	    associations:
//	      - country -> Country
//
// # HCL
//
//	version = "1"
//	package = "models"
//
//	object "Query" {
//	  fields       = ["foo -> String", "other.bar -> Option<i32>"]
//	  associations = ["country -> Country"]
//	}
//
// Parsing a declaration never affects its neighbours: Object.Invocations
// returns every invocation that parsed and a diagnostic for every one that
// did not.
package mapping

// Package main provides the CLI entrypoint for accessor-generator.
//
// accessor-generator reads accessor declarations from Go directive comments
// or from YAML/HCL mapping files and emits one accessor method per
// declaration:
//
//	accessor-generator gen ./models
//	accessor-generator gen --mapping accessors.yaml --dry-run
//	accessor-generator check ./...
//	accessor-generator expand Query 'other.bar -> Option<i32>'
//	accessor-generator classify 'Vec<&User>' 'Option<i32>'
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

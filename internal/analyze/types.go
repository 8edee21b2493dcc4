package analyze

import (
	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
)

// DirectivePrefix starts every accessor directive comment.
const DirectivePrefix = "//accessor:"

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "accessor-generator/examples/basic"
	Name    string // e.g., "Query"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// DirectiveKind selects the grammar a directive's expression is parsed with.
type DirectiveKind int

const (
	DirectiveUnknown     DirectiveKind = iota
	DirectiveField                     // //accessor:field key.path -> Type
	DirectiveAssociation               // //accessor:association name -> Type
)

var directiveKinds = map[string]DirectiveKind{
	"field":       DirectiveField,
	"association": DirectiveAssociation,
}

// DirectiveNames returns the recognised directive names in a stable order.
func DirectiveNames() []string {
	return []string{"field", "association"}
}

// String returns the directive name as written after the prefix.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveField:
		return "field"
	case DirectiveAssociation:
		return "association"
	default:
		return common.UnknownStr
	}
}

// Directive is one recognised accessor comment.
type Directive struct {
	Kind DirectiveKind
	// Type is the struct the comment is attached to.
	Type TypeID
	// TypePos is where the struct's name is declared.
	TypePos diagnostic.Origin
	// Decl holds the expression after the directive name, anchored to its
	// first byte.
	Decl mapping.Decl
}

// Package is a loaded Go package and the declarations found in it.
type Package struct {
	Path string
	Name string
	Dir  string

	// Directives in source order.
	Directives []Directive

	// Mapping holds the directives grouped per struct, ready for generation.
	Mapping *mapping.File
}

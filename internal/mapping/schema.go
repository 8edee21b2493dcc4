package mapping

import (
	"fmt"

	"accessor-generator/internal/diagnostic"
)

// File is the root of a mapping document.
type File struct {
	// Version of the mapping schema.
	Version string `yaml:"version,omitempty"`

	// Package overrides the package clause of the generated file. It
	// defaults to the package the objects live in.
	Package string `yaml:"package,omitempty"`

	// Objects lists the types that receive accessor methods.
	Objects []Object `yaml:"objects"`

	// Path is the file the declarations were read from. Set by the loaders.
	Path string `yaml:"-"`

	// Dir is where generated code for this file belongs. Set by the loaders.
	Dir string `yaml:"-"`
}

// Object collects the declarations for one receiver type.
type Object struct {
	// Type is the receiver type name, e.g. "Query".
	Type string `yaml:"type"`

	Fields       []Decl `yaml:"fields,omitempty"`
	Associations []Decl `yaml:"associations,omitempty"`

	Origin diagnostic.Origin `yaml:"-"`
}

// Decl is one unparsed declaration and the place it was written.
type Decl struct {
	Text   string
	Origin diagnostic.Origin
}

// Field parses d as a field declaration. Errors are anchored to d's origin.
func (d Decl) Field() (*FieldMapping, error) {
	f, err := ParseField(d.Text)
	if err != nil {
		return nil, d.anchor(err)
	}

	f.Origin = d.Origin

	return f, nil
}

// Association parses d as an association declaration. Errors are anchored
// to d's origin.
func (d Decl) Association() (*AssociationMapping, error) {
	a, err := ParseAssociation(d.Text)
	if err != nil {
		return nil, d.anchor(err)
	}

	a.Origin = d.Origin

	return a, nil
}

func (d Decl) anchor(err error) error {
	if de, ok := diagnostic.AsError(err); ok {
		return de.At(d.Origin, d.Text, "")
	}

	return err
}

// Invocations parses every declaration of o, fields first, in declaration
// order. A declaration that fails to parse is reported and skipped; the
// others are still returned. Two declarations expanding to the same method
// name produce a DuplicateMethod error on the later one.
func (o *Object) Invocations() ([]Invocation, diagnostic.Diagnostics) {
	var (
		out   []Invocation
		diags diagnostic.Diagnostics
		seen  = map[string]Invocation{}
	)

	add := func(inv Invocation, err error) {
		if err != nil {
			if de, ok := diagnostic.AsError(err); ok {
				de.Object = o.Type
			}

			diags.AddErr(err)

			return
		}

		name := inv.MethodName()
		if prev, dup := seen[name]; dup {
			de := diagnostic.Errorf(diagnostic.CodeDuplicateMethod, diagnostic.NewSpan(0, len(inv.Expression())),
				"method `%s` is already generated by `%s`", name, prev.Expression())
			de = de.At(inv.Position(), inv.Expression(), o.Type)

			if p := prev.Position(); p.Line > 0 {
				de = de.WithSuggestion(fmt.Sprintf("first declared at %s", p))
			}

			diags.Add(de.Diagnostic)

			return
		}

		seen[name] = inv
		out = append(out, inv)
	}

	for _, d := range o.Fields {
		f, err := d.Field()
		if err != nil {
			add(nil, err)
			continue
		}

		add(f, nil)
	}

	for _, d := range o.Associations {
		a, err := d.Association()
		if err != nil {
			add(nil, err)
			continue
		}

		add(a, nil)
	}

	return out, diags
}

// Lookup returns the object declaring typ.
func (f *File) Lookup(typ string) (*Object, bool) {
	for i := range f.Objects {
		if f.Objects[i].Type == typ {
			return &f.Objects[i], true
		}
	}

	return nil, false
}

// Merge appends other's objects. Declarations for a type already present
// are added to the existing object.
func (f *File) Merge(other *File) {
	for _, o := range other.Objects {
		if existing, ok := f.Lookup(o.Type); ok {
			existing.Fields = append(existing.Fields, o.Fields...)
			existing.Associations = append(existing.Associations, o.Associations...)

			continue
		}

		f.Objects = append(f.Objects, o)
	}
}

// setFilename stamps filename on every origin in f.
func (f *File) setFilename(filename string) {
	for i := range f.Objects {
		o := &f.Objects[i]
		o.Origin.Filename = filename

		for j := range o.Fields {
			o.Fields[j].Origin.Filename = filename
		}

		for j := range o.Associations {
			o.Associations[j].Origin.Filename = filename
		}
	}
}

package mapping

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"accessor-generator/internal/diagnostic"
)

// hclMappingFile is the decoding target for the top level of an HCL file.
type hclMappingFile struct {
	Version string       `hcl:"version,optional"`
	Package string       `hcl:"package,optional"`
	Objects []*hclObject `hcl:"object,block"`
}

type hclObject struct {
	Type         string         `hcl:"type,label"`
	Fields       hcl.Expression `hcl:"fields,optional"`
	Associations hcl.Expression `hcl:"associations,optional"`
	DeclRange    hcl.Range      `hcl:",def_range"`
}

// ParseHCL parses HCL data into a File. filename is used in diagnostics.
func ParseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse mapping HCL: %w", diags)
	}

	var parsed hclMappingFile

	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode mapping HCL: %w", diags)
	}

	f := &File{Version: parsed.Version, Package: parsed.Package}

	for _, ho := range parsed.Objects {
		o := Object{
			Type:   ho.Type,
			Origin: diagnostic.Origin{Line: ho.DeclRange.Start.Line, Column: ho.DeclRange.Start.Column},
		}

		var declDiags hcl.Diagnostics

		o.Fields, declDiags = hclDecls(ho.Fields, data)
		diags = append(diags, declDiags...)

		o.Associations, declDiags = hclDecls(ho.Associations, data)
		diags = append(diags, declDiags...)

		f.Objects = append(f.Objects, o)
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode mapping HCL: %w", diags)
	}

	applyDefaults(f)

	return f, nil
}

// hclDecls reads a list of string literals. A missing attribute decodes as
// null and yields no declarations.
func hclDecls(expr hcl.Expression, src []byte) ([]Decl, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	if val.IsNull() {
		return nil, nil
	}

	items, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diags
	}

	decls := make([]Decl, 0, len(items))

	for _, item := range items {
		v, itemDiags := item.Value(nil)
		diags = append(diags, itemDiags...)

		if itemDiags.HasErrors() {
			continue
		}

		if !v.IsKnown() || v.IsNull() || v.Type() != cty.String {
			rng := item.Range()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid declaration",
				Detail:   "Each declaration must be a string such as \"foo -> String\".",
				Subject:  &rng,
			})

			continue
		}

		decls = append(decls, Decl{Text: v.AsString(), Origin: hclOrigin(item.Range(), src)})
	}

	return decls, diags
}

// hclOrigin returns the position of the first character inside a quoted
// string literal.
func hclOrigin(rng hcl.Range, src []byte) diagnostic.Origin {
	col := rng.Start.Column
	if rng.Start.Byte < len(src) && src[rng.Start.Byte] == '"' {
		col++
	}

	return diagnostic.Origin{Filename: rng.Filename, Line: rng.Start.Line, Column: col}
}

package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"unicode"

	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
	"accessor-generator/internal/match"
)

// ScanFile returns the directives attached to the struct types of file, in
// source order. Unknown directive names and directives on non-struct types
// are reported; the remaining directives are still returned.
func ScanFile(fset *token.FileSet, file *ast.File) ([]Directive, diagnostic.Diagnostics) {
	var (
		out   []Directive
		diags diagnostic.Diagnostics
	)

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && common.IsSingle(gd.Specs) {
				doc = gd.Doc
			}

			if doc == nil {
				continue
			}

			typePos := origin(fset.Position(ts.Name.Pos()), 0)

			for _, c := range doc.List {
				d, err := parseDirective(fset, c)
				if err != nil {
					err.Object = ts.Name.Name
					diags.Add(err.Diagnostic)

					continue
				}

				if d == nil {
					continue
				}

				if _, isStruct := ts.Type.(*ast.StructType); !isStruct {
					diags.AddWarning(diagnostic.CodeInvalidMapping,
						fmt.Sprintf("accessor directives are only read on struct types; `%s` is ignored", ts.Name.Name),
						diagnostic.Span{}.Within(d.Decl.Origin))

					continue
				}

				if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
					diags.AddWarning(diagnostic.CodeInvalidMapping,
						fmt.Sprintf("generic type `%s` cannot receive accessors; directive ignored", ts.Name.Name),
						diagnostic.Span{}.Within(d.Decl.Origin))

					continue
				}

				d.Type = TypeID{Name: ts.Name.Name}
				d.TypePos = typePos
				out = append(out, *d)
			}
		}
	}

	return out, diags
}

// parseDirective splits one comment into a directive. It returns nil, nil
// for comments that are not accessor directives.
func parseDirective(fset *token.FileSet, c *ast.Comment) (*Directive, *diagnostic.Error) {
	rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
	if !ok {
		return nil, nil
	}

	pos := fset.Position(c.Slash)

	nameEnd := strings.IndexFunc(rest, unicode.IsSpace)
	if nameEnd < 0 {
		nameEnd = len(rest)
	}

	name := rest[:nameEnd]

	kind, known := directiveKinds[name]
	if !known {
		err := diagnostic.Errorf(diagnostic.CodeUnknownDirective, diagnostic.NewSpan(0, len(name)),
			"unknown directive `accessor:%s`", name)
		err = err.At(origin(pos, len(DirectivePrefix)), strings.TrimRightFunc(rest, unicode.IsSpace), "")

		if s, ok := match.Suggest(name, DirectiveNames()); ok {
			err = err.WithSuggestion(fmt.Sprintf("did you mean `accessor:%s`?", s))
		}

		return nil, err
	}

	expr := strings.TrimLeftFunc(rest[nameEnd:], unicode.IsSpace)
	offset := len(DirectivePrefix) + len(rest) - len(expr)

	return &Directive{
		Kind: kind,
		Decl: mapping.Decl{
			Text:   strings.TrimRightFunc(expr, unicode.IsSpace),
			Origin: origin(pos, offset),
		},
	}, nil
}

// origin returns the position offset bytes to the right of pos.
func origin(pos token.Position, offset int) diagnostic.Origin {
	return diagnostic.Origin{
		Filename: pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column + offset,
	}
}

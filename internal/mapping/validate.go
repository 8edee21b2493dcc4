package mapping

import (
	"fmt"

	"accessor-generator/internal/diagnostic"
)

// Validate checks the structure of f: schema version, package and type
// names, and duplicate objects. Declarations themselves are checked when
// they are parsed, see Object.Invocations.
func Validate(f *File) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	if f == nil {
		diags.AddError(diagnostic.CodeInvalidMapping, "mapping file is nil", diagnostic.Span{})
		return diags
	}

	if f.Version != CurrentVersion {
		diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        diagnostic.CodeInvalidMapping,
			Message:     fmt.Sprintf("unsupported mapping version %q", f.Version),
			Span:        diagnostic.Span{Filename: f.Path},
			Suggestions: []string{fmt.Sprintf("set version to %q", CurrentVersion)},
		})
	}

	if f.Package != "" && !isValidIdent(f.Package) {
		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeInvalidMapping,
			Message:  fmt.Sprintf("package %q is not a valid Go identifier", f.Package),
			Span:     diagnostic.Span{Filename: f.Path},
		})
	}

	first := map[string]*Object{}

	for i := range f.Objects {
		validateObject(&f.Objects[i], first, diags)
	}

	return diags
}

func validateObject(o *Object, first map[string]*Object, diags *diagnostic.Diagnostics) {
	span := diagnostic.NewSpan(0, len(o.Type)).Within(o.Origin)

	if !isValidIdent(o.Type) {
		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeInvalidMapping,
			Message:  fmt.Sprintf("object type %q is not a valid Go identifier", o.Type),
			Span:     span,
			Object:   o.Type,
		})

		return
	}

	if prev, dup := first[o.Type]; dup {
		d := diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeInvalidMapping,
			Message:  fmt.Sprintf("object %s is declared more than once", o.Type),
			Span:     span,
			Object:   o.Type,
		}

		if prev.Origin.Line > 0 {
			d.Suggestions = []string{fmt.Sprintf("merge it into the declaration at %s", prev.Origin)}
		}

		diags.Add(d)

		return
	}

	first[o.Type] = o

	if len(o.Fields) == 0 && len(o.Associations) == 0 {
		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeInvalidMapping,
			Message:  fmt.Sprintf("object %s declares no fields or associations", o.Type),
			Span:     span,
			Object:   o.Type,
		})
	}
}

package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"accessor-generator/internal/common"
)

// Code is a stable identifier for a kind of diagnostic.
type Code string

// Grammar errors.
const (
	CodeMalformedKeyPath        Code = "MalformedKeyPath"
	CodeExpectedArrow           Code = "ExpectedArrow"
	CodeUnexpectedScalarKeyword Code = "UnexpectedScalarKeyword"
	CodeMalformedTypeExpression Code = "MalformedTypeExpression"
	CodeUnexpectedToken         Code = "UnexpectedToken"
)

// Classification errors.
const (
	CodeEmptyGenericArguments    Code = "EmptyGenericArguments"
	CodeUnsupportedArgumentShape Code = "UnsupportedArgumentShape"
	CodeUnsupportedTypeShape     Code = "UnsupportedTypeShape"
)

// Generation and declaration errors.
const (
	CodeUnrenderableType Code = "UnrenderableType"
	CodeDuplicateMethod  Code = "DuplicateMethod"
	CodeUnknownDirective Code = "UnknownDirective"
	CodeInvalidMapping   Code = "InvalidMapping"
	CodeInvalidHost      Code = "InvalidHost"
)

// Diagnostics holds all diagnostic information from a generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code identifies the kind of failure.
	Code Code
	// Message is the human-readable description.
	Message string
	// Span locates the offending tokens.
	Span Span
	// Object is the type the invocation belongs to (if any).
	Object string
	// Expr is the invocation text the span points into (if any).
	Expr string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends d to the bucket matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, message string, span Span) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Span: span})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, message string, span Span) {
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Span: span})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, message string, span Span) {
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, Span: span})
}

// AddErr records err as an error diagnostic. Errors carrying a Diagnostic
// keep their code and span; anything else becomes a bare message.
func (d *Diagnostics) AddErr(err error) {
	if err == nil {
		return
	}

	var de *Error
	if errors.As(err, &de) {
		diag := de.Diagnostic
		diag.Severity = DiagnosticError
		d.Add(diag)

		return
	}

	d.Add(Diagnostic{Severity: DiagnosticError, Message: err.Error()})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Span.IsAnchored() {
		prefix = append(prefix, d.Span.String())
	}

	if d.Object != "" {
		prefix = append(prefix, "["+d.Object+"]")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

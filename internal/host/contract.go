package host

import (
	"fmt"
	"go/scanner"
	"go/token"
	"maps"
	"slices"
	"strings"
	"text/template"

	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
)

// RuntimeImport is the package providing the default executor, trail and
// ID types.
const RuntimeImport = "accessor-generator/resolve"

// Contract is the calling convention of the generated methods.
type Contract struct {
	Receiver string            `mapstructure:"receiver" yaml:"receiver"`
	Executor string            `mapstructure:"executor" yaml:"executor"`
	Guard    string            `mapstructure:"guard"    yaml:"guard"`
	Result   string            `mapstructure:"result"   yaml:"result"`
	Access   string            `mapstructure:"access"   yaml:"access"`
	Unwrap   string            `mapstructure:"unwrap"   yaml:"unwrap"`
	Imports  []Import          `mapstructure:"imports"  yaml:"imports"`
	Scalars  map[string]string `mapstructure:"scalars"  yaml:"scalars"`
	Wrappers map[string]string `mapstructure:"wrappers" yaml:"wrappers"`
}

// Import is a package the contract's types may refer to. It is added to a
// generated file only when the file uses it.
type Import struct {
	Alias string `mapstructure:"alias" yaml:"alias,omitempty"`
	Path  string `mapstructure:"path"  yaml:"path"`
}

// Name returns the identifier the import is referred to by.
func (i Import) Name() string {
	if i.Alias != "" {
		return i.Alias
	}

	return common.PkgAlias(i.Path)
}

// Default returns the contract targeting the resolve and association
// runtime packages of this module.
func Default() Contract {
	return Contract{
		Receiver: "r",
		Executor: "*resolve.Executor",
		Guard:    "*resolve.Trail[{{.Leaf}}]",
		Result:   "(*{{.Type}}, error)",
		Access:   "&{{.Field}}, nil",
		Unwrap:   "{{.Field}}.TryUnwrap()",
		Imports:  []Import{{Path: RuntimeImport}},
		Scalars: map[string]string{
			"String": "string",
			"i32":    "int32",
			"f64":    "float64",
			"bool":   "bool",
			"ID":     "resolve.ID",
		},
		Wrappers: map[string]string{
			"Vec":      "[]{{.Elem}}",
			"Option":   "*{{.Elem}}",
			"Box":      "*{{.Elem}}",
			"HashMap":  "map[{{.Key}}]{{.Elem}}",
			"BTreeMap": "map[{{.Key}}]{{.Elem}}",
		},
	}
}

// WithDefaults fills empty fields of c from Default. Scalars and Wrappers
// are merged entry by entry, c's entries winning.
func (c Contract) WithDefaults() Contract {
	def := Default()

	if c.Receiver == "" {
		c.Receiver = def.Receiver
	}

	if c.Executor == "" {
		c.Executor = def.Executor
	}

	if c.Guard == "" {
		c.Guard = def.Guard
	}

	if c.Result == "" {
		c.Result = def.Result
	}

	if c.Access == "" {
		c.Access = def.Access
	}

	if c.Unwrap == "" {
		c.Unwrap = def.Unwrap
	}

	if common.IsEmpty(c.Imports) {
		c.Imports = def.Imports
	}

	c.Scalars = mergeMaps(def.Scalars, c.Scalars)
	c.Wrappers = mergeMaps(def.Wrappers, c.Wrappers)

	return c
}

func mergeMaps(base, override map[string]string) map[string]string {
	out := maps.Clone(base)
	maps.Copy(out, override)

	return out
}

// Host is a compiled contract.
type Host struct {
	contract Contract
	guard    *template.Template
	result   *template.Template
	access   *template.Template
	unwrap   *template.Template
	wrappers map[string]*template.Template
	// keyed holds the wrappers whose template reads .Key.
	keyed map[string]bool
}

// Validate compiles c and discards the result.
func (c Contract) Validate() error {
	_, err := c.Compile()
	return err
}

// Compile checks the receiver name and parses every template. Errors are
// *diagnostic.Error values with CodeInvalidHost.
func (c Contract) Compile() (*Host, error) {
	if !mapping.IsValidIdent(c.Receiver) {
		return nil, invalidHost("receiver %q is not a valid Go identifier", c.Receiver)
	}

	if strings.TrimSpace(c.Executor) == "" {
		return nil, invalidHost("executor type is empty")
	}

	for _, imp := range c.Imports {
		if imp.Path == "" {
			return nil, invalidHost("import with alias %q has no path", imp.Alias)
		}

		if imp.Alias != "" && !token.IsIdentifier(imp.Alias) {
			return nil, invalidHost("import alias %q is not a valid Go identifier", imp.Alias)
		}
	}

	h := &Host{
		contract: c,
		wrappers: make(map[string]*template.Template, len(c.Wrappers)),
		keyed:    make(map[string]bool),
	}

	var err error

	if h.guard, err = parseTemplate("guard", c.Guard); err != nil {
		return nil, err
	}

	if h.result, err = parseTemplate("result", c.Result); err != nil {
		return nil, err
	}

	if h.access, err = parseTemplate("access", c.Access); err != nil {
		return nil, err
	}

	if h.unwrap, err = parseTemplate("unwrap", c.Unwrap); err != nil {
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(c.Wrappers)) {
		tmpl, err := parseTemplate("wrapper "+name, c.Wrappers[name])
		if err != nil {
			return nil, err
		}

		h.wrappers[name] = tmpl
	}

	if err := h.dryRun(); err != nil {
		return nil, err
	}

	return h, nil
}

// dryRun executes every template once so references to unknown data
// fields fail at compile time rather than per method.
func (h *Host) dryRun() error {
	if _, err := h.Guard("T"); err != nil {
		return err
	}

	if _, err := h.Result("T"); err != nil {
		return err
	}

	if _, err := h.Access("r.f"); err != nil {
		return err
	}

	if _, err := h.Unwrap("r.f"); err != nil {
		return err
	}

	for name, tmpl := range h.wrappers {
		withKey, err := execute(tmpl, wrapperData{Elem: "E", Key: "K", Args: "K, E"})
		if err != nil {
			return err
		}

		withoutKey, err := execute(tmpl, wrapperData{Elem: "E", Args: "K, E"})
		if err != nil {
			return err
		}

		h.keyed[name] = withKey != withoutKey
	}

	return nil
}

// MustCompile is like Compile but panics on error. It is meant for
// contracts known to be valid, such as Default().
func (c Contract) MustCompile() *Host {
	h, err := c.Compile()
	if err != nil {
		panic(err)
	}

	return h
}

func parseTemplate(name, text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalidHost("%s template is empty", name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, invalidHost("%s template: %v", name, err)
	}

	return tmpl, nil
}

func invalidHost(format string, args ...any) *diagnostic.Error {
	return diagnostic.Errorf(diagnostic.CodeInvalidHost, diagnostic.Span{}, format, args...)
}

// Contract returns the contract h was compiled from.
func (h *Host) Contract() Contract {
	return h.contract
}

// Receiver returns the receiver name.
func (h *Host) Receiver() string {
	return h.contract.Receiver
}

// Executor returns the execution context parameter type.
func (h *Host) Executor() string {
	return h.contract.Executor
}

// Guard renders the traversal guard type for leaf.
func (h *Host) Guard(leaf string) (string, error) {
	return execute(h.guard, struct{ Leaf string }{leaf})
}

// Result renders the return type list for a declared type.
func (h *Host) Result(typ string) (string, error) {
	return execute(h.result, struct{ Type string }{typ})
}

// Access renders the values a field accessor returns.
func (h *Host) Access(field string) (string, error) {
	return execute(h.access, struct{ Field string }{field})
}

// Unwrap renders the expression that extracts a loaded association.
func (h *Host) Unwrap(field string) (string, error) {
	return execute(h.unwrap, struct{ Field string }{field})
}

// UsedImports returns the contract imports referenced in code.
func (h *Host) UsedImports(code string) []Import {
	qualified := qualifiers(code)

	var used []Import

	for _, imp := range h.contract.Imports {
		if qualified[imp.Name()] {
			used = append(used, imp)
		}
	}

	return used
}

// qualifiers collects the identifiers that start a selector the way a
// package name does: resolve in resolve.ID, but not in r.resolve.ID or
// unresolve.ID.
func qualifiers(code string) map[string]bool {
	src := []byte(code)
	fset := token.NewFileSet()

	var s scanner.Scanner
	s.Init(fset.AddFile("", fset.Base(), len(src)), src, nil, 0)

	out := map[string]bool{}

	var (
		before, last token.Token
		ident        string
	)

	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			return out
		}

		if tok == token.PERIOD && last == token.IDENT && before != token.PERIOD {
			out[ident] = true
		}

		if tok == token.IDENT {
			ident = lit
		}

		before, last = last, tok
	}
}

func execute(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder

	if err := tmpl.Execute(&sb, data); err != nil {
		return "", invalidHost("%v", err)
	}

	return sb.String(), nil
}

// String returns a one-line summary, used in debug logs.
func (c Contract) String() string {
	return fmt.Sprintf("receiver=%s executor=%s guard=%s result=%s access=%s unwrap=%s",
		c.Receiver, c.Executor, c.Guard, c.Result, c.Access, c.Unwrap)
}

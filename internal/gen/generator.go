package gen

import (
	"bytes"
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"text/template"

	"go.uber.org/zap"
	"mvdan.cc/gofumpt/format"

	"accessor-generator/internal/classify"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/host"
	"accessor-generator/internal/logging"
	"accessor-generator/internal/mapping"
)

// DefaultFilename is the name of the generated file in each package.
const DefaultFilename = "accessors_gen.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is used when a mapping file does not name its package.
	PackageName string
	// OutputDir overrides the directory of every generated file.
	OutputDir string
	// Filename is the name of the generated file.
	Filename string
	// GenerateComments adds a comment naming the declaration above each method.
	GenerateComments bool
	// Host is the calling convention of the generated methods.
	Host host.Contract
	// Classify tunes leaf resolution.
	Classify classify.Options
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "accessors",
		Filename:         DefaultFilename,
		GenerateComments: true,
		Host:             host.Default(),
	}
}

// Generator expands declarations into methods. It holds only immutable
// configuration and may be shared between goroutines.
type Generator struct {
	config GeneratorConfig
	host   *host.Host
	log    *zap.Logger
}

// Option customises a Generator.
type Option func(*Generator)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.log = logging.OrNop(l)
	}
}

// NewGenerator creates a Generator. It fails if the host contract does not
// compile.
func NewGenerator(config GeneratorConfig, opts ...Option) (*Generator, error) {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	h, err := config.Host.WithDefaults().Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling host contract: %w", err)
	}

	g := &Generator{config: config, host: h, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}

	g.log.Debug("generator ready", zap.Stringer("host", h.Contract()),
		zap.Bool("strict_arity", config.Classify.StrictArity))

	return g, nil
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "accessors_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Methods are the methods the file contains, in output order.
	Methods []*Method
}

// Path returns Dir joined with Filename.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Result is the outcome of generating one mapping file.
type Result struct {
	// File is nil when no method could be generated.
	File        *GeneratedFile
	Diagnostics diagnostic.Diagnostics
}

// Generate validates f, expands every declaration, and renders one file.
// Declaration problems are returned as diagnostics; the returned error is
// reserved for failures to produce the file itself.
func (g *Generator) Generate(f *mapping.File) (*Result, error) {
	res := &Result{}

	res.Diagnostics.Merge(*mapping.Validate(f))
	if f == nil {
		return res, nil
	}

	objects := slices.Clone(f.Objects)
	slices.SortStableFunc(objects, func(a, b mapping.Object) int {
		return cmp.Compare(a.Type, b.Type)
	})

	var methods []*Method

	for i := range objects {
		o := &objects[i]
		if !mapping.IsValidIdent(o.Type) {
			continue
		}

		invs, diags := o.Invocations()
		res.Diagnostics.Merge(diags)

		for _, inv := range invs {
			m, err := g.Expand(o.Type, inv)
			if err != nil {
				res.Diagnostics.AddErr(err)
				g.log.Debug("declaration skipped", zap.String("object", o.Type),
					zap.String("expr", inv.Expression()), zap.Error(err))

				continue
			}

			g.log.Debug("expanded", zap.String("object", o.Type), zap.String("method", m.Name),
				zap.Stringer("class", m.Class))

			methods = append(methods, m)
		}
	}

	if len(methods) == 0 {
		return res, nil
	}

	file, err := g.renderFile(g.packageName(f), g.outputDir(f), methods)
	if err != nil {
		return res, err
	}

	res.File = file

	g.log.Info("generated", zap.String("file", file.Path()), zap.Int("methods", len(methods)),
		zap.Int("errors", len(res.Diagnostics.Errors)))

	return res, nil
}

func (g *Generator) packageName(f *mapping.File) string {
	if f.Package != "" {
		return f.Package
	}

	return g.config.PackageName
}

func (g *Generator) outputDir(f *mapping.File) string {
	if g.config.OutputDir != "" {
		return g.config.OutputDir
	}

	return f.Dir
}

// FormatError reports an assembled file that gofumpt rejected. File holds
// the unformatted source; see GeneratedFile.WriteUnformatted.
type FormatError struct {
	File GeneratedFile
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("formatting code for %s: %v", e.File.Path(), e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// fileData holds all data needed for the file template.
type fileData struct {
	PackageName string
	Imports     []host.Import
	Methods     []string
}

func (g *Generator) renderFile(pkg, dir string, methods []*Method) (*GeneratedFile, error) {
	data := &fileData{PackageName: pkg}

	var body bytes.Buffer

	for _, m := range methods {
		src, err := m.Source(g.config.GenerateComments)
		if err != nil {
			return nil, fmt.Errorf("rendering %s.%s: %w", m.Object, m.Name, err)
		}

		data.Methods = append(data.Methods, src)
		body.WriteString(src)
	}

	data.Imports = g.host.UsedImports(body.String())
	slices.SortFunc(data.Imports, func(a, b host.Import) int {
		return cmp.Compare(a.Path, b.Path)
	})

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{Dir: dir, Filename: g.config.Filename, Methods: methods}

	formatted, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		file.Content = buf.Bytes()

		return nil, &FormatError{File: *file, Err: err}
	}

	file.Content = formatted

	return file, nil
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by accessor-generator. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Methods}}
{{.}}
{{end}}`))

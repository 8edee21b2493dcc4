package analyze

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
)

// LoadMode specifies what information to load from packages. Directives are
// comments, so syntax is enough.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// Analyzer loads Go packages and collects their accessor directives.
type Analyzer struct {
	dir string
	log *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory package patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the packages matching patterns (e.g. "./...",
// "accessor-generator/examples/basic") and scans them. Directive problems are
// returned as diagnostics; the error is reserved for packages that cannot be
// loaded at all.
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Package, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, diags, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, diags, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p, pd := a.processPackage(pkg)
		diags.Merge(pd)

		out = append(out, p)
	}

	return out, diags, nil
}

// processPackage scans every file of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) (*Package, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	p := &Package{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if first, ok := common.First(pkg.GoFiles); ok {
		p.Dir = filepath.Dir(first)
	}

	p.Mapping = &mapping.File{
		Version: mapping.CurrentVersion,
		Package: pkg.Name,
		Dir:     p.Dir,
	}

	for _, file := range pkg.Syntax {
		found, fd := ScanFile(pkg.Fset, file)
		diags.Merge(fd)

		for i := range found {
			found[i].Type.PkgPath = pkg.PkgPath
		}

		p.Directives = append(p.Directives, found...)
	}

	p.Mapping.Merge(Group(p.Directives))

	a.log.Debug("scanned package",
		zap.String("package", pkg.PkgPath),
		zap.Int("files", len(pkg.Syntax)),
		zap.Int("directives", len(p.Directives)),
		zap.Int("objects", len(p.Mapping.Objects)),
	)

	return p, diags
}

// Group collects directives into one mapping object per struct, keeping
// the order in which the structs and their directives appear.
func Group(directives []Directive) *mapping.File {
	f := &mapping.File{Version: mapping.CurrentVersion}

	for _, d := range directives {
		o, ok := f.Lookup(d.Type.Name)
		if !ok {
			f.Objects = append(f.Objects, mapping.Object{
				Type:   d.Type.Name,
				Origin: d.TypePos,
			})
			o = &f.Objects[len(f.Objects)-1]
		}

		switch d.Kind {
		case DirectiveField:
			o.Fields = append(o.Fields, d.Decl)
		case DirectiveAssociation:
			o.Associations = append(o.Associations, d.Decl)
		}
	}

	return f
}

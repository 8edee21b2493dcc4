package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/gen"
	"accessor-generator/internal/mapping"
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("mapping", "m", nil, "YAML or HCL mapping file (repeatable)")
}

func newGenCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate accessor files",
		Long: `Discovers //accessor: directives in the given packages (default ".")
and declarations in --mapping files, then writes one accessor file per source
directory. Nothing is written when any declaration has an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.generate(cmd, args)

			var fe *gen.FormatError
			if errors.As(err, &fe) && !dryRun {
				if werr := fe.File.WriteUnformatted(); werr != nil {
					a.log.Warn("keeping unformatted output", zap.Error(werr))
				}
			}

			if err != nil {
				return err
			}

			if dryRun {
				return printFiles(cmd.OutOrStdout(), files)
			}

			if err := gen.WriteFiles(files); err != nil {
				return err
			}

			for _, f := range files {
				a.log.Info("wrote", zap.String("file", f.Path()), zap.Int("methods", len(f.Methods)))
			}

			return nil
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Write every file to this directory instead of next to its source")
	cmd.Flags().String("filename", gen.DefaultFilename, "Name of the generated file")
	cmd.Flags().String("package", "", "Package clause for mapping files that do not set one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print generated files instead of writing them")

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Parse and classify declarations without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.generate(cmd, args)
			if err != nil {
				return err
			}

			methods := 0
			for _, f := range files {
				methods += len(f.Methods)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d methods in %d files\n", methods, len(files))

			return err
		},
	}

	addSourceFlags(cmd)

	return cmd
}

// sources collects the mapping files named by args and the config.
func (a *app) sources(args []string) ([]*mapping.File, diagnostic.Diagnostics, error) {
	var (
		files []*mapping.File
		diags diagnostic.Diagnostics
	)

	patterns := args
	if len(patterns) == 0 && len(a.cfg.Mappings) == 0 {
		patterns = []string{"."}
	}

	if len(patterns) > 0 {
		pkgs, pd, err := analyze.NewAnalyzer(analyze.WithLogger(a.log)).LoadPackages(patterns...)
		if err != nil {
			return nil, diags, err
		}

		diags.Merge(pd)

		for _, p := range pkgs {
			if len(p.Mapping.Objects) > 0 {
				files = append(files, p.Mapping)
			}
		}
	}

	for _, path := range a.cfg.Mappings {
		f, err := mapping.LoadFile(path)
		if err != nil {
			return nil, diags, err
		}

		a.log.Debug("loaded mapping", zap.String("file", path), zap.Int("objects", len(f.Objects)))

		files = append(files, f)
	}

	return files, diags, nil
}

// generate runs the generator over every source and reports diagnostics on
// stderr. It fails with errDiagnostics if any declaration has an error.
func (a *app) generate(cmd *cobra.Command, args []string) ([]gen.GeneratedFile, error) {
	sources, diags, err := a.sources(args)
	if err != nil {
		return nil, err
	}

	g, err := gen.NewGenerator(a.cfg.Generator(), gen.WithLogger(a.log))
	if err != nil {
		return nil, err
	}

	var (
		out    []gen.GeneratedFile
		owners = map[string]string{}
	)

	for _, src := range sources {
		res, err := g.Generate(src)
		if err != nil {
			return nil, err
		}

		diags.Merge(res.Diagnostics)

		if res.File == nil {
			continue
		}

		path := res.File.Path()
		if prev, dup := owners[path]; dup {
			return nil, fmt.Errorf("%s is generated from both %s and %s", path, describe(prev), describe(src.Path))
		}

		owners[path] = src.Path
		out = append(out, *res.File)
	}

	if err := diagnostic.RenderAll(cmd.ErrOrStderr(), diags); err != nil {
		return nil, err
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %d errors", errDiagnostics, len(diags.Errors))
	}

	if len(sources) == 0 {
		a.log.Warn("no accessor declarations found")
	}

	return out, nil
}

func describe(source string) string {
	if source == "" {
		return "directives"
	}

	return source
}

func printFiles(w io.Writer, files []gen.GeneratedFile) error {
	for _, f := range files {
		if _, err := fmt.Fprintf(w, "// %s\n%s", f.Path(), f.Content); err != nil {
			return err
		}
	}

	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"accessor-generator/internal/classify"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/host"
	"accessor-generator/internal/typeexpr"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <type>...",
		Short: "Show the leaf, accessor kind and Go spelling of type expressions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.cfg.Host.Compile()
			if err != nil {
				return err
			}

			opts := classify.Options{StrictArity: a.cfg.Classify.StrictArity}

			var diags diagnostic.Diagnostics

			for _, text := range args {
				line, err := classifyOne(h, opts, text)
				if err != nil {
					if de, ok := diagnostic.AsError(err); ok {
						de.Expr = text
					}

					diags.AddErr(err)

					continue
				}

				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			if err := diagnostic.RenderAll(cmd.ErrOrStderr(), diags); err != nil {
				return err
			}

			if diags.HasErrors() {
				return errDiagnostics
			}

			return nil
		},
	}
}

func classifyOne(h *host.Host, opts classify.Options, text string) (string, error) {
	expr, err := typeexpr.Parse(text)
	if err != nil {
		return "", err
	}

	c, err := opts.Classify(expr)
	if err != nil {
		return "", err
	}

	goType, err := h.RenderType(expr)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s\t%s\t%s", expr, c, goType), nil
}

package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/gen"
)

func newExpandCmd(a *app) *cobra.Command {
	var (
		association bool
		dump        bool
	)

	cmd := &cobra.Command{
		Use:   "expand <object> <declaration>",
		Short: "Print the method a single declaration expands to",
		Example: `  accessor-generator expand Query 'other.bar -> Option<i32>'
  accessor-generator expand Query 'country -> Country' --association`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gen.NewGenerator(a.cfg.Generator(), gen.WithLogger(a.log))
			if err != nil {
				return err
			}

			m, err := g.ExpandText(args[0], args[1], association)
			if err != nil {
				if de, ok := diagnostic.AsError(err); ok {
					_ = diagnostic.Render(cmd.ErrOrStderr(), de.Diagnostic)
					return errDiagnostics
				}

				return err
			}

			if dump {
				spew.Fdump(cmd.OutOrStdout(), m)
				return nil
			}

			src, err := m.Source(a.cfg.Output.Comments)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), src)

			return err
		},
	}

	cmd.Flags().BoolVarP(&association, "association", "a", false, "Parse the declaration as an association")
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the expanded method structure instead of its source")

	return cmd
}

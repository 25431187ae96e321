package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SilvertipSoftware/factorygirl/internal/logging"
	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
	"github.com/SilvertipSoftware/factorygirl/pkg/loader"
)

func newCheckCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a definitions file",
		Long: `Validate a definitions file and list the factories it declares.

This command checks:
  - YAML syntax and the definitions layout
  - Field rules such as required names and sequence formats
  - That every parent exists and no parent chain is circular`,
		Example: `  # Check the file named by FACTORY_DEFINITIONS
  factorygirl check

  # Check a specific file
  factorygirl check ./tests/factories.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(args...)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Log, cmd.ErrOrStderr())

			path := cfg.Factory.DefinitionsPath
			doc, err := loader.ParseFile(path)
			if err != nil {
				return err
			}

			f := factory.New(factory.WithLogger(logger))
			if err := doc.Apply(f); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FACTORY\tCLASS\tPARENT\tTEMPLATE")

			var errs []error
			for _, name := range f.Definitions() {
				def, _ := f.Registry().Lookup(name)
				opts, err := f.Registry().ResolveOptions(name)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", name, opts[factory.OptionClass], opts[factory.OptionParent], def.Template())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			logger.Info("definitions checked",
				"path", path,
				"factories", len(doc.Factories),
				"sequences", len(doc.Sequences),
			)
			return errors.Join(errs...)
		},
	}

	return cmd
}

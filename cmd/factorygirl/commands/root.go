package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SilvertipSoftware/factorygirl/internal/config"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	definitions string
	verbose     bool
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "factorygirl",
		Short: "Build test data from factory definitions",
		Long: `factorygirl loads factory definitions from a YAML file and builds or
creates models from them.

Created models are saved to the store named by FACTORY_STORE:
  - memory: in-process, discarded on exit
  - sqlite: FACTORY_SQL_DSN, default in-memory
  - postgres: FACTORY_SQL_DSN
  - surreal: DB_HOST, DB_PORT, DB_NAMESPACE, DB_DATABASE`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.definitions, "definitions", "f", "", "definitions file (default $FACTORY_DEFINITIONS)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(newCheckCommand(g))
	rootCmd.AddCommand(newBuildCommand(g))

	return rootCmd
}

// load reads and validates the environment configuration and applies the
// persistent flags over it.
func (g *globals) load(args ...string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.definitions != "" {
		cfg.Factory.DefinitionsPath = g.definitions
	}
	if len(args) > 0 && args[0] != "" {
		cfg.Factory.DefinitionsPath = args[0]
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

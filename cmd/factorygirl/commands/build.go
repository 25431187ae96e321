package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SilvertipSoftware/factorygirl/internal/logging"
	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
	"github.com/SilvertipSoftware/factorygirl/pkg/loader"
	"github.com/SilvertipSoftware/factorygirl/pkg/metrics"
	"github.com/SilvertipSoftware/factorygirl/pkg/store"
)

func newBuildCommand(g *globals) *cobra.Command {
	var (
		create      bool
		count       int
		schema      string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "build <factory> [key=value ...]",
		Short: "Build or create models from a factory",
		Long: `Build models from a factory and print them as JSON, one per line.

Overrides are given as key=value pairs. Values are parsed as YAML scalars,
so count=3 is a number and active=true is a boolean.

With --create each model, and every model it associates, is saved to the
configured store.`,
		Example: `  # Build an unsaved user
  factorygirl build user

  # Create three posts with a fixed status in a sqlite file
  FACTORY_STORE=sqlite FACTORY_SQL_DSN=test.db factorygirl build post status=published --create --count 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Log, cmd.ErrOrStderr())

			name := args[0]
			overrides, err := parseOverrides(args[1:])
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			m, err := metrics.New(reg)
			if err != nil {
				return err
			}

			opts := []factory.Option{
				factory.WithLoader(loader.File(cfg.Factory.DefinitionsPath)),
				factory.WithLogger(logger),
				factory.WithObserver(m),
				factory.WithMaxResolveSteps(cfg.Factory.MaxResolveSteps),
			}

			ctx := cmd.Context()
			if create {
				s, closeStore, err := openStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer func() { _ = closeStore() }()
				if schema != "" {
					if err := applySchema(ctx, s, schema); err != nil {
						return err
					}
				}
				opts = append(opts, factory.WithStore(store.NewValidating(s)))
			}
			f := factory.New(opts...)

			enc := json.NewEncoder(cmd.OutOrStdout())
			for i := 0; i < count; i++ {
				var model factory.Model
				if create {
					model, err = f.Create(ctx, name, overrides)
				} else {
					model, err = f.Build(ctx, name, overrides)
				}
				if err != nil {
					return err
				}
				if err := enc.Encode(output(model)); err != nil {
					return err
				}
			}

			logger.Info("models built",
				"factory", name,
				"count", count,
				"created", create,
				"store", cfg.Store.Kind,
			)

			if showMetrics {
				return writeMetrics(cmd.ErrOrStderr(), reg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "save models to the configured store")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of models to build")
	cmd.Flags().StringVar(&schema, "schema", "", "SQL file to run before creating (sql stores only)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print build metrics to stderr when done")

	return cmd
}

// parseOverrides turns key=value arguments into overrides, keeping their
// order.
func parseOverrides(args []string) (*factory.Attributes, error) {
	attrs := factory.NewAttributes()
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q is not key=value", arg)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("override %s: %w", key, err)
		}
		attrs.SetValue(key, factory.Plain(v))
	}
	return attrs, nil
}

// output renders a model for JSON encoding.
func output(m factory.Model) map[string]any {
	out := map[string]any{"id": m.ID()}
	if row, ok := m.(store.Row); ok {
		out["class"] = row.Class()
		out["attributes"] = row.Fields()
	}
	return out
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

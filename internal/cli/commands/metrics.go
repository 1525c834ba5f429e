package commands

import (
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/beans/internal/metrics"
	"github.com/conduit-lang/beans/runtime/introspection"
)

// newMetricsCommand creates the metrics command
func newMetricsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Build every introspection and print registry metrics",
		Long: `Build every registered introspection and print the registry metrics
in the Prometheus text exposition format.

Metrics are collected even when metrics.enabled is false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.metrics == nil {
				e.metrics = metrics.NewCollector(e.config.Metrics.Namespace)
				e.registry.Configure(
					introspection.WithLogger(e.logger),
					introspection.WithObserver(e.metrics),
				)
			}

			introspection.NewRegistryAPI(e.registry).Summaries()

			families, err := e.metrics.Registry().Gather()
			if err != nil {
				return err
			}
			for _, f := range families {
				if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

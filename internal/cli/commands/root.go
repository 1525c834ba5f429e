package commands

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conduit-lang/beans/internal/binding"
	"github.com/conduit-lang/beans/internal/cli/config"
	"github.com/conduit-lang/beans/internal/cli/ui"
	"github.com/conduit-lang/beans/internal/logging"
	"github.com/conduit-lang/beans/internal/metrics"
	_ "github.com/conduit-lang/beans/internal/samples" // sample beans
	"github.com/conduit-lang/beans/runtime/introspection"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// Output formats accepted by --format
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// env is the state shared by every command, prepared before any of them
// runs
type env struct {
	configPath string
	logLevel   string
	noColor    bool
	format     string

	config   *config.Config
	logger   *zap.Logger
	registry *introspection.Registry
	metrics  *metrics.Collector
}

// setup loads configuration and wires the logger and metrics into the
// default registry
func (e *env) setup(logOutput io.Writer) error {
	if e.noColor {
		color.NoColor = true
	}
	switch e.format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", e.format)
	}

	cfg, err := config.LoadFile(e.configPath)
	if err != nil {
		return err
	}
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
	}
	e.config = cfg

	logger, err := logging.NewWithWriter(cfg.Log, zapcore.AddSync(logOutput))
	if err != nil {
		return err
	}
	e.logger = logger

	opts := []introspection.Option{introspection.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		e.metrics = metrics.NewCollector(cfg.Metrics.Namespace)
		opts = append(opts, introspection.WithObserver(e.metrics))
	}
	e.registry = introspection.Default()
	e.registry.Configure(opts...)
	return nil
}

// binder returns a binder configured from the binding section
func (e *env) binder() *binding.Binder {
	return &binding.Binder{
		StrictNullable: e.config.Binding.StrictNullable,
		IgnoreUnknown:  e.config.Binding.IgnoreUnknown,
		Registry:       e.registry,
	}
}

// lookup resolves a type by name, printing suggestions when it is unknown
func (e *env) lookup(w io.Writer, name string) (*introspection.Introspection, error) {
	in, err := e.registry.LookupByName(name)
	if err == nil {
		return in, nil
	}

	var names []string
	for _, entry := range e.registry.Entries() {
		names = append(names, entry.Name)
	}
	fmt.Fprint(w, ui.TypeNotFoundError(name, ui.FindSimilar(name, names), e.noColor))
	return nil, err
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "beans",
		Short: "Inspect, bind and validate introspected Go beans",
		Long: color.CyanString(`beans - build-time bean introspection for Go

Beans are types whose properties, constructor and methods are described by
generated introspection tables. Property access and method calls go through
indexed dispatch instead of reflection.

This tool lists the registered introspections, shows their structure and
binds YAML or JSON documents into beans.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.configPath, "config", "", "Config file (default: ./beans.yaml)")
	rootCmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&e.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&e.format, "format", FormatTable, "Output format: table, json or yaml")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newIntrospectCommand(e))
	rootCmd.AddCommand(newBindCommand(e))
	rootCmd.AddCommand(newMetricsCommand(e))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the beans version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			table := ui.NewKeyValueTable(cmd.OutOrStdout(), color.NoColor)
			table.AddRow("beans version", Version)
			table.AddRow("Git commit", GitCommit)
			table.AddRow("Build date", BuildDate)
			table.AddRow("Go version", goVer)
			table.Render()
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", strings.TrimSpace(err.Error()))
		return err
	}
	return nil
}

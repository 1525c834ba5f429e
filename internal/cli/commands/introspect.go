package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/beans/internal/cli/ui"
	"github.com/conduit-lang/beans/runtime/introspection"
)

// newIntrospectCommand creates the introspect command group
func newIntrospectCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Inspect the introspection registry",
		Long: `Inspect the introspection registry.

Every bean type linked into the binary registers its generated
introspection at startup. These commands list the registered types and
show the constructor, properties and methods of each one.`,
		Example: `  # List all introspected types
  beans introspect types

  # Show the structure of one type
  beans introspect type samples.Account

  # Output in JSON format for tooling
  beans introspect types --format json`,
	}

	cmd.AddCommand(newIntrospectTypesCommand(e))
	cmd.AddCommand(newIntrospectTypeCommand(e))

	return cmd
}

// newIntrospectTypesCommand creates the 'introspect types' command
func newIntrospectTypesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List all introspected types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := introspection.NewRegistryAPI(e.registry).Summaries()
			w := cmd.OutOrStdout()

			switch e.format {
			case FormatJSON:
				return writeJSON(w, summaries)
			case FormatYAML:
				return writeYAML(w, summaries)
			}

			table := ui.NewTable(w, e.noColor, "Name", "Constructor", "Properties", "Methods")
			for _, s := range summaries {
				table.AddRow(s.Name, constructorSignature(s.ConstructorArguments), strconv.Itoa(len(s.Properties)), strconv.Itoa(len(s.Methods)))
			}
			table.Render()
			return nil
		},
	}
}

// newIntrospectTypeCommand creates the 'introspect type' command
func newIntrospectTypeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "type <name>",
		Short: "Show the structure of an introspected type",
		Long: `Show the structure of an introspected type.

Names may be short ("samples.Point") or package-qualified.`,
		Example: `  beans introspect type samples.Point
  beans introspect type samples.ServerConfig --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := e.lookup(cmd.ErrOrStderr(), args[0])
			if err != nil {
				return err
			}
			summary := introspection.Summarize(in)
			w := cmd.OutOrStdout()

			switch e.format {
			case FormatJSON:
				return writeJSON(w, summary)
			case FormatYAML:
				return writeYAML(w, summary)
			}

			renderType(w, in, summary, e.noColor)
			return nil
		},
	}
}

// renderType prints a type as a header, a property table and a method list
func renderType(w io.Writer, in *introspection.Introspection, s introspection.TypeSummary, noColor bool) {
	header := ui.NewKeyValueTable(w, noColor)
	header.AddRow("Type", s.Name)
	header.AddRow("Bean type", s.BeanType)
	header.AddRow("Constructor", constructorSignature(s.ConstructorArguments))
	if len(s.Annotations) > 0 {
		header.AddRow("Annotations", strings.Join(s.Annotations, ", "))
	}
	header.Render()
	fmt.Fprintln(w)

	ui.Section(w, "Properties", noColor, func(w io.Writer) {
		table := ui.NewTable(w, noColor, "Name", "Type", "Access", "Annotations")
		for _, p := range s.Properties {
			table.AddRow(p.Name, p.Type, access(p), strings.Join(p.Annotations, ", "))
		}
		table.Render()
	})

	if methods := in.Methods(); len(methods) > 0 {
		ui.Section(w, "Methods", noColor, func(w io.Writer) {
			for _, m := range methods {
				fmt.Fprintln(w, m.String())
			}
		})
	}
}

// access describes how a property can be used: read-write, read-only,
// write-only, and whether a new instance can carry a changed value
func access(p introspection.PropertySummary) string {
	var flags string
	switch {
	case p.ReadOnly:
		flags = "RO"
	case p.WriteOnly:
		flags = "WO"
	default:
		flags = "RW"
	}
	if p.Mutable {
		flags += "+"
	}
	return flags
}

func constructorSignature(args []introspection.ArgumentSummary) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type + " " + a.Name
		if a.Nullable {
			parts[i] += "?"
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

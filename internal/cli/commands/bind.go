package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/beans/internal/binding"
	"github.com/conduit-lang/beans/internal/cli/ui"
	"github.com/conduit-lang/beans/internal/codec"
	"github.com/conduit-lang/beans/internal/store"
	"github.com/conduit-lang/beans/internal/validation"
	"github.com/conduit-lang/beans/runtime/introspection"
)

// newBindCommand creates the bind command
func newBindCommand(e *env) *cobra.Command {
	var (
		file   string
		saveID string
	)

	cmd := &cobra.Command{
		Use:   "bind <type>",
		Short: "Bind a YAML or JSON document into a bean",
		Long: `Bind a YAML or JSON document into a bean, validate it and print it back.

Keys are matched to constructor arguments and properties ignoring case,
dashes and underscores. Column annotations are accepted as aliases. Every
conversion and constraint failure is reported, not only the first.

Files ending in .json are decoded as JSON, anything else as YAML. Use
"-f -" to read standard input.`,
		Example: `  # Bind and print back as YAML
  beans bind samples.ServerConfig -f server.yaml --format yaml

  # Bind and store the bean in Redis under id "api"
  beans bind samples.ServerConfig -f server.yaml --save api`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := e.lookup(cmd.ErrOrStderr(), args[0])
			if err != nil {
				return err
			}

			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			binder := e.binder()
			c := codec.New(e.registry, binder)

			var bean any
			if strings.EqualFold(filepath.Ext(file), ".json") {
				bean, err = c.UnmarshalJSON(in, data)
			} else {
				bean, err = c.UnmarshalYAML(in, data)
			}
			if err != nil {
				return e.reportInvalid(cmd.ErrOrStderr(), in, bindViolations(err))
			}

			engine := validation.NewEngine(e.registry, e.logger)
			if err := engine.Validate(cmd.Context(), in, bean); err != nil {
				var ve *validation.ValidationErrors
				if !errors.As(err, &ve) {
					return err
				}
				return e.reportInvalid(cmd.ErrOrStderr(), in, validationViolations(ve))
			}

			if saveID != "" {
				if err := e.save(cmd, c, binder, in, saveID, bean); err != nil {
					return err
				}
			}

			return writeBean(cmd.OutOrStdout(), e.format, c, in, bean, e.noColor)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to bind (- for stdin)")
	cmd.Flags().StringVar(&saveID, "save", "", "Store the bound bean in Redis under this id")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}

func (e *env) save(cmd *cobra.Command, c *codec.Codec, binder *binding.Binder, in *introspection.Introspection, id string, bean any) error {
	if e.config.Store.RedisAddr == "" {
		return fmt.Errorf("--save requires store.redis_addr to be configured")
	}

	cfg := store.DefaultRedisConfig(e.config.Store.RedisAddr)
	cfg.KeyPrefix = e.config.Store.KeyPrefix
	s := store.NewRedisStore(cfg, c, binder)
	defer s.Close()

	if err := s.Save(cmd.Context(), id, in, bean); err != nil {
		return err
	}
	ui.WriteSuccess(cmd.ErrOrStderr(), "saved "+s.Key(in, id), e.noColor)
	return nil
}

func (e *env) reportInvalid(w io.Writer, in *introspection.Introspection, violations []string) error {
	fmt.Fprint(w, ui.InvalidBeanError(in.Name(), violations, e.noColor))
	return fmt.Errorf("%s is invalid: %d problem(s)", in.Name(), len(violations))
}

func bindViolations(err error) []string {
	var violations []string
	for _, err := range binding.Errors(err) {
		violations = append(violations, err.Error())
	}
	return violations
}

func validationViolations(ve *validation.ValidationErrors) []string {
	var violations []string
	for _, path := range ve.Paths() {
		for _, msg := range ve.Fields[path] {
			violations = append(violations, path+": "+msg)
		}
	}
	return violations
}

// writeBean prints a bean in the requested format. The table format lists
// encoded properties in declaration order.
func writeBean(w io.Writer, format string, c *codec.Codec, in *introspection.Introspection, bean any, noColor bool) error {
	switch format {
	case FormatJSON:
		data, err := c.MarshalJSONIndent(in, bean)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := c.MarshalYAML(in, bean)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	m, err := c.ToMap(in, bean)
	if err != nil {
		return err
	}
	table := ui.NewKeyValueTable(w, noColor)
	for _, p := range in.Properties() {
		name := codec.Name(p)
		if v, ok := m[name]; ok {
			table.AddRow(name, displayValue(v))
		}
	}
	table.Render()
	return nil
}

func displayValue(v any) string {
	if v == nil {
		return "null"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice:
		data, err := json.Marshal(v)
		if err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(v)
}

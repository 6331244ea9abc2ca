package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/imkonsowa/restaurants-ordering/cleaner"
	"github.com/imkonsowa/restaurants-ordering/prompts"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prompt templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVARIABLES")
			for _, name := range prompts.Names() {
				vars, err := prompts.Variables(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(vars, ", "))
			}

			return w.Flush()
		},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		varsFile string
		set      []string
	)

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a prompt template",
		Long:  `Render a template with variables from a YAML file and --set key=value pairs. --set wins over the file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := loadVars(varsFile)
			if err != nil {
				return err
			}
			for _, kv := range set {
				key, value, ok := strings.Cut(kv, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid --set %q, want key=value", kv)
				}
				vars[key] = value
			}

			out, err := prompts.Render(args[0], vars)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().StringVar(&varsFile, "vars", "", "YAML file of template variables")
	cmd.Flags().StringArrayVar(&set, "set", nil, "Template variable as key=value (repeatable)")

	return cmd
}

// loadVars reads a flat YAML mapping. Non-string values are rendered back
// to YAML so lists and maps can be passed as prompt variables.
func loadVars(path string) (map[string]string, error) {
	vars := map[string]string{}
	if path == "" {
		return vars, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vars file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse vars file %s: %w", path, err)
	}

	for k, v := range raw {
		switch v := v.(type) {
		case string:
			vars[k] = v
		case nil:
			vars[k] = ""
		case map[string]any, []any:
			out, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to encode variable %s: %w", k, err)
			}
			vars[k] = string(out)
		default:
			vars[k] = fmt.Sprint(v)
		}
	}

	return vars, nil
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean model output read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}

			kind := "raw"
			if _, ok := cleaner.Decode(string(raw)).(cleaner.Structured); ok {
				kind = "structured"
			}

			fmt.Fprintln(cmd.OutOrStdout(), cleaner.Clean(string(raw)))
			fmt.Fprintf(cmd.ErrOrStderr(), "result: %s\n", kind)

			return nil
		},
	}
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/hypermedia/pkg/uber"
)

// NewFlattenCommand creates the flatten command
func NewFlattenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten [file|-]",
		Short: "Print the UBER document of a JSON or YAML value",
		Long: `Read a JSON or YAML value and print it as an UBER document.

Objects become named nodes, arrays become item nodes and nulls are kept
as explicit null values. Input is read from stdin when no file or "-" is
given. The format is taken from the file extension unless --format is set;
stdin defaults to YAML, which accepts JSON as well.

Examples:
  hypermedia flatten person.json
  cat people.yml | hypermedia flatten --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFlatten,
	}

	cmd.Flags().Bool("pretty", false, "Indent the output")
	cmd.Flags().String("format", "", "Input format: json or yaml")

	return cmd
}

func runFlatten(cmd *cobra.Command, args []string) error {
	pretty, _ := cmd.Flags().GetBool("pretty")
	format, _ := cmd.Flags().GetString("format")

	var (
		in   io.Reader = cmd.InOrStdin()
		name           = "-"
	)
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, args[0]
	}

	if format == "" {
		format = formatFromName(name)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	v, err := decode(data, format)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	msg, err := uber.NewMessage(v)
	if err != nil {
		return err
	}
	out, err := msg.MarshalIndent(pretty)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func formatFromName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return "json"
	}
	return "yaml"
}

func decode(data []byte, format string) (any, error) {
	var v any
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return v, nil
}

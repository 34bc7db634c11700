package commands

import (
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/hypermedia/internal/cli/ui"
)

// NewRoutesCommand creates the routes command
func NewRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the sample server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			noColor, _ := cmd.Flags().GetBool("no-color")

			_, r := buildHandler(cfg, zap.NewNop())

			table := ui.NewTable(cmd.OutOrStdout(), []string{"METHOD", "PATTERN", "NAME", "PARAMETERS"}, &ui.TableOptions{
				NoColor:   noColor || color.NoColor,
				CellColor: methodColor,
			})
			for _, route := range r.GetRoutes() {
				table.AddRow(route.Method, route.Pattern, route.Name, strings.Join(route.Parameters, ", "))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

func methodColor(col int, cell string) *color.Color {
	if col != 0 {
		return nil
	}
	switch cell {
	case http.MethodGet:
		return color.New(color.FgGreen)
	case http.MethodPost:
		return color.New(color.FgYellow)
	case http.MethodPut, http.MethodPatch:
		return color.New(color.FgBlue)
	case http.MethodDelete:
		return color.New(color.FgRed)
	default:
		return nil
	}
}

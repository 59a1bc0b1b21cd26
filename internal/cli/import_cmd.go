package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/reqtrack/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load clients, categories, team members and requirements from a YAML seed file",
		Long: `Load a YAML seed file in one transaction. Clients, categories and team
members that already exist by name are reused. Requirements refer to
their client, category and team member by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s\n", formatter.Bold(args[0]))
			fmt.Fprintf(out, "  %-13s %d\n", "clients", res.Clients)
			fmt.Fprintf(out, "  %-13s %d\n", "categories", res.Categories)
			fmt.Fprintf(out, "  %-13s %d\n", "team members", res.TeamMembers)
			fmt.Fprintf(out, "  %-13s %d\n", "requirements", res.Requirements)
			if res.Reused > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("  %d existing record(s) reused by name", res.Reused)))
			}
			return nil
		},
	}
}

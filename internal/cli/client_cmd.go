package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/reqtrack/internal/cli/formatter"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientShowCmd(app),
		newClientUpdateCmd(app),
		newClientRemoveCmd(app),
		newClientRequirementsCmd(app),
	)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var in domain.ClientInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (in.AgencyName == "" || in.ContactPerson == "" || in.Email == "") && app.interactive() {
				if err := clientForm(&in).Run(); err != nil {
					return err
				}
			}

			c, err := app.Clients.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created client %s %s\n", formatter.Bold(c.AgencyName), formatter.Dim(fmt.Sprintf("#%d", c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.AgencyName, "agency", "", "Agency name")
	cmd.Flags().StringVar(&in.ContactPerson, "contact", "", "Contact person")
	cmd.Flags().StringVar(&in.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Address, "address", "", "Postal address")
	cmd.Flags().StringVar(&in.Website, "website", "", "Website URL")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients with their requirement counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Clients.ListWithRequirementCounts(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClientList(items))
			return nil
		},
	}
}

func newClientShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show client details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(cmd.Context(), "client", args[0], app.clientNames)
			if err != nil {
				return err
			}
			c, err := app.Clients.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClient(c))
			return nil
		},
	}
}

func newClientUpdateCmd(app *App) *cobra.Command {
	var agency, contact, email, phone, address, website string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change client fields; only the flags given are updated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(cmd.Context(), "client", args[0], app.clientNames)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var p domain.ClientPatch
			if flags.Changed("agency") {
				p.AgencyName = &agency
			}
			if flags.Changed("contact") {
				p.ContactPerson = &contact
			}
			if flags.Changed("email") {
				p.Email = &email
			}
			if flags.Changed("phone") {
				p.Phone = &phone
			}
			if flags.Changed("address") {
				p.Address = &address
			}
			if flags.Changed("website") {
				p.Website = &website
			}

			c, err := app.Clients.Update(cmd.Context(), id, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s %s\n", formatter.Bold(c.AgencyName), formatter.Dim(fmt.Sprintf("#%d", c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&agency, "agency", "", "Agency name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&address, "address", "", "Postal address")
	cmd.Flags().StringVar(&website, "website", "", "Website URL")

	return cmd
}

func newClientRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a client that no requirement references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg("client", args[0])
			if err != nil {
				return err
			}
			if ok, err := confirmDelete(app, yes, fmt.Sprintf("Delete client #%d?", id)); err != nil || !ok {
				return err
			}
			res, err := app.Clients.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return reportDelete(cmd, "client", id, res)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newClientRequirementsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "requirements ID",
		Short: "List a client's requirements, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(cmd.Context(), "client", args[0], app.clientNames)
			if err != nil {
				return err
			}
			views, err := app.Requirements.ListByClient(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printRequirements(cmd, app, views)
		},
	}
}

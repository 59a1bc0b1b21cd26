package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/reqtrack/internal/cli/formatter"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// namedEntity adapts the category and team member services, which share
// the same name-only shape, to one set of subcommands.
type namedEntity struct {
	noun         string
	create       func(ctx context.Context, name string) (int64, error)
	show         func(ctx context.Context, id int64) (formatter.NamedRow, error)
	rename       func(ctx context.Context, id int64, name string) error
	remove       func(ctx context.Context, id int64) (domain.DeleteResult, error)
	list         func(ctx context.Context) ([]formatter.NamedRow, error)
	names        func(ctx context.Context) (map[int64]string, error)
	requirements func(ctx context.Context, id int64) ([]*domain.RequirementView, error)
}

func newCategoryCmd(app *App) *cobra.Command {
	e := namedEntity{
		noun: "category",
		create: func(ctx context.Context, name string) (int64, error) {
			c, err := app.Categories.Create(ctx, domain.CategoryInput{Name: name})
			if err != nil {
				return 0, err
			}
			return c.ID, nil
		},
		show: func(ctx context.Context, id int64) (formatter.NamedRow, error) {
			c, err := app.Categories.GetByID(ctx, id)
			if err != nil {
				return formatter.NamedRow{}, err
			}
			return formatter.NamedRow{ID: c.ID, Name: c.Name}, nil
		},
		rename: func(ctx context.Context, id int64, name string) error {
			_, err := app.Categories.Update(ctx, id, domain.CategoryPatch{Name: &name})
			return err
		},
		remove: app.Categories.Delete,
		list: func(ctx context.Context) ([]formatter.NamedRow, error) {
			items, err := app.Categories.ListWithRequirementCounts(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]formatter.NamedRow, 0, len(items))
			for _, it := range items {
				rows = append(rows, formatter.NamedRow{ID: it.Item.ID, Name: it.Item.Name, RequirementCount: it.RequirementCount})
			}
			return rows, nil
		},
		names:        app.categoryNames,
		requirements: app.Requirements.ListByCategory,
	}
	cmd := e.command(app)
	cmd.Aliases = []string{"categories"}
	cmd.Short = "Manage requirement categories"
	return cmd
}

func newMemberCmd(app *App) *cobra.Command {
	e := namedEntity{
		noun: "team member",
		create: func(ctx context.Context, name string) (int64, error) {
			m, err := app.Members.Create(ctx, domain.TeamMemberInput{Name: name})
			if err != nil {
				return 0, err
			}
			return m.ID, nil
		},
		show: func(ctx context.Context, id int64) (formatter.NamedRow, error) {
			m, err := app.Members.GetByID(ctx, id)
			if err != nil {
				return formatter.NamedRow{}, err
			}
			return formatter.NamedRow{ID: m.ID, Name: m.Name}, nil
		},
		rename: func(ctx context.Context, id int64, name string) error {
			_, err := app.Members.Update(ctx, id, domain.TeamMemberPatch{Name: &name})
			return err
		},
		remove: app.Members.Delete,
		list: func(ctx context.Context) ([]formatter.NamedRow, error) {
			items, err := app.Members.ListWithRequirementCounts(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]formatter.NamedRow, 0, len(items))
			for _, it := range items {
				rows = append(rows, formatter.NamedRow{ID: it.Item.ID, Name: it.Item.Name, RequirementCount: it.RequirementCount})
			}
			return rows, nil
		},
		names:        app.memberNames,
		requirements: app.Requirements.ListByTeamMember,
	}
	cmd := e.command(app)
	cmd.Use = "member"
	cmd.Aliases = []string{"members", "team"}
	cmd.Short = "Manage team members"
	return cmd
}

func (e namedEntity) command(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: e.noun}
	cmd.AddCommand(e.addCmd(app), e.listCmd(), e.showCmd(), e.updateCmd(), e.removeCmd(app), e.requirementsCmd(app))
	return cmd
}

func (e namedEntity) addCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [NAME]",
		Short: "Create a new " + e.noun,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" && app.interactive() {
				if err := nameForm("Name", &name).Run(); err != nil {
					return err
				}
			}
			id, err := e.create(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s %s\n", e.noun, formatter.Bold(name), formatter.Dim(fmt.Sprintf("#%d", id)))
			return nil
		},
	}
}

func (e namedEntity) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List with requirement counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := e.list(cmd.Context())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s records found.\n", e.noun)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNamedList(rows))
			return nil
		},
	}
}

func (e namedEntity) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one " + e.noun + " and its requirement count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(cmd.Context(), e.noun, args[0], e.names)
			if err != nil {
				return err
			}
			row, err := e.show(cmd.Context(), id)
			if err != nil {
				return err
			}
			views, err := e.requirements(cmd.Context(), id)
			if err != nil {
				return err
			}
			row.RequirementCount = len(views)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNamedList([]formatter.NamedRow{row}))
			return nil
		},
	}
}

func (e namedEntity) updateCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a " + e.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(e.noun, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				return fmt.Errorf("nothing to update: pass --name")
			}
			if err := e.rename(cmd.Context(), id, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s #%d to %s\n", e.noun, id, formatter.Bold(name))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	return cmd
}

func (e namedEntity) removeCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a " + e.noun + " that no requirement references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(e.noun, args[0])
			if err != nil {
				return err
			}
			if ok, err := confirmDelete(app, yes, fmt.Sprintf("Delete %s #%d?", e.noun, id)); err != nil || !ok {
				return err
			}
			res, err := e.remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			return reportDelete(cmd, e.noun, id, res)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (e namedEntity) requirementsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "requirements ID",
		Short: "List requirements, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRef(cmd.Context(), e.noun, args[0], e.names)
			if err != nil {
				return err
			}
			views, err := e.requirements(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printRequirements(cmd, app, views)
		},
	}
}

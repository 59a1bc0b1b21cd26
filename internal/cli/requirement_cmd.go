package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/reqtrack/internal/cli/formatter"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

func newRequirementCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requirement",
		Aliases: []string{"requirements", "req"},
		Short:   "Manage requirements",
	}

	cmd.AddCommand(
		newRequirementAddCmd(app),
		newRequirementListCmd(app),
		newRequirementShowCmd(app),
		newRequirementUpdateCmd(app),
		newRequirementRemoveCmd(app),
	)

	return cmd
}

func newRequirementAddCmd(app *App) *cobra.Command {
	var f requirementFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a requirement for a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if (f.title == "" || f.client == "" || f.category == "") && app.interactive() {
				in, err := promptRequirement(cmd, app, &f)
				if err != nil {
					return err
				}
				return createRequirement(cmd, app, in)
			}

			in := domain.RequirementInput{
				Title:       f.title,
				Description: f.description,
				Priority:    f.priority.p,
				Status:      f.status.s,
				DueDate:     f.due.ptr(),
			}
			var err error
			if in.ClientID, err = resolveRef(ctx, "client", f.client, app.clientNames); err != nil {
				return err
			}
			if in.CategoryID, err = resolveRef(ctx, "category", f.category, app.categoryNames); err != nil {
				return err
			}
			if f.owner != "" {
				id, err := resolveRef(ctx, "team member", f.owner, app.memberNames)
				if err != nil {
					return err
				}
				in.TeamMemberID = &id
			}
			return createRequirement(cmd, app, in)
		},
	}

	f.register(cmd.Flags())

	return cmd
}

func createRequirement(cmd *cobra.Command, app *App, in domain.RequirementInput) error {
	v, err := app.Requirements.Create(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created requirement %s %s for %s\n",
		formatter.Bold(v.Title), formatter.Dim(fmt.Sprintf("#%d", v.ID)), v.ClientName)
	return nil
}

// promptRequirement runs the requirement form, seeded from whatever flags
// were given.
func promptRequirement(cmd *cobra.Command, app *App, f *requirementFlags) (domain.RequirementInput, error) {
	ctx := cmd.Context()
	clients, err := app.clientNames(ctx)
	if err != nil {
		return domain.RequirementInput{}, err
	}
	categories, err := app.categoryNames(ctx)
	if err != nil {
		return domain.RequirementInput{}, err
	}
	members, err := app.memberNames(ctx)
	if err != nil {
		return domain.RequirementInput{}, err
	}
	if len(clients) == 0 || len(categories) == 0 {
		return domain.RequirementInput{}, errors.New("add a client and a category before adding requirements")
	}

	d := requirementDraft{
		Title:       f.title,
		Description: f.description,
		Due:         f.due.String(),
		Priority:    f.priority.p,
		Status:      f.status.s,
	}
	if d.Priority == "" {
		d.Priority = domain.PriorityMedium
	}
	if d.Status == "" {
		d.Status = domain.StatusTodo
	}
	if f.client != "" {
		if d.ClientID, err = resolveRef(ctx, "client", f.client, app.clientNames); err != nil {
			return domain.RequirementInput{}, err
		}
	}
	if f.category != "" {
		if d.CategoryID, err = resolveRef(ctx, "category", f.category, app.categoryNames); err != nil {
			return domain.RequirementInput{}, err
		}
	}
	if f.owner != "" {
		if d.MemberID, err = resolveRef(ctx, "team member", f.owner, app.memberNames); err != nil {
			return domain.RequirementInput{}, err
		}
	}

	if err := requirementForm(&d, clients, categories, members).Run(); err != nil {
		return domain.RequirementInput{}, err
	}
	return d.input()
}

func (d requirementDraft) input() (domain.RequirementInput, error) {
	in := domain.RequirementInput{
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Status:      d.Status,
		ClientID:    d.ClientID,
		CategoryID:  d.CategoryID,
	}
	if d.MemberID != 0 {
		id := d.MemberID
		in.TeamMemberID = &id
	}
	if due := strings.TrimSpace(d.Due); due != "" {
		t, err := domain.ParseDate(due)
		if err != nil {
			return domain.RequirementInput{}, err
		}
		in.DueDate = &t
	}
	return in, nil
}

func newRequirementListCmd(app *App) *cobra.Command {
	var client, member string
	var status statusValue
	var overdue, bare bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requirements, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var views []*domain.RequirementView
			var err error
			var memberID int64
			if member != "" {
				if memberID, err = resolveRef(ctx, "team member", member, app.memberNames); err != nil {
					return err
				}
			}
			switch {
			case client != "":
				id, err := resolveRef(ctx, "client", client, app.clientNames)
				if err != nil {
					return err
				}
				views, err = app.Requirements.ListByClient(ctx, id)
				if err != nil {
					return err
				}
			case member != "":
				views, err = app.Requirements.ListByTeamMember(ctx, memberID)
			case bare:
				views, err = app.Requirements.List(ctx, domain.IncludeNone)
			default:
				views, err = app.Requirements.List(ctx, domain.IncludeRelations)
			}
			if err != nil {
				return err
			}

			now := app.now()
			out := views[:0:0]
			for _, v := range views {
				if member != "" && (v.TeamMemberID == nil || *v.TeamMemberID != memberID) {
					continue
				}
				if status.s != "" && v.Status != status.s {
					continue
				}
				if overdue && !v.IsOverdue(now) {
					continue
				}
				out = append(out, v)
			}
			return printRequirements(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "Only this client's requirements (id or agency name)")
	cmd.Flags().StringVar(&member, "member", "", "Only requirements assigned to this team member")
	cmd.Flags().Var(&status, "status", "Only requirements with this status")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue requirements")
	cmd.Flags().BoolVar(&bare, "bare", false, "Skip joining client, category and member names")

	return cmd
}

func newRequirementShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg("requirement", args[0])
			if err != nil {
				return err
			}
			v, err := app.Requirements.GetByID(cmd.Context(), id, domain.IncludeRelations)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRequirement(v, app.now()))
			return nil
		},
	}
}

func newRequirementUpdateCmd(app *App) *cobra.Command {
	var f requirementFlags
	var clearDue, clearMember bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change requirement fields; only the flags given are updated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseIDArg("requirement", args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("due") && clearDue {
				return errors.New("--due and --clear-due are mutually exclusive")
			}
			if flags.Changed("member") && clearMember {
				return errors.New("--member and --clear-member are mutually exclusive")
			}

			p := domain.RequirementPatch{ClearDueDate: clearDue, ClearTeamMember: clearMember}
			if flags.Changed("title") {
				p.Title = &f.title
			}
			if flags.Changed("description") {
				p.Description = &f.description
			}
			if flags.Changed("priority") {
				p.Priority = &f.priority.p
			}
			if flags.Changed("status") {
				p.Status = &f.status.s
			}
			if flags.Changed("due") {
				p.DueDate = f.due.ptr()
			}
			if flags.Changed("client") {
				cid, err := resolveRef(ctx, "client", f.client, app.clientNames)
				if err != nil {
					return err
				}
				p.ClientID = &cid
			}
			if flags.Changed("category") {
				cid, err := resolveRef(ctx, "category", f.category, app.categoryNames)
				if err != nil {
					return err
				}
				p.CategoryID = &cid
			}
			if flags.Changed("member") {
				mid, err := resolveRef(ctx, "team member", f.owner, app.memberNames)
				if err != nil {
					return err
				}
				p.TeamMemberID = &mid
			}

			v, err := app.Requirements.Update(ctx, id, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated requirement %s %s\n", formatter.Bold(v.Title), formatter.Dim(fmt.Sprintf("#%d", v.ID)))
			return nil
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().BoolVar(&clearMember, "clear-member", false, "Unassign the team member")

	return cmd
}

func newRequirementRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg("requirement", args[0])
			if err != nil {
				return err
			}
			if ok, err := confirmDelete(app, yes, fmt.Sprintf("Delete requirement #%d?", id)); err != nil || !ok {
				return err
			}
			res, err := app.Requirements.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return reportDelete(cmd, "requirement", id, res)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/reqtrack/internal/cli/formatter"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// huhTheme matches the formatter palette: orange accent when focused,
// dimmed when blurred.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(huhTheme()).WithShowHelp(false)
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func clientForm(in *domain.ClientInput) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Agency name").Value(&in.AgencyName).Validate(requiredField("agency name")),
			huh.NewInput().Title("Contact person").Value(&in.ContactPerson).Validate(requiredField("contact person")),
			huh.NewInput().Title("Email").Placeholder("name@agency.com").Value(&in.Email).Validate(requiredField("email")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Phone").Value(&in.Phone),
			huh.NewInput().Title("Address").Value(&in.Address),
			huh.NewInput().Title("Website").Placeholder("https://").Value(&in.Website),
		),
	)
}

func nameForm(title string, name *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title(title).Value(name).Validate(requiredField("name")),
	))
}

func confirmForm(question string, ok *bool) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewConfirm().Title(question).Affirmative("Yes").Negative("No").Value(ok),
	))
}

// requirementDraft is what the requirement form edits. Ids of zero mean
// unselected; MemberID zero leaves the requirement unassigned.
type requirementDraft struct {
	Title, Description, Due string
	ClientID, CategoryID    int64
	MemberID                int64
	Priority                domain.Priority
	Status                  domain.Status
}

// requirementForm offers the stored clients, categories and members as
// choices. The Select fields need at least one option each.
func requirementForm(d *requirementDraft, clients, categories, members map[int64]string) *huh.Form {
	memberOpts := append([]huh.Option[int64]{huh.NewOption("Unassigned", int64(0))}, options(members)...)

	priorities := make([]huh.Option[domain.Priority], 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		priorities = append(priorities, huh.NewOption(string(p), p))
	}
	statuses := make([]huh.Option[domain.Status], 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		statuses = append(statuses, huh.NewOption(string(s), s))
	}

	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&d.Title).Validate(requiredField("title")),
			huh.NewText().Title("Description").Value(&d.Description),
		),
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Client").Options(options(clients)...).Value(&d.ClientID),
			huh.NewSelect[int64]().Title("Category").Options(options(categories)...).Value(&d.CategoryID),
			huh.NewSelect[int64]().Title("Assignee").Options(memberOpts...).Value(&d.MemberID),
		),
		huh.NewGroup(
			huh.NewSelect[domain.Priority]().Title("Priority").Options(priorities...).Value(&d.Priority),
			huh.NewSelect[domain.Status]().Title("Status").Options(statuses...).Value(&d.Status),
			huh.NewInput().Title("Due date (YYYY-MM-DD, blank for none)").Placeholder("2026-06-30").
				Value(&d.Due).Validate(validateOptionalDate),
		),
	)
}

// options sorts by name so prompts are stable.
func options(names map[int64]string) []huh.Option[int64] {
	ids := make([]int64, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if names[ids[i]] != names[ids[j]] {
			return names[ids[i]] < names[ids[j]]
		}
		return ids[i] < ids[j]
	})
	out := make([]huh.Option[int64], 0, len(ids))
	for _, id := range ids {
		out = append(out, huh.NewOption(names[id], id))
	}
	return out
}

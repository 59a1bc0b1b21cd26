package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

// priorityValue is a pflag.Value accepting Low/Medium/High in any case.
type priorityValue struct{ p domain.Priority }

func (v *priorityValue) String() string { return string(v.p) }
func (v *priorityValue) Type() string   { return "priority" }

func (v *priorityValue) Set(s string) error {
	p, err := domain.ParsePriority(s)
	if err != nil {
		return err
	}
	v.p = p
	return nil
}

// statusValue is a pflag.Value accepting the display statuses and their
// snake/kebab aliases.
type statusValue struct{ s domain.Status }

func (v *statusValue) String() string { return string(v.s) }
func (v *statusValue) Type() string   { return "status" }

func (v *statusValue) Set(s string) error {
	st, err := domain.ParseStatus(s)
	if err != nil {
		return err
	}
	v.s = st
	return nil
}

// dateValue is a pflag.Value holding an optional YYYY-MM-DD date.
type dateValue struct {
	t   time.Time
	set bool
}

func (v *dateValue) String() string {
	if !v.set {
		return ""
	}
	return v.t.Format(domain.DateLayout)
}

func (v *dateValue) Type() string { return "date" }

func (v *dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	v.t, v.set = t, true
	return nil
}

func (v *dateValue) ptr() *time.Time {
	if !v.set {
		return nil
	}
	t := v.t
	return &t
}

var (
	_ pflag.Value = (*priorityValue)(nil)
	_ pflag.Value = (*statusValue)(nil)
	_ pflag.Value = (*dateValue)(nil)
)

// requirementFlags are shared by requirement add and update.
type requirementFlags struct {
	title, description      string
	client, category, owner string
	priority                priorityValue
	status                  statusValue
	due                     dateValue
}

func (f *requirementFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Requirement title")
	fs.StringVar(&f.description, "description", "", "Longer description")
	fs.StringVar(&f.client, "client", "", "Client id or agency name")
	fs.StringVar(&f.category, "category", "", "Category id or name")
	fs.StringVar(&f.owner, "member", "", "Assigned team member id or name")
	fs.Var(&f.priority, "priority", "Low, Medium or High")
	fs.Var(&f.status, "status", `"To Do", "In Progress" or "Done"`)
	fs.Var(&f.due, "due", "Due date (YYYY-MM-DD)")
}

func parseIDArg(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}

// resolveRef turns a flag value into an id: digits are taken as an id,
// anything else is matched case-insensitively against names.
func resolveRef(ctx context.Context, kind, input string, names func(context.Context) (map[int64]string, error)) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%s is required", kind)
	}
	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		return id, nil
	}

	all, err := names(ctx)
	if err != nil {
		return 0, err
	}
	var matches []int64
	for id, name := range all {
		if strings.EqualFold(name, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%s name %q is ambiguous (%d matches); use the id", kind, input, len(matches))
	}
}

func (a *App) clientNames(ctx context.Context) (map[int64]string, error) {
	clients, err := a.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(clients))
	for _, c := range clients {
		out[c.ID] = c.AgencyName
	}
	return out, nil
}

func (a *App) categoryNames(ctx context.Context) (map[int64]string, error) {
	cats, err := a.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(cats))
	for _, c := range cats {
		out[c.ID] = c.Name
	}
	return out, nil
}

func (a *App) memberNames(ctx context.Context) (map[int64]string, error) {
	members, err := a.Members.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(members))
	for _, m := range members {
		out[m.ID] = m.Name
	}
	return out, nil
}

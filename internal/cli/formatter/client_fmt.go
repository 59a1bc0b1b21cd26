package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

// FormatClientList renders clients with their requirement counts.
func FormatClientList(items []domain.Counted[*domain.Client]) string {
	headers := []string{"ID", "AGENCY", "CONTACT", "EMAIL", "PHONE", "REQS"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		c := it.Item
		rows = append(rows, []string{
			Dim(strconv.FormatInt(c.ID, 10)),
			Bold(Truncate(c.AgencyName, 32)),
			Truncate(c.ContactPerson, 24),
			c.Email,
			OrPlaceholder(c.Phone),
			countCell(it.RequirementCount),
		})
	}
	return RenderTable(headers, rows)
}

// FormatClient renders one client's full record.
func FormatClient(c *domain.Client) string {
	var b strings.Builder
	fields := []struct{ label, value string }{
		{"Contact", c.ContactPerson},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", c.Address},
		{"Website", c.Website},
		{"Created", HumanDate(c.CreatedAt)},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%s  %s\n", Dim(fmt.Sprintf("%-8s", f.label)), OrPlaceholder(f.value))
	}
	return RenderBox(fmt.Sprintf("#%d %s", c.ID, c.AgencyName), strings.TrimRight(b.String(), "\n"))
}

// NamedRow is a category or team member row.
type NamedRow struct {
	ID               int64
	Name             string
	RequirementCount int
}

// FormatNamedList renders categories or team members with their counts.
func FormatNamedList(rows []NamedRow) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			Dim(strconv.FormatInt(r.ID, 10)),
			Bold(r.Name),
			countCell(r.RequirementCount),
		})
	}
	return RenderTable([]string{"ID", "NAME", "REQS"}, out)
}

func countCell(n int) string {
	if n == 0 {
		return Dim("0")
	}
	return strconv.Itoa(n)
}

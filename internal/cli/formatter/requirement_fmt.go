package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

// FormatRequirementList renders requirements in the order given. Related
// names show as placeholders when the views were read without relations.
func FormatRequirementList(views []*domain.RequirementView, now time.Time) string {
	headers := []string{"ID", "TITLE", "CLIENT", "CATEGORY", "ASSIGNEE", "PRIORITY", "STATUS", "DUE"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			Dim(strconv.FormatInt(v.ID, 10)),
			Truncate(v.Title, 40),
			OrPlaceholder(Truncate(v.ClientName, 24)),
			OrPlaceholder(v.CategoryName),
			OrPlaceholder(v.TeamMemberName),
			PriorityBadge(v.Priority),
			StatusPill(v.Status),
			DueDate(&v.Requirement, now),
		})
	}
	return RenderTable(headers, rows)
}

// FormatRequirement renders one requirement's full record.
func FormatRequirement(v *domain.RequirementView, now time.Time) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", Dim(fmt.Sprintf("%-9s", label)), value)
	}
	line("Client", fmt.Sprintf("%s %s", OrPlaceholder(v.ClientName), Dim(fmt.Sprintf("#%d", v.ClientID))))
	line("Category", fmt.Sprintf("%s %s", OrPlaceholder(v.CategoryName), Dim(fmt.Sprintf("#%d", v.CategoryID))))
	assignee := Dim("unassigned")
	if v.TeamMemberID != nil {
		assignee = fmt.Sprintf("%s %s", OrPlaceholder(v.TeamMemberName), Dim(fmt.Sprintf("#%d", *v.TeamMemberID)))
	}
	line("Assignee", assignee)
	line("Priority", PriorityBadge(v.Priority))
	line("Status", StatusPill(v.Status))
	line("Due", DueDate(&v.Requirement, now))
	line("Created", HumanDate(v.CreatedAt))
	line("Updated", HumanDate(v.UpdatedAt))
	if v.Description != "" {
		b.WriteString("\n" + v.Description + "\n")
	}
	return RenderBox(fmt.Sprintf("#%d %s", v.ID, v.Title), strings.TrimRight(b.String(), "\n"))
}

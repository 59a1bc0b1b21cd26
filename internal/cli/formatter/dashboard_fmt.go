package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

const progressWidth = 20

// FormatSummary renders the status and priority breakdown. Keys absent from
// the summary print as zero.
func FormatSummary(s domain.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", Bold("Total"), s.Total)
	if s.Overdue > 0 {
		fmt.Fprintf(&b, "   %s", StyleRed.Render(fmt.Sprintf("%d overdue", s.Overdue)))
	}
	b.WriteString("\n\n")

	for _, st := range domain.Statuses {
		n := s.ByStatus[st]
		label := lipgloss.NewStyle().Width(16).Render(StatusPill(st))
		fmt.Fprintf(&b, "%s %3d  %s\n", label, n, RenderProgress(Ratio(n, s.Total), progressWidth))
	}
	b.WriteString("\n")
	parts := make([]string, 0, len(domain.Priorities))
	for i := len(domain.Priorities) - 1; i >= 0; i-- {
		p := domain.Priorities[i]
		parts = append(parts, fmt.Sprintf("%s %d", PriorityBadge(p), s.ByPriority[p]))
	}
	b.WriteString(strings.Join(parts, "   "))
	return b.String()
}

// FormatDashboard renders the headline counts, the summary and the most
// recent requirements.
func FormatDashboard(d *domain.Dashboard, now time.Time) string {
	counts := fmt.Sprintf("%s %d   %s %d   %s %d",
		Dim("Clients"), d.ClientCount,
		Dim("Categories"), d.CategoryCount,
		Dim("Team"), d.MemberCount)

	var b strings.Builder
	b.WriteString(RenderBox("Requirements", counts+"\n\n"+FormatSummary(d.Summary)))
	b.WriteString("\n\n")
	b.WriteString(Header("Recent"))
	b.WriteString("\n")
	if len(d.Recent) == 0 {
		b.WriteString(Dim("No requirements yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(FormatRequirementList(d.Recent, now))
	}
	return b.String()
}

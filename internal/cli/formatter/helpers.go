package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

// placeholder fills empty optional cells.
const placeholder = "--"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom describes t relative to now in whole days: "Today",
// "In 3d", "2w ago" and so on.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(domain.CalendarDate(t).Sub(domain.CalendarDate(now)).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueDate renders a requirement's due date with urgency coloring: red when
// overdue, yellow within a week.
func DueDate(r *domain.Requirement, now time.Time) string {
	if r.DueDate == nil {
		return Dim(placeholder)
	}
	text := r.DueDate.Format(domain.DateLayout)
	if r.Status == domain.StatusDone {
		return StyleDim.Render(text)
	}
	rel := RelativeDateFrom(*r.DueDate, now)
	switch {
	case r.IsOverdue(now):
		return StyleRed.Render(text + " (" + rel + ")")
	case r.DueDate.Sub(domain.CalendarDate(now)) <= 7*24*time.Hour:
		return StyleYellow.Render(text + " (" + rel + ")")
	}
	return StyleFg.Render(text)
}

// HumanDate formats t as "Jan 2, 2006" in the local time zone.
func HumanDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

// Truncate shortens s to at most n visible runes, ending with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// OrPlaceholder returns s, or a dimmed placeholder when s is empty.
func OrPlaceholder(s string) string {
	if s == "" {
		return Dim(placeholder)
	}
	return s
}

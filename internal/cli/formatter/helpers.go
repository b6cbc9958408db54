package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// WeekdayName returns the English name of an ISO weekday (1 = Monday).
func WeekdayName(wd int) string {
	if wd < 1 || wd > 7 {
		return "?"
	}
	return weekdayNames[wd]
}

// ShortWeekday returns the three-letter weekday of d.
func ShortWeekday(d domain.CalendarDate) string {
	return WeekdayName(d.Weekday())[:3]
}

// HumanDate renders d relative to today when close, otherwise as
// "Mon 2026-10-19".
func HumanDate(d, today domain.CalendarDate) string {
	switch today.DaysUntil(d) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	}
	return ShortWeekday(d) + " " + d.String()
}

// RelativeDays describes how far d lies from today, e.g. "in 3d" or "2d ago".
func RelativeDays(d, today domain.CalendarDate) string {
	days := today.DaysUntil(d)
	switch {
	case days == 0:
		return "today"
	case days > 0 && days < 14:
		return fmt.Sprintf("in %dd", days)
	case days > 0:
		return fmt.Sprintf("in %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

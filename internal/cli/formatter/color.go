package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TaskStyle returns the color used for a task type throughout the CLI.
func TaskStyle(t domain.TaskType) lipgloss.Style {
	switch t {
	case domain.TaskReview:
		return StylePurple
	case domain.TaskTheory:
		return StyleBlue
	case domain.TaskQuestions, domain.TaskInformatives, domain.TaskLeiSeca:
		return StyleYellow
	default:
		return StyleDim
	}
}

// TaskBadge renders a task type as a short colored label.
func TaskBadge(t domain.TaskType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	return TaskStyle(t).Render(label)
}

// PlanStatusPill returns a colored indicator for a plan status.
func PlanStatusPill(status domain.PlanStatus) string {
	switch status {
	case domain.PlanPlanned:
		return StyleGreen.Render("● Planned")
	case domain.PlanExecuted:
		return StyleBlue.Render("✔ Executed")
	case domain.PlanRestDay:
		return StyleDim.Render("○ Rest day")
	default:
		return StyleDim.Render(string(status))
	}
}

// ReviewStatusPill returns a colored indicator for a review ledger entry.
func ReviewStatusPill(status domain.ReviewStatus) string {
	switch status {
	case domain.ReviewScheduled:
		return StyleGreen.Render("● Scheduled")
	case domain.ReviewExecuted:
		return StyleBlue.Render("✔ Executed")
	case domain.ReviewMissed:
		return StyleRed.Render("✖ Missed")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

package cli

import (
	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pautaHuhTheme returns a huh theme matching the formatter palette.
func pautaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(pautaHuhTheme()).WithShowHelp(false)
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	if err := confirmForm(title, "This cannot be undone.", &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

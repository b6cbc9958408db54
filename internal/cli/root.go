package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans      service.PlanService
	Executions service.ExecutionService
	Reviews    service.ReviewService
	Projection service.ProjectionService
	Profiles   service.ProfileService
	Subjects   service.SubjectService
	Import     service.ImportService

	UserID string
	Clock  service.Clock

	// IsInteractive reports whether stdin is a terminal. Confirmation
	// prompts and the calendar browser need one.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh form.
	Confirm func(title string) (bool, error)
	// RunProgram runs a bubbletea model to completion. Defaults to
	// tea.NewProgram with the alternate screen.
	RunProgram func(m tea.Model) error
}

// NewRootCmd creates the top-level "pauta" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pauta",
		Short:         "Daily study planner with spaced reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProfileCmd(app),
		newSubjectCmd(app),
		newPlanCmd(app),
		newExecuteCmd(app),
		newReviewsCmd(app),
		newCalendarCmd(app),
	)

	return root
}

func (a *App) today() domain.CalendarDate {
	if a.Clock == nil {
		return service.SystemClock{}.Today()
	}
	return a.Clock.Today()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return huhConfirm(title)
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// FormatError renders err as "CODE: message" when it carries a planning
// error code, keeping any wrapping context after the code.
func FormatError(err error) string {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return err.Error()
	}
	code := string(derr.Code)
	msg := strings.Replace(err.Error(), code+": ", "", 1)
	if msg == code {
		return code
	}
	return code + ": " + msg
}

// PrintError writes the one-line error report the binary exits with.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", FormatError(err))
}

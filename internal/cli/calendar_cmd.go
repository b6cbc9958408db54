package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/spf13/cobra"
)

const defaultCalendarDays = 14

func newCalendarCmd(app *App) *cobra.Command {
	var from, to string
	var persisted, browse bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Project daily plans over a date range without storing them",
		Long: `Simulate the plan of every date between --from and --to. Nothing is
written. By default every date is recomputed from the current profile; with
--persisted, dates that already have a stored plan show that plan instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.today()
			from = resolveDate(today, from)
			if to == "" {
				end, err := rangeEnd(from, defaultCalendarDays)
				if err != nil {
					return err
				}
				to = end
			}
			to = resolveDate(today, to)

			req := contract.NewCalendarProjectionRequest(app.UserID, from, to)
			req.IncludePersistedPlans = persisted

			if browse {
				if !app.interactive() {
					return fmt.Errorf("--browse needs an interactive terminal")
				}
				m, err := newCalendarBrowser(context.Background(), app, req)
				if err != nil {
					return err
				}
				return app.runProgram(m)
			}

			resp, err := app.Projection.Project(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjection(resp, today))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "today", "First date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (default two weeks from --from)")
	cmd.Flags().BoolVar(&persisted, "persisted", false, "Show stored plans where they exist")
	cmd.Flags().BoolVar(&browse, "browse", false, "Browse the projection interactively")

	return cmd
}

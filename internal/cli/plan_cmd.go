package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show, regenerate or discard a daily plan",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanRegenerateCmd(app),
		newPlanDiscardCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the plan for a date, generating and storing it if needed",
		Long: `Show the plan for a date (default today). Dates are YYYY-MM-DD or one of
today, tomorrow, yesterday, +N, -N. A plan shown once is stored and shown
unchanged afterwards; use "plan regenerate" to replace a future plan.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Plans.Generate(context.Background(), contract.NewGenerateDailyPlanRequest(app.UserID, dateArg(app, args)))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailyPlan(resp, app.today()))
			return nil
		},
	}
}

// confirmed resolves whether a destructive plan change may proceed. Without
// --yes the user is asked, but only on a terminal; otherwise the use case
// receives an unconfirmed request and refuses it.
func confirmed(app *App, yes bool, question string) (proceed, confirm bool, err error) {
	if yes {
		return true, true, nil
	}
	if !app.interactive() {
		return true, false, nil
	}
	ok, err := app.confirm(question)
	if err != nil {
		return false, false, err
	}
	return ok, ok, nil
}

func newPlanRegenerateCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "regenerate <date>",
		Short: "Recompose a future plan from the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := dateArg(app, args)
			proceed, confirm, err := confirmed(app, yes, fmt.Sprintf("Regenerate the plan for %s?", date))
			if err != nil {
				return err
			}
			if !proceed {
				fmt.Fprintln(cmd.OutOrStdout(), "Regeneration cancelled.")
				return nil
			}

			req := contract.NewRegenerateDailyPlanRequest(app.UserID, date)
			req.ConfirmApply = confirm
			resp, err := app.Plans.Regenerate(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailyPlan(resp, app.today()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm without prompting")

	return cmd
}

func newPlanDiscardCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "discard <date>",
		Short: "Delete the stored plan for a future date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := dateArg(app, args)
			proceed, confirm, err := confirmed(app, yes, fmt.Sprintf("Discard the stored plan for %s?", date))
			if err != nil {
				return err
			}
			if !proceed {
				fmt.Fprintln(cmd.OutOrStdout(), "Discard cancelled.")
				return nil
			}

			req := contract.NewDiscardDailyPlanRequest(app.UserID, date)
			req.ConfirmApply = confirm
			if err := app.Plans.Discard(context.Background(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Discarded the plan for %s\n", date)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm without prompting")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/spf13/cobra"
)

const defaultReviewWindowDays = 7

func newReviewsCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:     "reviews",
		Aliases: []string{"review"},
		Short:   "List the reviews still owed in a date range",
		Long: `List pending reviews between --from and --to (default today and a week
later). Reviews whose date has passed are closed as missed first and never
offered again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.today()
			from = resolveDate(today, from)
			if to == "" {
				to = fmt.Sprintf("+%d", defaultReviewWindowDays)
			}
			to = resolveDate(today, to)

			resp, err := app.Reviews.Compute(context.Background(), contract.NewComputeReviewTasksRequest(app.UserID, from, to))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReviewTasks(resp, today))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "today", "First date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (default a week after today)")

	return cmd
}

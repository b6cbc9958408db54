package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage theory subjects",
	}

	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectDeactivateCmd(app),
	)

	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var theoryMin int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a subject at the end of the rotation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Subjects.Add(context.Background(), app.UserID, strings.Join(args, " "), theoryMin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added subject %s with %s of theory\n",
				formatter.Bold(s.Name), formatter.FormatMinutes(s.RemainingTheoryMin))
			return nil
		},
	}

	cmd.Flags().IntVar(&theoryMin, "theory-min", 0, "Minutes of theory material to study")
	_ = cmd.MarkFlagRequired("theory-min")

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subjects in rotation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := app.Subjects.List(context.Background(), app.UserID, all)
			if err != nil {
				return err
			}
			if len(subjects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subjects found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubjectList(subjects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive subjects")

	return cmd
}

func newSubjectDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <name>",
		Short: "Stop allocating theory to a subject",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Subjects.Deactivate(context.Background(), app.UserID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated subject %s\n", formatter.Bold(s.Name))
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or import the study profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileImportCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the weekly budget and review policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the profile and upsert subjects from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportProfile(context.Background(), app.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}

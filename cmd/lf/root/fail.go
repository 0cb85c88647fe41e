package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/ui"
)

func newFailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fail <id>",
		Short: "Record a failure or an indulged bad habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := startupCheck(ctx, cmd, store); err != nil {
				return err
			}

			id, err := resolveRoutineID(store, args[0])
			if err != nil {
				return err
			}

			res, err := store.FailRoutine(ctx, id)
			if err = reportSync(cmd, err); err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to do — that routine is gone."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n",
				ui.Bad.Render("✗ "+res.Routine.Title),
				ui.Bad.Render(fmt.Sprintf("-%d HP", res.HPLost)),
				ui.Bad.Render(fmt.Sprintf("-%d XP", res.XPLost)))
			if res.Died {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s You lost 10%% of your XP and credits; HP restored to half.\n",
					ui.BadgeDeath, ui.IconSkull)
			}
			return nil
		},
	}

	return cmd
}

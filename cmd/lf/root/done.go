package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a routine and collect the reward",
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

			res, err := store.CompleteRoutine(ctx, id)
			if err = reportSync(cmd, err); err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to do — that routine is gone."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n",
				ui.Good.Render(ui.IconDone+" "+res.Routine.Title),
				ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPGained)),
				ui.Gold.Render(fmt.Sprintf("+%d %s", res.CreditsGained, ui.IconCoin)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s Level %d → %d, HP fully restored!\n",
					ui.BadgeLevelUp, ui.IconSparkle, res.LevelBefore, res.LevelAfter)
			}
			if res.TodayCount > 1 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Completed %d times today.", res.TodayCount)))
			}
			return nil
		},
	}

	return cmd
}

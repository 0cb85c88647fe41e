package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/game"
	"lifeforge/internal/tui"
	"lifeforge/internal/ui"
)

func newCheckinCmd() *cobra.Command {
	var confirmed []string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Run the daily check-in and review missed dailies",
		Long: `Checkin reconciles the day change. On a clean day it resets your dailies
and extends the streak. If dailies were missed, it asks which ones you
actually finished; the rest cost their fail penalty (HP and XP).

Use --done with routine ids to resolve non-interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := store.RunDailyCheck(ctx)
			if err != nil {
				if err = reportSync(cmd, err); err != nil {
					return err
				}
			}
			if res.NoOp && len(store.PendingReview()) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already checked in today. See you tomorrow!"))
				return nil
			}
			if res.StreakExtended {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Clean day! Streak is now %d.\n", ui.Good.Render(ui.IconFlame), res.Streak)
				return nil
			}
			if len(store.PendingReview()) == 0 {
				return nil
			}

			var review *game.ReviewResult
			if cmd.Flags().Changed("done") {
				ids := make([]string, 0, len(confirmed))
				for _, arg := range confirmed {
					id, err := resolveRoutineID(store, arg)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
				review, err = store.ResolvePendingDailies(ctx, ids)
				if err != nil {
					if err = reportSync(cmd, err); err != nil {
						return err
					}
				}
			} else {
				resolution, err := tui.RunReview(ctx, store, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if resolution.SyncWarn != nil {
					_ = reportSync(cmd, resolution.SyncWarn)
				}
				if resolution.Result == nil {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Review postponed — nothing was changed."))
					return nil
				}
				review = resolution.Result
			}

			printReview(cmd, review)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&confirmed, "done", nil, "Ids of pending dailies that were actually completed")

	return cmd
}

func printReview(cmd *cobra.Command, res *game.ReviewResult) {
	if res.StreakReset {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Missed dailies: %s %s — streak reset.\n",
			ui.Warn.Render(ui.IconWarn),
			ui.Bad.Render(fmt.Sprintf("-%d HP", res.HPPenalty)),
			ui.Bad.Render(fmt.Sprintf("-%d XP", res.XPPenalty)))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s All confirmed! Streak is now %d.\n", ui.Good.Render(ui.IconFlame), res.Streak)
	}
	if res.Died {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s You lost 10%% of your XP and credits; HP restored to half.\n",
			ui.BadgeDeath, ui.IconSkull)
	}
}

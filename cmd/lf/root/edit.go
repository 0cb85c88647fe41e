package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/engine"
	"lifeforge/internal/ui"
)

func newEditCmd() *cobra.Command {
	var (
		title        string
		diff         string
		days         []int
		pomodoroTime int
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a routine",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("routine id is required")
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
			var rt engine.Routine
			for _, r := range store.Routines() {
				if r.ID == id {
					rt = r
					break
				}
			}

			if cmd.Flags().Changed("title") {
				rt.Title = title
			}
			if cmd.Flags().Changed("diff") {
				rt.Difficulty, err = engine.ParseDifficulty(diff)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("days") {
				rt.DaysOfWeek = days
			}
			if cmd.Flags().Changed("pomodoro") {
				rt.IsPomodoro = pomodoroTime > 0
				rt.PomodoroTime = pomodoroTime
			}

			if err = reportSync(cmd, store.EditRoutine(ctx, rt)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render("✏️ Updated"), rt.Title, ui.Muted.Render("#"+shortID(rt.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&diff, "diff", "d", "", "New difficulty (easy|medium|hard|epic)")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Days of week for dailies (0=Sun..6=Sat)")
	cmd.Flags().IntVar(&pomodoroTime, "pomodoro", 0, "Pomodoro length in minutes (0 = off)")

	return cmd
}

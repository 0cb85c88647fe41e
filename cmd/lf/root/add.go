package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/engine"
	"lifeforge/internal/game"
	"lifeforge/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		typ          string
		diff         string
		habitType    string
		days         []int
		pomodoroTime int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a routine (daily, habit or to-do)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			parsedType, err := engine.ParseRoutineType(typ)
			if err != nil {
				return err
			}
			parsedDiff, err := engine.ParseDifficulty(diff)
			if err != nil {
				return err
			}

			in := game.AddRoutineInput{
				Title:        args[0],
				Type:         parsedType,
				Difficulty:   parsedDiff,
				DaysOfWeek:   days,
				IsPomodoro:   pomodoroTime > 0,
				PomodoroTime: pomodoroTime,
			}
			if habitType != "" {
				in.HabitType = engine.HabitType(habitType)
			}

			rt, err := store.AddRoutine(ctx, in)
			if err = reportSync(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render("➕ Added"),
				ui.TypeIcon(string(rt.Type)),
				rt.Title,
				ui.Muted.Render("#"+shortID(rt.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "daily", "Routine type (daily|habit|todo)")
	cmd.Flags().StringVarP(&diff, "diff", "d", "medium", "Difficulty (easy|medium|hard|epic)")
	cmd.Flags().StringVar(&habitType, "habit-type", "", "Habit orientation (positive|negative)")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Days of week for dailies (0=Sun..6=Sat)")
	cmd.Flags().IntVar(&pomodoroTime, "pomodoro", 0, "Pomodoro length in minutes (0 = off)")

	return cmd
}

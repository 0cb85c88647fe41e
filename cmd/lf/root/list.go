package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/engine"
	"lifeforge/internal/ui"
)

func newListCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routines",
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

			routines := store.Routines()
			if len(routines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No routines yet. Try: lf add \"Morning run\" --type daily"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Routines"))
			for _, r := range routines {
				if !r.Active && !showAll {
					continue
				}
				printRoutine(cmd, store.TodayCount(r.ID), r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include retired to-dos")

	return cmd
}

func printRoutine(cmd *cobra.Command, todayCount int, r engine.Routine) {
	status := " "
	if r.CompletedAt != nil {
		status = ui.Good.Render("✓")
	}
	if !r.Active {
		status = ui.Muted.Render("·")
	}

	line := fmt.Sprintf("%s %s %s %s %s",
		status,
		ui.TypeIcon(string(r.Type)),
		r.Title,
		ui.DifficultyText(string(r.Difficulty)),
		ui.Muted.Render("#"+shortID(r.ID)))
	if r.IsPomodoro {
		line += " " + ui.Muted.Render(fmt.Sprintf("%s %dm", ui.IconTomato, r.PomodoroTime))
	}
	if todayCount > 1 {
		line += " " + ui.Muted.Render(fmt.Sprintf("×%d today", todayCount))
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)

	for _, item := range r.Checklist {
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("    "+mark+" "+item.Title))
	}
}

package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeforge/internal/engine"
	"lifeforge/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hero stats",
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

			s := store.Stats()
			threshold := engine.LevelThreshold(s.Level)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Hero Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", s.Level))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Key.Render("HP:"),
				hpBar(s.HP, s.MaxHP),
				ui.Muted.Render(fmt.Sprintf("%.0f/%.0f %s", s.HP, s.MaxHP, ui.IconHeart)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("%.1f / %.1f to next level", s.XP, threshold)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Credits", fmt.Sprintf("%d %s", s.Credits, ui.IconCoin)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d %s", s.Streak, ui.IconFlame)))

			if len(store.PendingReview()) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Pending daily review — run 'lf checkin'."))
			}
			if store.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Some changes are not synced yet — run 'lf sync'."))
			}
			return nil
		},
	}

	return cmd
}

func hpBar(hp, maxHP float64) string {
	const width = 20
	if maxHP <= 0 {
		return ""
	}
	filled := int(hp / maxHP * width)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if hp/maxHP < 0.3 {
		return ui.Bad.Render(bar)
	}
	return ui.Good.Render(bar)
}

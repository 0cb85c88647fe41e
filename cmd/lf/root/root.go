package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifeforge/internal/game"
	"lifeforge/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lf",
	Short:         "LifeForge — turn your routine into an RPG",
	Long:          "LifeForge is a local-first habit tracker with RPG progression: dailies, habits and to-dos that earn XP, credits and streaks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newFailCmd(),
		newListCmd(),
		newStatusCmd(),
		newCheckinCmd(),
		newShopCmd(),
		newBagCmd(),
		newRemindCmd(),
		newEditCmd(),
		newRmCmd(),
		newSyncCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

// reportSync downgrades a sync failure to a warning: the local mutation
// stands and a later `lf sync` will heal the drift.
func reportSync(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	var syncErr game.SyncError
	if errors.As(err, &syncErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" Saved locally, but the sync failed: "+syncErr.Error()))
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Muted.Render("Run 'lf sync' to retry."))
		return nil
	}
	return err
}

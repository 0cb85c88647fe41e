package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/ui"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Retry writes that failed to reach the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !store.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to sync."))
				return nil
			}
			if err := store.FlushPending(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" All pending writes synced."))
			return nil
		},
	}

	return cmd
}

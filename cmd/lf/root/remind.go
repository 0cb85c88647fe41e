package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifeforge/internal/ui"
)

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send yourself the check-in reminder now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.SendReminder(ctx); err != nil {
				// The reminder is best-effort; a failed send changes nothing.
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" Reminder not sent: "+err.Error()))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBell+" Reminder sent."))
			return nil
		},
	}

	cmd.AddCommand(newRemindSetCmd())

	return cmd
}

func newRemindSetCmd() *cobra.Command {
	var (
		phone string
		off   bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Configure the reminder contact number",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err = reportSync(cmd, store.SetReminderPrefs(ctx, phone, !off)); err != nil {
				return err
			}
			if off {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Reminders disabled."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBell+" Reminders enabled for "+phone+"."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Destination phone number")
	cmd.Flags().BoolVar(&off, "off", false, "Disable reminders")

	return cmd
}

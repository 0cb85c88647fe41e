package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeforge/internal/game"
	"lifeforge/internal/ui"
)

func newBagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bag",
		Short: "Look into your inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			inv := store.Inventory()
			if len(inv) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Your bag is empty. Earn credits and visit the shop."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBag, "Inventory"))
			for _, entry := range inv {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ×%d %s\n",
					entry.Item.Name,
					entry.Quantity,
					ui.Muted.Render("#"+shortID(entry.ID)))
			}
			return nil
		},
	}

	cmd.AddCommand(newBagUseCmd())

	return cmd
}

func newBagUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Use one of an owned item",
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

			id, err := resolveInventoryID(store, args[0])
			if err != nil {
				return err
			}

			res, err := store.UseInventoryItem(ctx, id)
			if err = reportSync(cmd, err); err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to use."))
				return nil
			}

			line := fmt.Sprintf("%s Used %s.", ui.Good.Render(ui.IconSparkle), res.Item.Name)
			if res.Remaining > 0 {
				line += " " + ui.Muted.Render(fmt.Sprintf("%d left.", res.Remaining))
			} else {
				line += " " + ui.Muted.Render("That was the last one.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}

func resolveInventoryID(store *game.Store, arg string) (string, error) {
	var matches []string
	for _, entry := range store.Inventory() {
		if entry.ID == arg {
			return entry.ID, nil
		}
		if strings.HasPrefix(entry.ID, arg) || strings.EqualFold(entry.Item.Name, arg) {
			matches = append(matches, entry.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no inventory entry matches %q", arg)
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}

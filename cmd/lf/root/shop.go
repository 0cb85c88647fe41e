package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeforge/internal/engine"
	"lifeforge/internal/game"
	"lifeforge/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Manage the reward shop",
	}

	cmd.AddCommand(
		newShopListCmd(),
		newShopAddCmd(),
		newShopEditCmd(),
		newShopRmCmd(),
		newShopBuyCmd(),
	)

	return cmd
}

func newShopListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shop items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			items := store.ShopItems()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("The shop is empty. Try: lf shop add \"Movie night\" --cost 50"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconShop, fmt.Sprintf("Shop — %d %s available", store.Stats().Credits, ui.IconCoin)))
			for _, item := range items {
				line := fmt.Sprintf("%s %s %s",
					item.Name,
					ui.Gold.Render(fmt.Sprintf("%d %s", item.Cost, ui.IconCoin)),
					ui.Muted.Render("#"+shortID(item.ID)))
				if item.Description != "" {
					line += " " + ui.Muted.Render("— "+item.Description)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newShopAddCmd() *cobra.Command {
	var (
		description string
		cost        int
		itemType    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the shop",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			item, err := store.CreateShopItem(ctx, game.CreateShopItemInput{
				Name:        args[0],
				Description: description,
				Cost:        cost,
				Type:        engine.ItemType(itemType),
			})
			if err = reportSync(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %s %s\n",
				ui.Good.Render("➕ Stocked"),
				item.Name,
				ui.Gold.Render(fmt.Sprintf("%d %s", item.Cost, ui.IconCoin)),
				ui.Muted.Render("#"+shortID(item.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Item description")
	cmd.Flags().IntVar(&cost, "cost", 0, "Price in credits")
	cmd.Flags().StringVar(&itemType, "type", "consumable", "Item type (consumable|permanent)")

	return cmd
}

func newShopEditCmd() *cobra.Command {
	var (
		name        string
		description string
		cost        int
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a shop item",
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

			id, err := resolveShopItemID(store, args[0])
			if err != nil {
				return err
			}
			var item engine.ShopItem
			for _, it := range store.ShopItems() {
				if it.ID == id {
					item = it
					break
				}
			}

			if cmd.Flags().Changed("name") {
				item.Name = name
			}
			if cmd.Flags().Changed("desc") {
				item.Description = description
			}
			if cmd.Flags().Changed("cost") {
				item.Cost = cost
			}

			if err = reportSync(cmd, store.EditShopItem(ctx, item)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s now costs %s\n",
				ui.Good.Render("✏️ Updated"), item.Name,
				ui.Gold.Render(fmt.Sprintf("%d %s", item.Cost, ui.IconCoin)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().IntVar(&cost, "cost", 0, "New price in credits")

	return cmd
}

func newShopRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item from the shop",
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

			id, err := resolveShopItemID(store, args[0])
			if err != nil {
				return err
			}
			if err = reportSync(cmd, store.DeleteShopItem(ctx, id)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Removed #"+shortID(id)))
			return nil
		},
	}
}

func newShopBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <id>",
		Short: "Buy an item with your credits",
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

			id, err := resolveShopItemID(store, args[0])
			if err != nil {
				return err
			}

			res, err := store.BuyItem(ctx, id)
			var broke game.InsufficientCreditsError
			if errors.As(err, &broke) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Bad.Render(fmt.Sprintf("Not enough credits: need %d, have %d.", broke.Cost, broke.Credits)))
				return nil
			}
			if err = reportSync(cmd, err); err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("That item is gone."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s added to your bag (×%d). %s left.\n",
				ui.Good.Render(ui.IconBag+" Bought!"),
				res.Item.Name,
				res.Quantity,
				ui.Gold.Render(fmt.Sprintf("%d %s", res.Credits, ui.IconCoin)))
			return nil
		},
	}
}

func resolveShopItemID(store *game.Store, arg string) (string, error) {
	var matches []engine.ShopItem
	for _, item := range store.ShopItems() {
		if item.ID == arg {
			return item.ID, nil
		}
		if strings.HasPrefix(item.ID, arg) || strings.EqualFold(item.Name, arg) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		return "", fmt.Errorf("no shop item matches %q", arg)
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}

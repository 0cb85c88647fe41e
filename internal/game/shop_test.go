package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeforge/internal/engine"
)

func grantCredits(t *testing.T, s *Store, remote *fakeRemote, credits int) {
	t.Helper()
	s.state.Stats.Credits = credits
	remote.users["hero"].Stats = s.state.Stats
}

func TestBuyItemRejectsWhenTooExpensive(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	item, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Spa day", Cost: 500})
	require.NoError(t, err)
	grantCredits(t, s, remote, 499)

	_, err = s.BuyItem(ctx, item.ID)
	var ierr InsufficientCreditsError
	require.ErrorAs(t, err, &ierr)
	require.Equal(t, 500, ierr.Cost)
	require.Equal(t, 499, ierr.Credits)
	require.Equal(t, 499, s.Stats().Credits, "a rejected purchase changes nothing")
	require.Empty(t, s.Inventory())
}

func TestBuyItemStaleIDIsSilentNoOp(t *testing.T) {
	s := newTestStore(t, newFakeRemote())

	res, err := s.BuyItem(context.Background(), "gone")
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestBuyItemStacksQuantity(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	item, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Coffee", Cost: 10})
	require.NoError(t, err)
	grantCredits(t, s, remote, 30)

	res, err := s.BuyItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1, res.Quantity)
	require.Equal(t, 20, res.Credits)

	res, err = s.BuyItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 2, res.Quantity, "a repeat purchase stacks, no second entry")
	require.Equal(t, 10, res.Credits)

	require.Len(t, s.Inventory(), 1)
	require.Len(t, remote.inventory, 1)
	for _, row := range remote.inventory {
		require.Equal(t, 2, row.Quantity)
	}
	require.Equal(t, 10, remote.users["hero"].Stats.Credits)
}

func TestUseInventoryItemDecrements(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	item, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Coffee", Cost: 10})
	require.NoError(t, err)
	grantCredits(t, s, remote, 20)
	_, err = s.BuyItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = s.BuyItem(ctx, item.ID)
	require.NoError(t, err)

	invID := s.Inventory()[0].ID
	res, err := s.UseInventoryItem(ctx, invID)
	require.NoError(t, err)
	require.Equal(t, 1, res.Remaining)
	require.Len(t, s.Inventory(), 1)
	require.Equal(t, 1, remote.inventory[invID].Quantity)
	require.Equal(t, 1, remote.usages)
}

func TestUseLastInventoryItemRemovesEntry(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	item, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Coffee", Cost: 10})
	require.NoError(t, err)
	grantCredits(t, s, remote, 10)
	_, err = s.BuyItem(ctx, item.ID)
	require.NoError(t, err)

	invID := s.Inventory()[0].ID
	res, err := s.UseInventoryItem(ctx, invID)
	require.NoError(t, err)
	require.Equal(t, 0, res.Remaining)
	require.Empty(t, s.Inventory())
	require.NotContains(t, remote.inventory, invID)
	require.Equal(t, 1, remote.usages)

	res, err = s.UseInventoryItem(ctx, invID)
	require.NoError(t, err)
	require.Nil(t, res, "a spent entry behaves like any stale id")
}

func TestDeleteShopItemDropsDanglingInventoryOnFetch(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	item, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Coffee", Cost: 10})
	require.NoError(t, err)
	grantCredits(t, s, remote, 10)
	_, err = s.BuyItem(ctx, item.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteShopItem(ctx, item.ID))
	require.Empty(t, s.Inventory(), "local entries for the item go with it")
	require.NoError(t, s.FetchShopAndInventory(ctx))
	require.Empty(t, s.ShopItems())
	require.Empty(t, s.Inventory(), "rows pointing at a deleted item are filtered")
}

func TestBuyItemSyncFailureKeepsPurchase(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	item, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Coffee", Cost: 10})
	require.NoError(t, err)
	grantCredits(t, s, remote, 10)

	remote.failOn("UpsertInventory")
	res, err := s.BuyItem(ctx, item.ID)
	var serr SyncError
	require.ErrorAs(t, err, &serr)
	require.NotNil(t, res)
	require.Equal(t, 0, s.Stats().Credits, "the local purchase stands")
	require.Len(t, s.Inventory(), 1)
	require.True(t, s.Dirty())

	remote.heal()
	require.NoError(t, s.FlushPending(ctx))
	require.Len(t, remote.inventory, 1)
	require.Equal(t, 0, remote.users["hero"].Stats.Credits)
}

func TestEditShopItemSyncsNewPrice(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	item, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Coffee", Cost: 10})
	require.NoError(t, err)

	edited := *item
	edited.Cost = 15
	require.NoError(t, s.EditShopItem(ctx, edited))
	require.Equal(t, 15, s.ShopItems()[0].Cost)
	require.Equal(t, 15, remote.shop[item.ID].Cost)
}

func TestCatalogGrowthKeepsInventoryLinked(t *testing.T) {
	remote := newFakeRemote()
	s := newTestStore(t, remote)
	ctx := context.Background()

	coffee, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: "Coffee", Cost: 10})
	require.NoError(t, err)
	grantCredits(t, s, remote, 10)
	_, err = s.BuyItem(ctx, coffee.ID)
	require.NoError(t, err)

	// Growing the catalog moves its backing array; the inventory entry
	// must follow the item, not the old array.
	_, err = s.CreateShopItem(ctx, CreateShopItemInput{Name: "Tea", Cost: 5})
	require.NoError(t, err)

	edited := *coffee
	edited.Cost = 12
	require.NoError(t, s.EditShopItem(ctx, edited))
	require.Equal(t, 12, s.Inventory()[0].Item.Cost)
	require.Same(t, &s.state.ShopItems[0], s.Inventory()[0].Item)
}

func TestCreateShopItemValidation(t *testing.T) {
	s := newTestStore(t, newFakeRemote())
	ctx := context.Background()

	var verr ValidationError
	_, err := s.CreateShopItem(ctx, CreateShopItemInput{Name: " "})
	require.ErrorAs(t, err, &verr)
	_, err = s.CreateShopItem(ctx, CreateShopItemInput{Name: "x", Cost: -1})
	require.ErrorAs(t, err, &verr)
	_, err = s.CreateShopItem(ctx, CreateShopItemInput{Name: "x", Type: "cursed"})
	require.ErrorAs(t, err, &verr)

	var nferr NotFoundError
	require.ErrorAs(t, s.EditShopItem(ctx, engine.ShopItem{ID: "gone", Name: "x"}), &nferr)
	require.ErrorAs(t, s.DeleteShopItem(ctx, "gone"), &nferr)
}

package game

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"lifeforge/internal/engine"
	"lifeforge/internal/storage"
)

type CreateShopItemInput struct {
	Name        string
	Description string
	Cost        int
	Stock       *int
	Type        engine.ItemType
}

func (s *Store) CreateShopItem(ctx context.Context, in CreateShopItemInput) (*engine.ShopItem, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ValidationError{Field: "name", Reason: "required"}
	}
	if in.Cost < 0 {
		return nil, ValidationError{Field: "cost", Reason: "must be >= 0"}
	}
	typ := in.Type
	if typ == "" {
		typ = engine.ItemConsumable
	}
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: "must be consumable or permanent"}
	}

	item := engine.ShopItem{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Cost:        in.Cost,
		Stock:       in.Stock,
		Type:        typ,
	}
	s.state.ShopItems = append(s.state.ShopItems, item)
	s.relinkInventory()
	s.snapshotBestEffort()

	if err := s.remote.InsertShopItem(ctx, s.session.UserID, item); err != nil {
		s.markDirty(dirtyShopItem(item.ID))
		return &item, SyncError{Op: "shop item insert", Err: err}
	}
	return &item, nil
}

func (s *Store) EditShopItem(ctx context.Context, item engine.ShopItem) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if strings.TrimSpace(item.Name) == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if item.Cost < 0 {
		return ValidationError{Field: "cost", Reason: "must be >= 0"}
	}

	idx := s.findShopItem(item.ID)
	if idx < 0 {
		return NotFoundError{Kind: "shop item", ID: item.ID}
	}
	s.state.ShopItems[idx] = item
	s.snapshotBestEffort()

	if err := s.remote.UpdateShopItem(ctx, item); err != nil {
		s.markDirty(dirtyShopItem(item.ID))
		return SyncError{Op: "shop item update", Err: err}
	}
	return nil
}

// DeleteShopItem removes the catalog entry along with the local
// inventory entries that pointed at it; their remote rows are filtered
// out on the next fetch.
func (s *Store) DeleteShopItem(ctx context.Context, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	idx := s.findShopItem(id)
	if idx < 0 {
		return NotFoundError{Kind: "shop item", ID: id}
	}
	s.state.ShopItems = append(s.state.ShopItems[:idx], s.state.ShopItems[idx+1:]...)
	s.relinkInventory()
	s.snapshotBestEffort()

	if err := s.remote.DeleteShopItem(ctx, id); err != nil {
		s.markDirty(dirtyShopItem(id))
		return SyncError{Op: "shop item delete", Err: err}
	}
	return nil
}

// relinkInventory re-points inventory entries at the current catalog
// slice. Appends and removals move the backing array, which would leave
// the shared item pointers aliasing stale elements. Entries whose item
// left the catalog are dropped, matching the fetch behavior.
func (s *Store) relinkInventory() {
	byID := map[string]*engine.ShopItem{}
	for i := range s.state.ShopItems {
		byID[s.state.ShopItems[i].ID] = &s.state.ShopItems[i]
	}
	kept := s.state.Inventory[:0]
	for _, inv := range s.state.Inventory {
		item, ok := byID[inv.Item.ID]
		if !ok {
			continue
		}
		inv.Item = item
		kept = append(kept, inv)
	}
	s.state.Inventory = kept
}

func (s *Store) findShopItem(id string) int {
	for i := range s.state.ShopItems {
		if s.state.ShopItems[i].ID == id {
			return i
		}
	}
	return -1
}

// PurchaseResult reports a purchase for display.
type PurchaseResult struct {
	Item     engine.ShopItem
	Quantity int
	Credits  int
}

// BuyItem spends credits on a catalog item: existing inventory entries
// gain quantity, otherwise a new entry starts at one. A purchase the
// player cannot afford is rejected with no state change.
func (s *Store) BuyItem(ctx context.Context, itemID string) (*PurchaseResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	idx := s.findShopItem(itemID)
	if idx < 0 {
		return nil, nil
	}
	item := &s.state.ShopItems[idx]
	if s.state.Stats.Credits < item.Cost {
		return nil, InsufficientCreditsError{Cost: item.Cost, Credits: s.state.Stats.Credits}
	}

	s.state.Stats.Credits -= item.Cost

	var entry *engine.InventoryItem
	for i := range s.state.Inventory {
		if s.state.Inventory[i].Item.ID == itemID {
			entry = &s.state.Inventory[i]
			break
		}
	}
	if entry != nil {
		entry.Quantity++
	} else {
		s.state.Inventory = append(s.state.Inventory, engine.InventoryItem{
			ID:          uuid.NewString(),
			Item:        item,
			Quantity:    1,
			PurchasedAt: s.now(),
		})
		entry = &s.state.Inventory[len(s.state.Inventory)-1]
	}
	s.snapshotBestEffort()

	res := &PurchaseResult{Item: *item, Quantity: entry.Quantity, Credits: s.state.Stats.Credits}

	row := storage.InventoryRow{
		ID:          entry.ID,
		ItemID:      itemID,
		Quantity:    entry.Quantity,
		PurchasedAt: entry.PurchasedAt,
	}
	if err := s.remote.UpsertInventory(ctx, s.session.UserID, row); err != nil {
		s.markDirty(dirtyInventory(entry.ID))
		s.markDirty(dirtyStats)
		return res, SyncError{Op: "inventory upsert", Err: err}
	}
	if err := s.remote.UpdateUserStats(ctx, s.session.UserID, s.state.Stats); err != nil {
		s.markDirty(dirtyStats)
		return res, SyncError{Op: "stats update", Err: err}
	}
	return res, nil
}

// UseResult reports an item use for display.
type UseResult struct {
	Item      engine.ShopItem
	Remaining int
}

// UseInventoryItem consumes one unit; the entry disappears at zero. Usage
// is recorded in the append-only usage log.
func (s *Store) UseInventoryItem(ctx context.Context, invID string) (*UseResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	idx := -1
	for i := range s.state.Inventory {
		if s.state.Inventory[i].ID == invID {
			idx = i
			break
		}
	}
	if idx < 0 || s.state.Inventory[idx].Quantity <= 0 {
		return nil, nil
	}

	entry := &s.state.Inventory[idx]
	entry.Quantity--
	res := &UseResult{Item: *entry.Item, Remaining: entry.Quantity}
	removed := entry.Quantity <= 0

	var row storage.InventoryRow
	if removed {
		s.state.Inventory = append(s.state.Inventory[:idx], s.state.Inventory[idx+1:]...)
	} else {
		row = storage.InventoryRow{
			ID:          entry.ID,
			ItemID:      entry.Item.ID,
			Quantity:    entry.Quantity,
			PurchasedAt: entry.PurchasedAt,
		}
	}
	s.snapshotBestEffort()

	if removed {
		if err := s.remote.DeleteInventory(ctx, invID); err != nil {
			s.markDirty(dirtyInventory(invID))
			return res, SyncError{Op: "inventory delete", Err: err}
		}
	} else {
		if err := s.remote.UpsertInventory(ctx, s.session.UserID, row); err != nil {
			s.markDirty(dirtyInventory(invID))
			return res, SyncError{Op: "inventory upsert", Err: err}
		}
	}
	if err := s.remote.InsertInventoryUsage(ctx, invID, s.session.UserID, s.now()); err != nil {
		return res, SyncError{Op: "inventory usage", Err: err}
	}
	return res, nil
}

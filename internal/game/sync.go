package game

import (
	"context"
	"fmt"
	"strings"

	"lifeforge/internal/storage"
)

// Dirty keys name the entity whose remote copy trails the local state.
const (
	dirtyStats = "stats"
	dirtyPrefs = "prefs"
)

func dirtyRoutine(id string) string   { return "routine:" + id }
func dirtyShopItem(id string) string  { return "shop:" + id }
func dirtyInventory(id string) string { return "inventory:" + id }

// markDirty records the entity for a later retry and persists the marker
// so the backlog survives a restart.
func (s *Store) markDirty(key string) {
	s.dirty[key] = true
	s.snapshotBestEffort()
}

// Dirty reports whether any entity still awaits a successful sync.
func (s *Store) Dirty() bool {
	return len(s.dirty) > 0 || len(s.pendingLogs) > 0
}

// FlushPending retries every failed remote write. Each write is
// idempotent by entity id, so retrying after a partial failure is safe.
// The first error stops the flush; whatever synced stays cleared.
func (s *Store) FlushPending(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	defer s.snapshotBestEffort()

	for len(s.pendingLogs) > 0 {
		if err := s.remote.InsertRoutineLog(ctx, s.pendingLogs[0]); err != nil {
			return SyncError{Op: "routine log", Err: err}
		}
		s.pendingLogs = s.pendingLogs[1:]
	}

	for key := range s.dirty {
		if err := s.flushKey(ctx, key); err != nil {
			return err
		}
		delete(s.dirty, key)
	}
	return nil
}

func (s *Store) flushKey(ctx context.Context, key string) error {
	switch {
	case key == dirtyStats:
		if err := s.remote.UpdateUserStats(ctx, s.session.UserID, s.state.Stats); err != nil {
			return SyncError{Op: "stats update", Err: err}
		}
	case key == dirtyPrefs:
		if s.pendingPrefs == nil {
			return nil
		}
		if err := s.remote.UpdateUserPrefs(ctx, s.session.UserID, s.pendingPrefs.PhoneNumber, s.pendingPrefs.Active); err != nil {
			return SyncError{Op: "prefs update", Err: err}
		}
		s.pendingPrefs = nil
	case strings.HasPrefix(key, "routine:"):
		id := strings.TrimPrefix(key, "routine:")
		if rt := s.findRoutine(id); rt != nil {
			if err := s.remote.InsertRoutine(ctx, s.session.UserID, *rt); err != nil {
				return SyncError{Op: "routine upsert", Err: err}
			}
		} else if err := s.remote.DeleteRoutine(ctx, id); err != nil {
			return SyncError{Op: "routine delete", Err: err}
		}
	case strings.HasPrefix(key, "shop:"):
		id := strings.TrimPrefix(key, "shop:")
		if idx := s.findShopItem(id); idx >= 0 {
			if err := s.remote.InsertShopItem(ctx, s.session.UserID, s.state.ShopItems[idx]); err != nil {
				return SyncError{Op: "shop item upsert", Err: err}
			}
		} else if err := s.remote.DeleteShopItem(ctx, id); err != nil {
			return SyncError{Op: "shop item delete", Err: err}
		}
	case strings.HasPrefix(key, "inventory:"):
		id := strings.TrimPrefix(key, "inventory:")
		var entry *storage.InventoryRow
		for i := range s.state.Inventory {
			if s.state.Inventory[i].ID == id {
				entry = &storage.InventoryRow{
					ID:          id,
					ItemID:      s.state.Inventory[i].Item.ID,
					Quantity:    s.state.Inventory[i].Quantity,
					PurchasedAt: s.state.Inventory[i].PurchasedAt,
				}
				break
			}
		}
		if entry != nil {
			if err := s.remote.UpsertInventory(ctx, s.session.UserID, *entry); err != nil {
				return SyncError{Op: "inventory upsert", Err: err}
			}
		} else if err := s.remote.DeleteInventory(ctx, id); err != nil {
			return SyncError{Op: "inventory delete", Err: err}
		}
	default:
		return fmt.Errorf("unknown dirty key: %q", key)
	}
	return nil
}

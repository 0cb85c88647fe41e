package game

import (
	"context"
	"fmt"
	"time"

	"lifeforge/internal/engine"
	"lifeforge/internal/storage"
)

// fakeRemote is an in-memory Remote. Individual operations can be made
// to fail by name via the fail map, which is how the sync-drift paths
// are exercised.
type fakeRemote struct {
	users     map[string]*storage.User
	routines  map[string]engine.Routine
	logs      []engine.RoutineLog
	shop      map[string]engine.ShopItem
	inventory map[string]storage.InventoryRow
	usages    int

	fail map[string]error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		users:     map[string]*storage.User{},
		routines:  map[string]engine.Routine{},
		shop:      map[string]engine.ShopItem{},
		inventory: map[string]storage.InventoryRow{},
		fail:      map[string]error{},
	}
}

func (f *fakeRemote) failOn(op string) {
	f.fail[op] = fmt.Errorf("%s: connection refused", op)
}

func (f *fakeRemote) heal() { f.fail = map[string]error{} }

func (f *fakeRemote) check(op string) error { return f.fail[op] }

func (f *fakeRemote) GetUser(ctx context.Context, id string) (*storage.User, error) {
	if err := f.check("GetUser"); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNoRows)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRemote) InsertUser(ctx context.Context, u *storage.User) error {
	if err := f.check("InsertUser"); err != nil {
		return err
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRemote) UpdateUserStats(ctx context.Context, id string, s engine.Stats) error {
	if err := f.check("UpdateUserStats"); err != nil {
		return err
	}
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, storage.ErrNoRows)
	}
	u.Stats = s
	return nil
}

func (f *fakeRemote) UpdateUserPrefs(ctx context.Context, id string, phone string, active bool) error {
	if err := f.check("UpdateUserPrefs"); err != nil {
		return err
	}
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, storage.ErrNoRows)
	}
	u.PhoneNumber = phone
	u.RemindersActive = active
	return nil
}

func (f *fakeRemote) ListRoutines(ctx context.Context, userID string) ([]engine.Routine, error) {
	if err := f.check("ListRoutines"); err != nil {
		return nil, err
	}
	var out []engine.Routine
	for _, rt := range f.routines {
		out = append(out, rt)
	}
	return out, nil
}

func (f *fakeRemote) InsertRoutine(ctx context.Context, userID string, rt engine.Routine) error {
	if err := f.check("InsertRoutine"); err != nil {
		return err
	}
	f.routines[rt.ID] = rt
	return nil
}

func (f *fakeRemote) UpdateRoutine(ctx context.Context, rt engine.Routine) error {
	if err := f.check("UpdateRoutine"); err != nil {
		return err
	}
	f.routines[rt.ID] = rt
	return nil
}

func (f *fakeRemote) DeleteRoutine(ctx context.Context, id string) error {
	if err := f.check("DeleteRoutine"); err != nil {
		return err
	}
	delete(f.routines, id)
	return nil
}

func (f *fakeRemote) InsertRoutineLog(ctx context.Context, log engine.RoutineLog) error {
	if err := f.check("InsertRoutineLog"); err != nil {
		return err
	}
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeRemote) CompletedCounts(ctx context.Context, userID string, date string) (map[string]int, error) {
	if err := f.check("CompletedCounts"); err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, l := range f.logs {
		if l.UserID == userID && l.Date == date && l.Status == engine.LogCompleted {
			counts[l.RoutineID]++
		}
	}
	return counts, nil
}

func (f *fakeRemote) ListShopItems(ctx context.Context, userID string) ([]engine.ShopItem, error) {
	if err := f.check("ListShopItems"); err != nil {
		return nil, err
	}
	var out []engine.ShopItem
	for _, item := range f.shop {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRemote) InsertShopItem(ctx context.Context, userID string, item engine.ShopItem) error {
	if err := f.check("InsertShopItem"); err != nil {
		return err
	}
	f.shop[item.ID] = item
	return nil
}

func (f *fakeRemote) UpdateShopItem(ctx context.Context, item engine.ShopItem) error {
	if err := f.check("UpdateShopItem"); err != nil {
		return err
	}
	f.shop[item.ID] = item
	return nil
}

func (f *fakeRemote) DeleteShopItem(ctx context.Context, id string) error {
	if err := f.check("DeleteShopItem"); err != nil {
		return err
	}
	delete(f.shop, id)
	return nil
}

func (f *fakeRemote) ListInventory(ctx context.Context, userID string) ([]storage.InventoryRow, error) {
	if err := f.check("ListInventory"); err != nil {
		return nil, err
	}
	var out []storage.InventoryRow
	for _, row := range f.inventory {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeRemote) UpsertInventory(ctx context.Context, userID string, row storage.InventoryRow) error {
	if err := f.check("UpsertInventory"); err != nil {
		return err
	}
	f.inventory[row.ID] = row
	return nil
}

func (f *fakeRemote) DeleteInventory(ctx context.Context, id string) error {
	if err := f.check("DeleteInventory"); err != nil {
		return err
	}
	delete(f.inventory, id)
	return nil
}

func (f *fakeRemote) InsertInventoryUsage(ctx context.Context, inventoryID, userID string, usedAt time.Time) error {
	if err := f.check("InsertInventoryUsage"); err != nil {
		return err
	}
	f.usages++
	return nil
}

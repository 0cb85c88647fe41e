package storage

import (
	"context"
	"database/sql"
	"time"

	"lifeforge/internal/engine"
)

// Backend bundles the table repos behind one handle. It satisfies the
// game layer's Remote interface.
type Backend struct {
	db        *sql.DB
	users     *UserRepo
	routines  *RoutineRepo
	logs      *LogRepo
	shop      *ShopRepo
	inventory *InventoryRepo
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{
		db:        db,
		users:     NewUserRepo(db),
		routines:  NewRoutineRepo(db),
		logs:      NewLogRepo(db),
		shop:      NewShopRepo(db),
		inventory: NewInventoryRepo(db),
	}
}

func (b *Backend) UserRepo() *UserRepo           { return b.users }
func (b *Backend) LogRepo() *LogRepo             { return b.logs }
func (b *Backend) InventoryRepo() *InventoryRepo { return b.inventory }

func (b *Backend) GetUser(ctx context.Context, id string) (*User, error) {
	return b.users.Get(ctx, id)
}

func (b *Backend) InsertUser(ctx context.Context, u *User) error {
	return b.users.Insert(ctx, u)
}

func (b *Backend) UpdateUserStats(ctx context.Context, id string, s engine.Stats) error {
	return b.users.UpdateStats(ctx, id, s)
}

func (b *Backend) UpdateUserPrefs(ctx context.Context, id string, phoneNumber string, remindersActive bool) error {
	return b.users.UpdatePrefs(ctx, id, phoneNumber, remindersActive)
}

func (b *Backend) ListRoutines(ctx context.Context, userID string) ([]engine.Routine, error) {
	return b.routines.List(ctx, userID)
}

func (b *Backend) InsertRoutine(ctx context.Context, userID string, rt engine.Routine) error {
	return b.routines.Insert(ctx, userID, rt)
}

func (b *Backend) UpdateRoutine(ctx context.Context, rt engine.Routine) error {
	return b.routines.Update(ctx, rt)
}

func (b *Backend) DeleteRoutine(ctx context.Context, id string) error {
	return b.routines.Delete(ctx, id)
}

func (b *Backend) InsertRoutineLog(ctx context.Context, log engine.RoutineLog) error {
	return b.logs.Insert(ctx, log)
}

func (b *Backend) CompletedCounts(ctx context.Context, userID string, date string) (map[string]int, error) {
	return b.logs.CompletedCounts(ctx, userID, date)
}

func (b *Backend) ListShopItems(ctx context.Context, userID string) ([]engine.ShopItem, error) {
	return b.shop.List(ctx, userID)
}

func (b *Backend) InsertShopItem(ctx context.Context, userID string, item engine.ShopItem) error {
	return b.shop.Insert(ctx, userID, item)
}

func (b *Backend) UpdateShopItem(ctx context.Context, item engine.ShopItem) error {
	return b.shop.Update(ctx, item)
}

func (b *Backend) DeleteShopItem(ctx context.Context, id string) error {
	return b.shop.Delete(ctx, id)
}

func (b *Backend) ListInventory(ctx context.Context, userID string) ([]InventoryRow, error) {
	return b.inventory.List(ctx, userID)
}

func (b *Backend) UpsertInventory(ctx context.Context, userID string, row InventoryRow) error {
	return b.inventory.Upsert(ctx, userID, row)
}

func (b *Backend) DeleteInventory(ctx context.Context, id string) error {
	return b.inventory.Delete(ctx, id)
}

func (b *Backend) InsertInventoryUsage(ctx context.Context, inventoryID string, userID string, usedAt time.Time) error {
	return b.inventory.InsertUsage(ctx, inventoryID, userID, usedAt)
}

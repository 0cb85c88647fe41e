package game

import (
	"context"
	"time"

	"lifeforge/internal/engine"
	"lifeforge/internal/storage"
)

// Remote is the row-oriented persistence collaborator, scoped by an
// authenticated user identity. All writes are idempotent per entity id so
// a failed sync can simply be retried. storage.Backend satisfies it.
type Remote interface {
	GetUser(ctx context.Context, id string) (*storage.User, error)
	InsertUser(ctx context.Context, u *storage.User) error
	UpdateUserStats(ctx context.Context, id string, s engine.Stats) error
	UpdateUserPrefs(ctx context.Context, id string, phoneNumber string, remindersActive bool) error

	ListRoutines(ctx context.Context, userID string) ([]engine.Routine, error)
	InsertRoutine(ctx context.Context, userID string, rt engine.Routine) error
	UpdateRoutine(ctx context.Context, rt engine.Routine) error
	DeleteRoutine(ctx context.Context, id string) error

	InsertRoutineLog(ctx context.Context, log engine.RoutineLog) error
	CompletedCounts(ctx context.Context, userID string, date string) (map[string]int, error)

	ListShopItems(ctx context.Context, userID string) ([]engine.ShopItem, error)
	InsertShopItem(ctx context.Context, userID string, item engine.ShopItem) error
	UpdateShopItem(ctx context.Context, item engine.ShopItem) error
	DeleteShopItem(ctx context.Context, id string) error

	ListInventory(ctx context.Context, userID string) ([]storage.InventoryRow, error)
	UpsertInventory(ctx context.Context, userID string, row storage.InventoryRow) error
	DeleteInventory(ctx context.Context, id string) error
	InsertInventoryUsage(ctx context.Context, inventoryID string, userID string, usedAt time.Time) error
}

package storage

import (
	"time"

	"lifeforge/internal/engine"
)

// User is the users-table row: stats plus profile and notification prefs.
type User struct {
	ID    string
	Name  string
	Email string

	Stats engine.Stats

	PhoneNumber     string
	RemindersActive bool
}

// InventoryRow is the raw inventory row; the shop item is referenced by
// id, resolution to a shared ShopItem happens in the store layer.
type InventoryRow struct {
	ID          string
	ItemID      string
	Quantity    int
	PurchasedAt time.Time
}

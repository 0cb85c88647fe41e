package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) List(ctx context.Context, userID string) ([]InventoryRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, quantity, purchased_at
		FROM inventory
		WHERE user_id = ?
		ORDER BY purchased_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer rows.Close()

	var out []InventoryRow
	for rows.Next() {
		var row InventoryRow
		if err := rows.Scan(&row.ID, &row.ItemID, &row.Quantity, &row.PurchasedAt); err != nil {
			return nil, fmt.Errorf("inventory scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory list rows: %w", err)
	}
	return out, nil
}

// Upsert writes an inventory row keyed by id; repeat purchases update the
// quantity in place, which keeps the remote write idempotent per entity.
func (r *InventoryRepo) Upsert(ctx context.Context, userID string, row InventoryRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (id, user_id, item_id, quantity, purchased_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET quantity = excluded.quantity
	`, row.ID, userID, row.ItemID, row.Quantity, row.PurchasedAt)
	if err != nil {
		return fmt.Errorf("inventory upsert: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("inventory delete: %w", err)
	}
	return nil
}

func (r *InventoryRepo) InsertUsage(ctx context.Context, inventoryID string, userID string, usedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_usage (inventory_id, user_id, used_at)
		VALUES (?, ?, ?)
	`, inventoryID, userID, usedAt)
	if err != nil {
		return fmt.Errorf("inventory usage insert: %w", err)
	}
	return nil
}

// CountUsage returns how many usage rows exist for one inventory entry.
func (r *InventoryRepo) CountUsage(ctx context.Context, inventoryID string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM inventory_usage WHERE inventory_id = ?
	`, inventoryID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("inventory usage count: %w", err)
	}
	return n, nil
}

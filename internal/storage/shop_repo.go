package storage

import (
	"context"
	"database/sql"
	"fmt"

	"lifeforge/internal/engine"
)

type ShopRepo struct {
	db *sql.DB
}

func NewShopRepo(db *sql.DB) *ShopRepo {
	return &ShopRepo{db: db}
}

func (r *ShopRepo) List(ctx context.Context, userID string) ([]engine.ShopItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, cost, stock, type
		FROM shop_items
		WHERE user_id = ?
		ORDER BY rowid ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("shop list: %w", err)
	}
	defer rows.Close()

	var out []engine.ShopItem
	for rows.Next() {
		var (
			item  engine.ShopItem
			stock sql.NullInt64
			typ   string
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Cost, &stock, &typ); err != nil {
			return nil, fmt.Errorf("shop scan: %w", err)
		}
		if stock.Valid {
			v := int(stock.Int64)
			item.Stock = &v
		}
		item.Type = engine.ItemType(typ)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shop list rows: %w", err)
	}
	return out, nil
}

func (r *ShopRepo) Insert(ctx context.Context, userID string, item engine.ShopItem) error {
	// Idempotent by id so a failed sync can be retried blindly.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shop_items (id, user_id, name, description, cost, stock, type)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, description = excluded.description,
			cost = excluded.cost, stock = excluded.stock, type = excluded.type
	`, item.ID, userID, item.Name, item.Description, item.Cost, nullableInt(item.Stock), string(item.Type))
	if err != nil {
		return fmt.Errorf("shop insert: %w", err)
	}
	return nil
}

func (r *ShopRepo) Update(ctx context.Context, item engine.ShopItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE shop_items
		SET name = ?, description = ?, cost = ?, stock = ?, type = ?
		WHERE id = ?
	`, item.Name, item.Description, item.Cost, nullableInt(item.Stock), string(item.Type), item.ID)
	if err != nil {
		return fmt.Errorf("shop update: %w", err)
	}
	return nil
}

func (r *ShopRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shop_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("shop delete: %w", err)
	}
	return nil
}

func nullableInt(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

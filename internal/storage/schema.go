package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT 'Hero',
			email TEXT NOT NULL DEFAULT '',

			hp REAL NOT NULL DEFAULT 100,
			max_hp REAL NOT NULL DEFAULT 100,
			xp REAL NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			credits INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,

			phone_number TEXT NOT NULL DEFAULT '',
			reminders_active INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS routines (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			habit_type TEXT,
			recurrence TEXT,
			is_pomodoro INTEGER NOT NULL DEFAULT 0,
			pomodoro_time INTEGER NOT NULL DEFAULT 0,
			checklist TEXT,
			active INTEGER NOT NULL DEFAULT 1,

			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		// Append-only audit trail; rows are never updated or deleted.
		`CREATE TABLE IF NOT EXISTS routine_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			routine_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS shop_items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cost INTEGER NOT NULL DEFAULT 0,
			stock INTEGER,
			type TEXT NOT NULL DEFAULT 'consumable',

			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			purchased_at DATETIME NOT NULL,

			FOREIGN KEY(user_id) REFERENCES users(id),
			FOREIGN KEY(item_id) REFERENCES shop_items(id)
		);`,
		`CREATE TABLE IF NOT EXISTS inventory_usage (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			inventory_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			used_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_routines_user_id ON routines(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_routine_logs_user_date ON routine_logs(user_id, date);`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_user_id ON inventory(user_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

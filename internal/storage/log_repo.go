package storage

import (
	"context"
	"database/sql"
	"fmt"

	"lifeforge/internal/engine"
)

// LogRepo writes the append-only routine audit trail. There are no update
// or delete operations on purpose.
type LogRepo struct {
	db *sql.DB
}

func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{db: db}
}

func (r *LogRepo) Insert(ctx context.Context, log engine.RoutineLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO routine_logs (routine_id, user_id, date, status)
		VALUES (?, ?, ?, ?)
	`, log.RoutineID, log.UserID, log.Date, string(log.Status))
	if err != nil {
		return fmt.Errorf("routine log insert: %w", err)
	}
	return nil
}

// CompletedCounts returns the number of completed logs per routine for one
// calendar day. Used to rebuild the per-day completion counters on fetch.
func (r *LogRepo) CompletedCounts(ctx context.Context, userID string, date string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT routine_id, COUNT(*)
		FROM routine_logs
		WHERE user_id = ? AND date = ? AND status = 'completed'
		GROUP BY routine_id
	`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("routine log counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("routine log counts scan: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routine log counts rows: %w", err)
	}
	return counts, nil
}

// CountByStatus returns how many log rows exist for a user with the given
// status, across all days.
func (r *LogRepo) CountByStatus(ctx context.Context, userID string, status engine.LogStatus) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM routine_logs WHERE user_id = ? AND status = ?
	`, userID, string(status))
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("routine log count: %w", err)
	}
	return n, nil
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"lifeforge/internal/engine"
)

type RoutineRepo struct {
	db *sql.DB
}

func NewRoutineRepo(db *sql.DB) *RoutineRepo {
	return &RoutineRepo{db: db}
}

// Completion timestamps are not stored here: the routines table holds the
// definition only, completions live in routine_logs and the session state.

func (r *RoutineRepo) List(ctx context.Context, userID string) ([]engine.Routine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, type, difficulty, habit_type, recurrence, is_pomodoro, pomodoro_time, checklist, active
		FROM routines
		WHERE user_id = ?
		ORDER BY rowid ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("routine list: %w", err)
	}
	defer rows.Close()

	var out []engine.Routine
	for rows.Next() {
		rt, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routine list rows: %w", err)
	}
	return out, nil
}

func (r *RoutineRepo) Insert(ctx context.Context, userID string, rt engine.Routine) error {
	recurrence, checklist, err := marshalRoutineJSON(rt)
	if err != nil {
		return err
	}
	// Idempotent by id so a failed sync can be retried blindly.
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO routines (id, user_id, title, type, difficulty, habit_type, recurrence, is_pomodoro, pomodoro_time, checklist, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, type = excluded.type, difficulty = excluded.difficulty,
			habit_type = excluded.habit_type, recurrence = excluded.recurrence,
			is_pomodoro = excluded.is_pomodoro, pomodoro_time = excluded.pomodoro_time,
			checklist = excluded.checklist, active = excluded.active
	`, rt.ID, userID, rt.Title, string(rt.Type), string(rt.Difficulty), nullableString(string(rt.HabitType)),
		recurrence, boolToInt(rt.IsPomodoro), rt.PomodoroTime, checklist, boolToInt(rt.Active))
	if err != nil {
		return fmt.Errorf("routine insert: %w", err)
	}
	return nil
}

func (r *RoutineRepo) Update(ctx context.Context, rt engine.Routine) error {
	recurrence, checklist, err := marshalRoutineJSON(rt)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE routines
		SET title = ?, type = ?, difficulty = ?, habit_type = ?, recurrence = ?,
			is_pomodoro = ?, pomodoro_time = ?, checklist = ?, active = ?
		WHERE id = ?
	`, rt.Title, string(rt.Type), string(rt.Difficulty), nullableString(string(rt.HabitType)),
		recurrence, boolToInt(rt.IsPomodoro), rt.PomodoroTime, checklist, boolToInt(rt.Active), rt.ID)
	if err != nil {
		return fmt.Errorf("routine update: %w", err)
	}
	return nil
}

func (r *RoutineRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("routine delete: %w", err)
	}
	return nil
}

func marshalRoutineJSON(rt engine.Routine) (recurrence *string, checklist *string, err error) {
	if len(rt.DaysOfWeek) > 0 {
		data, err := json.Marshal(rt.DaysOfWeek)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal recurrence: %w", err)
		}
		s := string(data)
		recurrence = &s
	}
	if len(rt.Checklist) > 0 {
		data, err := json.Marshal(rt.Checklist)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal checklist: %w", err)
		}
		s := string(data)
		checklist = &s
	}
	return recurrence, checklist, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanRoutine(rows *sql.Rows) (*engine.Routine, error) {
	var (
		rt         engine.Routine
		typ        string
		difficulty string
		habitType  sql.NullString
		recurrence sql.NullString
		pomodoro   int
		checklist  sql.NullString
		active     int
	)
	if err := rows.Scan(&rt.ID, &rt.Title, &typ, &difficulty, &habitType, &recurrence,
		&pomodoro, &rt.PomodoroTime, &checklist, &active); err != nil {
		return nil, fmt.Errorf("routine scan: %w", err)
	}

	rt.Type = engine.RoutineType(typ)
	rt.Difficulty = engine.Difficulty(difficulty)
	if habitType.Valid {
		rt.HabitType = engine.HabitType(habitType.String)
	}
	if recurrence.Valid && recurrence.String != "" {
		if err := json.Unmarshal([]byte(recurrence.String), &rt.DaysOfWeek); err != nil {
			return nil, fmt.Errorf("unmarshal recurrence: %w", err)
		}
	}
	if checklist.Valid && checklist.String != "" {
		if err := json.Unmarshal([]byte(checklist.String), &rt.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}
	rt.IsPomodoro = pomodoro != 0
	rt.Active = active != 0
	return &rt, nil
}

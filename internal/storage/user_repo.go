package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lifeforge/internal/engine"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, hp, max_hp, xp, level, credits, streak, phone_number, reminders_active
		FROM users
		WHERE id = ?
	`, id)

	var (
		u         User
		reminders int
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email,
		&u.Stats.HP, &u.Stats.MaxHP, &u.Stats.XP, &u.Stats.Level, &u.Stats.Credits, &u.Stats.Streak,
		&u.PhoneNumber, &reminders,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNoRows)
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	u.RemindersActive = reminders != 0
	return &u, nil
}

func (r *UserRepo) Insert(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, hp, max_hp, xp, level, credits, streak, phone_number, reminders_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email,
		u.Stats.HP, u.Stats.MaxHP, u.Stats.XP, u.Stats.Level, u.Stats.Credits, u.Stats.Streak,
		u.PhoneNumber, boolToInt(u.RemindersActive))
	if err != nil {
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

func (r *UserRepo) UpdateStats(ctx context.Context, id string, s engine.Stats) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET hp = ?, max_hp = ?, xp = ?, level = ?, credits = ?, streak = ?
		WHERE id = ?
	`, s.HP, s.MaxHP, s.XP, s.Level, s.Credits, s.Streak, id)
	if err != nil {
		return fmt.Errorf("user update stats: %w", err)
	}
	return nil
}

func (r *UserRepo) UpdatePrefs(ctx context.Context, id string, phoneNumber string, remindersActive bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET phone_number = ?, reminders_active = ?
		WHERE id = ?
	`, phoneNumber, boolToInt(remindersActive), id)
	if err != nil {
		return fmt.Errorf("user update prefs: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

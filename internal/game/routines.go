package game

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"lifeforge/internal/engine"
)

type AddRoutineInput struct {
	Title        string
	Type         engine.RoutineType
	Difficulty   engine.Difficulty
	HabitType    engine.HabitType
	DaysOfWeek   []int
	IsPomodoro   bool
	PomodoroTime int
	Checklist    []engine.ChecklistItem
}

// AddRoutine validates and creates a routine, committing locally first
// and syncing best-effort. A SyncError return means the routine exists
// locally and will be retried by FlushPending.
func (s *Store) AddRoutine(ctx context.Context, in AddRoutineInput) (*engine.Routine, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ValidationError{Field: "title", Reason: "required"}
	}
	typ := in.Type
	if typ == "" {
		typ = engine.RoutineDaily
	}
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: "must be daily, habit or todo"}
	}
	diff := in.Difficulty
	if diff == "" {
		diff = engine.DefaultDifficulty
	}
	if !diff.IsValid() {
		return nil, ValidationError{Field: "difficulty", Reason: "must be easy, medium, hard or epic"}
	}
	if typ == engine.RoutineHabit && in.HabitType != "" && !in.HabitType.IsValid() {
		return nil, ValidationError{Field: "habit type", Reason: "must be positive or negative"}
	}
	for _, day := range in.DaysOfWeek {
		if day < 0 || day > 6 {
			return nil, ValidationError{Field: "days of week", Reason: "each day must be 0..6"}
		}
	}

	rt := engine.Routine{
		ID:           uuid.NewString(),
		Title:        title,
		Type:         typ,
		Difficulty:   diff,
		HabitType:    in.HabitType,
		DaysOfWeek:   in.DaysOfWeek,
		IsPomodoro:   in.IsPomodoro,
		PomodoroTime: in.PomodoroTime,
		Checklist:    in.Checklist,
		Active:       true,
	}

	s.state.Routines = append(s.state.Routines, rt)
	s.snapshotBestEffort()

	if err := s.remote.InsertRoutine(ctx, s.session.UserID, rt); err != nil {
		s.markDirty(dirtyRoutine(rt.ID))
		return &rt, SyncError{Op: "routine insert", Err: err}
	}
	return &rt, nil
}

// EditRoutine replaces the routine with the same id.
func (s *Store) EditRoutine(ctx context.Context, rt engine.Routine) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if strings.TrimSpace(rt.Title) == "" {
		return ValidationError{Field: "title", Reason: "required"}
	}
	existing := s.findRoutine(rt.ID)
	if existing == nil {
		return NotFoundError{Kind: "routine", ID: rt.ID}
	}

	*existing = rt
	s.snapshotBestEffort()

	if err := s.remote.UpdateRoutine(ctx, rt); err != nil {
		s.markDirty(dirtyRoutine(rt.ID))
		return SyncError{Op: "routine update", Err: err}
	}
	return nil
}

func (s *Store) DeleteRoutine(ctx context.Context, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	idx := -1
	for i := range s.state.Routines {
		if s.state.Routines[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFoundError{Kind: "routine", ID: id}
	}

	s.state.Routines = append(s.state.Routines[:idx], s.state.Routines[idx+1:]...)
	s.snapshotBestEffort()

	if err := s.remote.DeleteRoutine(ctx, id); err != nil {
		s.markDirty(dirtyRoutine(id))
		return SyncError{Op: "routine delete", Err: err}
	}
	return nil
}

// CompleteResult reports a completion for display.
type CompleteResult struct {
	Routine engine.Routine
	engine.CompleteOutcome
	TodayCount int
}

// CompleteRoutine applies the completion rules to the player stats, logs
// the event and deactivates finished todos. Acting on a stale id is a
// silent no-op (nil result, nil error). A SyncError return means the
// local stats already moved; only the remote writes failed.
func (s *Store) CompleteRoutine(ctx context.Context, id string) (*CompleteResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	rt := s.findRoutine(id)
	if rt == nil {
		return nil, nil
	}

	stats, outcome, err := engine.ApplyCompletion(s.state.Stats, rt.Difficulty, s.policy)
	if err != nil {
		return nil, err
	}

	now := s.now()
	s.state.Stats = stats
	rt.CompletedAt = &now
	if rt.Type == engine.RoutineTodo {
		// Todos are one-shot: completion retires them for good.
		rt.Active = false
	}
	s.state.TodayCompletions[id]++

	log := engine.RoutineLog{
		RoutineID: id,
		UserID:    s.session.UserID,
		Date:      engine.DayKey(now),
		Status:    engine.LogCompleted,
	}
	s.snapshotBestEffort()

	res := &CompleteResult{
		Routine:         *rt,
		CompleteOutcome: outcome,
		TodayCount:      s.state.TodayCompletions[id],
	}

	// Two independent remote writes; a failure between them is accepted
	// drift that FlushPending heals later.
	if err := s.remote.InsertRoutineLog(ctx, log); err != nil {
		s.pendingLogs = append(s.pendingLogs, log)
		s.markDirty(dirtyStats)
		if rt.Type == engine.RoutineTodo {
			s.markDirty(dirtyRoutine(id))
		}
		return res, SyncError{Op: "routine log", Err: err}
	}
	if err := s.remote.UpdateUserStats(ctx, s.session.UserID, stats); err != nil {
		s.markDirty(dirtyStats)
		if rt.Type == engine.RoutineTodo {
			s.markDirty(dirtyRoutine(id))
		}
		return res, SyncError{Op: "stats update", Err: err}
	}
	if rt.Type == engine.RoutineTodo {
		if err := s.remote.UpdateRoutine(ctx, *rt); err != nil {
			s.markDirty(dirtyRoutine(id))
			return res, SyncError{Op: "routine update", Err: err}
		}
	}
	return res, nil
}

// FailResult reports a failure for display.
type FailResult struct {
	Routine engine.Routine
	engine.FailOutcome
}

// FailRoutine applies the failure penalty (negative habit indulged, task
// botched). Stale ids are a silent no-op.
func (s *Store) FailRoutine(ctx context.Context, id string) (*FailResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	rt := s.findRoutine(id)
	if rt == nil {
		return nil, nil
	}

	stats, outcome, err := engine.ApplyFailure(s.state.Stats, rt.Difficulty)
	if err != nil {
		return nil, err
	}

	now := s.now()
	s.state.Stats = stats

	log := engine.RoutineLog{
		RoutineID: id,
		UserID:    s.session.UserID,
		Date:      engine.DayKey(now),
		Status:    engine.LogFailed,
	}
	s.snapshotBestEffort()

	res := &FailResult{Routine: *rt, FailOutcome: outcome}

	if err := s.remote.InsertRoutineLog(ctx, log); err != nil {
		s.pendingLogs = append(s.pendingLogs, log)
		s.markDirty(dirtyStats)
		return res, SyncError{Op: "routine log", Err: err}
	}
	if err := s.remote.UpdateUserStats(ctx, s.session.UserID, stats); err != nil {
		s.markDirty(dirtyStats)
		return res, SyncError{Op: "stats update", Err: err}
	}
	return res, nil
}

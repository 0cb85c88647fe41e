package game

import (
	"context"

	"lifeforge/internal/engine"
)

// RolloverResult reports what the daily check decided.
type RolloverResult struct {
	// NoOp means the check already ran today.
	NoOp bool
	// Pending holds the missed dailies awaiting review. Non-empty means
	// the rollover is deferred: streak and stats are untouched.
	Pending []engine.Routine
	// StreakExtended is set on a clean rollover.
	StreakExtended bool
	Streak         int
}

// RunDailyCheck reconciles the day change once per calendar day. With no
// missed dailies it resets them for the new day and extends the streak;
// otherwise it parks the missed set for review and defers everything,
// including advancing the last-update marker.
func (s *Store) RunDailyCheck(ctx context.Context) (*RolloverResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	now := s.now()
	check := engine.DailyCheck(s.state.Routines, s.state.LastUpdate, now)
	if check.SameDay {
		return &RolloverResult{NoOp: true, Streak: s.state.Stats.Streak}, nil
	}

	if len(check.Missed) > 0 {
		s.state.PendingReview = check.Missed
		s.review = engine.ReviewPending
		s.snapshotBestEffort()
		return &RolloverResult{Pending: check.Missed, Streak: s.state.Stats.Streak}, nil
	}

	engine.ResetDailies(s.state.Routines)
	s.state.Stats.Streak++
	s.state.LastUpdate = now
	s.state.TodayCompletions = map[string]int{}
	s.snapshotBestEffort()

	res := &RolloverResult{StreakExtended: true, Streak: s.state.Stats.Streak}

	// Persist the streak right away so a concurrent refresh elsewhere
	// cannot overwrite it with yesterday's value.
	if err := s.remote.UpdateUserStats(ctx, s.session.UserID, s.state.Stats); err != nil {
		s.markDirty(dirtyStats)
		return res, SyncError{Op: "stats update", Err: err}
	}
	return res, nil
}

// ReviewResult reports the consequences of resolving a pending review.
type ReviewResult struct {
	engine.ReviewOutcome
	Streak int
}

// ResolvePendingDailies settles a deferred rollover from the user's
// attestation. Unconfirmed dailies cost their fail penalty retroactively;
// no audit log rows are written for them. Confirmed dailies earn nothing.
func (s *Store) ResolvePendingDailies(ctx context.Context, confirmedIDs []string) (*ReviewResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if s.review != engine.ReviewPending {
		return &ReviewResult{Streak: s.state.Stats.Streak}, nil
	}

	stats, outcome, err := engine.ResolveReview(s.state.Stats, s.state.PendingReview, confirmedIDs)
	if err != nil {
		return nil, err
	}

	s.state.Stats = stats
	engine.ResetDailies(s.state.Routines)
	s.state.LastUpdate = s.now()
	s.state.TodayCompletions = map[string]int{}
	s.state.PendingReview = nil
	s.review = engine.ReviewSettled
	s.snapshotBestEffort()

	res := &ReviewResult{ReviewOutcome: outcome, Streak: stats.Streak}

	if err := s.remote.UpdateUserStats(ctx, s.session.UserID, stats); err != nil {
		s.markDirty(dirtyStats)
		return res, SyncError{Op: "stats update", Err: err}
	}
	return res, nil
}

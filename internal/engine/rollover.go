package engine

import (
	"math"
	"time"
)

// ReviewState is the rollover state machine: SETTLED when no prior-day
// dailies await review, PENDING_REVIEW while the user attests them.
type ReviewState string

const (
	ReviewSettled ReviewState = "settled"
	ReviewPending ReviewState = "pending_review"
)

// DailyCheckResult is the outcome of comparing the last recorded day with
// the current one.
type DailyCheckResult struct {
	// SameDay means the check already ran today; nothing to do.
	SameDay bool
	// Missed holds the dailies not completed on the last recorded day.
	// Non-empty Missed defers the rollover until the user reviews them.
	Missed []Routine
}

// DailyCheck partitions daily routines for the rollover. Day comparison is
// calendar-date granularity, not 24 hours elapsed. A daily counts as done
// only if its completion fell on the last recorded day.
func DailyCheck(routines []Routine, lastUpdate, now time.Time) DailyCheckResult {
	if SameCalendarDay(lastUpdate, now) {
		return DailyCheckResult{SameDay: true}
	}

	var missed []Routine
	for _, r := range routines {
		if r.Type != RoutineDaily {
			continue
		}
		if r.CompletedAt == nil || !SameCalendarDay(*r.CompletedAt, lastUpdate) {
			missed = append(missed, r)
		}
	}
	return DailyCheckResult{Missed: missed}
}

// ResetDailies clears CompletedAt on every daily so the new day starts
// fresh. Other routine types are untouched.
func ResetDailies(routines []Routine) {
	for i := range routines {
		if routines[i].Type == RoutineDaily {
			routines[i].CompletedAt = nil
		}
	}
}

// ReviewOutcome reports what resolving a pending review did.
type ReviewOutcome struct {
	HPPenalty   int
	XPPenalty   int
	StreakReset bool
	Died        bool
}

// ResolveReview applies the retroactive consequences of a deferred
// rollover. Pending dailies the user did not confirm accumulate their
// fail penalties (HP and XP only; credits are never penalized here).
// Confirmed dailies earn nothing. Any miss resets the streak; a clean
// review extends it. The death rule applies if the accumulated penalty
// drains HP.
func ResolveReview(s Stats, pending []Routine, confirmedIDs []string) (Stats, ReviewOutcome, error) {
	confirmed := make(map[string]bool, len(confirmedIDs))
	for _, id := range confirmedIDs {
		confirmed[id] = true
	}

	var out ReviewOutcome
	for _, r := range pending {
		if confirmed[r.ID] {
			continue
		}
		reward, err := RewardFor(r.Difficulty)
		if err != nil {
			return s, ReviewOutcome{}, err
		}
		out.HPPenalty += reward.FailHP
		out.XPPenalty += reward.FailXP
		out.StreakReset = true
	}

	if out.StreakReset {
		s.Streak = 0
	} else {
		s.Streak++
	}

	s.HP -= float64(out.HPPenalty)
	s.XP = math.Max(0, s.XP-float64(out.XPPenalty))
	if s.HP <= 0 && out.HPPenalty > 0 {
		s = applyDeath(s)
		out.Died = true
	}
	return s, out, nil
}

package engine

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestDailyCheckSameDayIsNoop(t *testing.T) {
	routines := []Routine{
		{ID: "a", Type: RoutineDaily, Difficulty: DifficultyEasy},
	}
	res := DailyCheck(routines, ts("2026-03-10 08:00"), ts("2026-03-10 23:59"))
	if !res.SameDay {
		t.Fatalf("expected SameDay for same calendar date")
	}
	if len(res.Missed) != 0 {
		t.Fatalf("missed=%d, want 0", len(res.Missed))
	}
}

func TestDailyCheckPartitionsMissed(t *testing.T) {
	routines := []Routine{
		{ID: "done", Type: RoutineDaily, CompletedAt: tsp("2026-03-10 20:00")},
		{ID: "never", Type: RoutineDaily},
		{ID: "stale", Type: RoutineDaily, CompletedAt: tsp("2026-03-08 20:00")},
		{ID: "habit", Type: RoutineHabit},
		{ID: "todo", Type: RoutineTodo},
	}
	res := DailyCheck(routines, ts("2026-03-10 08:00"), ts("2026-03-11 07:00"))
	if res.SameDay {
		t.Fatalf("did not expect SameDay")
	}
	if len(res.Missed) != 2 {
		t.Fatalf("missed=%d, want 2", len(res.Missed))
	}
	ids := map[string]bool{}
	for _, r := range res.Missed {
		ids[r.ID] = true
	}
	if !ids["never"] || !ids["stale"] {
		t.Fatalf("missed ids=%v, want never+stale", ids)
	}
}

func TestDailyCheckCleanDay(t *testing.T) {
	routines := []Routine{
		{ID: "a", Type: RoutineDaily, CompletedAt: tsp("2026-03-10 09:00")},
		{ID: "b", Type: RoutineDaily, CompletedAt: tsp("2026-03-10 22:00")},
	}
	res := DailyCheck(routines, ts("2026-03-10 08:00"), ts("2026-03-11 07:00"))
	if res.SameDay || len(res.Missed) != 0 {
		t.Fatalf("res=%+v, want clean rollover", res)
	}
}

func TestResetDailies(t *testing.T) {
	routines := []Routine{
		{ID: "a", Type: RoutineDaily, CompletedAt: tsp("2026-03-10 09:00")},
		{ID: "b", Type: RoutineTodo, CompletedAt: tsp("2026-03-10 09:00")},
	}
	ResetDailies(routines)
	if routines[0].CompletedAt != nil {
		t.Fatalf("daily completedAt not cleared")
	}
	if routines[1].CompletedAt == nil {
		t.Fatalf("non-daily completedAt must be kept")
	}
}

func TestResolveReviewPenalizesOnlyUnconfirmed(t *testing.T) {
	s := Stats{HP: 70, MaxHP: 100, XP: 20, Level: 1, Credits: 55, Streak: 4}
	pending := []Routine{
		{ID: "a", Type: RoutineDaily, Difficulty: DifficultyEasy},
		{ID: "b", Type: RoutineDaily, Difficulty: DifficultyMedium},
	}

	got, out, err := ResolveReview(s, pending, []string{"a"})
	if err != nil {
		t.Fatalf("ResolveReview: %v", err)
	}
	if got.HP != 62 {
		t.Fatalf("hp=%v, want 70-8=62", got.HP)
	}
	if got.XP != 8 {
		t.Fatalf("xp=%v, want 20-12=8", got.XP)
	}
	if got.Credits != 55 {
		t.Fatalf("credits=%d, want untouched 55", got.Credits)
	}
	if got.Streak != 0 || !out.StreakReset {
		t.Fatalf("streak=%d reset=%v, want reset to 0", got.Streak, out.StreakReset)
	}
	// Confirmed dailies are not retroactively rewarded.
	if out.HPPenalty != 8 || out.XPPenalty != 12 {
		t.Fatalf("penalties=%+v, want hp 8 / xp 12", out)
	}
}

func TestResolveReviewCleanExtendsStreak(t *testing.T) {
	s := Stats{HP: 70, MaxHP: 100, XP: 20, Level: 1, Streak: 4}
	pending := []Routine{
		{ID: "a", Type: RoutineDaily, Difficulty: DifficultyHard},
	}

	got, out, err := ResolveReview(s, pending, []string{"a"})
	if err != nil {
		t.Fatalf("ResolveReview: %v", err)
	}
	if got.Streak != 5 || out.StreakReset {
		t.Fatalf("streak=%d, want 5", got.Streak)
	}
	if got.HP != 70 || got.XP != 20 {
		t.Fatalf("stats changed on clean review: %+v", got)
	}
}

func TestResolveReviewXPClampAndDeath(t *testing.T) {
	s := Stats{HP: 10, MaxHP: 100, XP: 5, Level: 1, Credits: 200, Streak: 9}
	pending := []Routine{
		{ID: "a", Type: RoutineDaily, Difficulty: DifficultyEpic},
	}

	got, out, err := ResolveReview(s, pending, nil)
	if err != nil {
		t.Fatalf("ResolveReview: %v", err)
	}
	if !out.Died {
		t.Fatalf("expected death, hp would be 10-30")
	}
	if got.HP != 50 {
		t.Fatalf("hp=%v, want maxHP/2", got.HP)
	}
	if got.XP != 0 {
		t.Fatalf("xp=%v, want clamp then tax = 0", got.XP)
	}
	if got.Credits != 180 {
		t.Fatalf("credits=%d, want floor(200*0.9)=180", got.Credits)
	}
}

func TestResolveReviewNoPendingIsHarmless(t *testing.T) {
	s := Stats{HP: 1, MaxHP: 100, Streak: 2}
	got, out, err := ResolveReview(s, nil, nil)
	if err != nil {
		t.Fatalf("ResolveReview: %v", err)
	}
	if out.Died || out.HPPenalty != 0 {
		t.Fatalf("outcome=%+v, want no penalty", out)
	}
	if got.Streak != 3 {
		t.Fatalf("streak=%d, want 3", got.Streak)
	}
}

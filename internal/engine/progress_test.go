package engine

import (
	"math"
	"testing"
)

func TestLevelThreshold(t *testing.T) {
	if got := LevelThreshold(1); got != 100 {
		t.Fatalf("LevelThreshold(1)=%v, want 100", got)
	}
	if got := LevelThreshold(2); got != 150 {
		t.Fatalf("LevelThreshold(2)=%v, want 150", got)
	}
	if got := LevelThreshold(4); math.Abs(got-337.5) > 1e-9 {
		t.Fatalf("LevelThreshold(4)=%v, want 337.5", got)
	}
}

func TestCompletionLevelUpAtExactThreshold(t *testing.T) {
	s := Stats{HP: 40, MaxHP: 100, XP: 90, Level: 1, Credits: 0}

	got, out, err := ApplyCompletion(s, DifficultyEasy, LevelSingle)
	if err != nil {
		t.Fatalf("ApplyCompletion: %v", err)
	}
	if got.Level != 2 {
		t.Fatalf("level=%d, want 2", got.Level)
	}
	if got.XP != 0 {
		t.Fatalf("xp=%v, want 0", got.XP)
	}
	if got.HP != got.MaxHP {
		t.Fatalf("hp=%v, want full heal on level-up", got.HP)
	}
	if got.Credits != 5 {
		t.Fatalf("credits=%d, want 5", got.Credits)
	}
	if !out.LevelUp || out.LevelBefore != 1 || out.LevelAfter != 2 {
		t.Fatalf("outcome=%+v, want level-up 1->2", out)
	}
}

func TestCompletionHealWithoutLevelUp(t *testing.T) {
	s := Stats{HP: 50, MaxHP: 100, XP: 0, Level: 1, Credits: 10}

	got, out, err := ApplyCompletion(s, DifficultyMedium, LevelSingle)
	if err != nil {
		t.Fatalf("ApplyCompletion: %v", err)
	}
	if got.HP != 52.5 {
		t.Fatalf("hp=%v, want 52.5 (heal = xp reward * 0.1)", got.HP)
	}
	if got.XP != 25 {
		t.Fatalf("xp=%v, want 25", got.XP)
	}
	if got.Level != 1 || out.LevelUp {
		t.Fatalf("unexpected level-up: stats=%+v outcome=%+v", got, out)
	}
	if got.Credits != 25 {
		t.Fatalf("credits=%d, want 25", got.Credits)
	}
}

func TestCompletionHealClampedToMaxHP(t *testing.T) {
	s := Stats{HP: 99.5, MaxHP: 100, XP: 0, Level: 1}

	got, _, err := ApplyCompletion(s, DifficultyEpic, LevelSingle)
	if err != nil {
		t.Fatalf("ApplyCompletion: %v", err)
	}
	if got.HP > got.MaxHP {
		t.Fatalf("hp=%v exceeds max %v", got.HP, got.MaxHP)
	}
}

// A surplus left by the single-level policy can sit above the next
// threshold; the loop policy consumes it immediately. Both behaviors are
// intentional and selectable.
func TestLevelPolicySingleVersusLoop(t *testing.T) {
	s := Stats{HP: 10, MaxHP: 100, XP: 150, Level: 1}

	single, _, err := ApplyCompletion(s, DifficultyEpic, LevelSingle)
	if err != nil {
		t.Fatalf("ApplyCompletion single: %v", err)
	}
	if single.Level != 2 {
		t.Fatalf("single policy level=%d, want 2", single.Level)
	}
	if single.XP != 150 {
		t.Fatalf("single policy xp=%v, want 150 (surplus kept against next threshold)", single.XP)
	}

	loop, out, err := ApplyCompletion(s, DifficultyEpic, LevelLoop)
	if err != nil {
		t.Fatalf("ApplyCompletion loop: %v", err)
	}
	if loop.Level != 3 {
		t.Fatalf("loop policy level=%d, want 3", loop.Level)
	}
	if loop.XP != 0 {
		t.Fatalf("loop policy xp=%v, want 0", loop.XP)
	}
	if out.LevelBefore != 1 || out.LevelAfter != 3 {
		t.Fatalf("loop outcome=%+v, want 1->3", out)
	}
}

func TestCompletionPreservesInvariants(t *testing.T) {
	states := []Stats{
		{HP: 1, MaxHP: 100, XP: 0, Level: 1},
		{HP: 100, MaxHP: 100, XP: 99.9, Level: 1, Credits: 3},
		{HP: 33, MaxHP: 100, XP: 140, Level: 2, Credits: 1000},
	}
	diffs := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic}

	for _, s := range states {
		for _, d := range diffs {
			got, _, err := ApplyCompletion(s, d, LevelSingle)
			if err != nil {
				t.Fatalf("ApplyCompletion(%+v, %s): %v", s, d, err)
			}
			if got.HP < 0 || got.HP > got.MaxHP {
				t.Fatalf("hp=%v out of [0,%v] for %+v %s", got.HP, got.MaxHP, s, d)
			}
			if got.XP < 0 {
				t.Fatalf("xp=%v < 0 for %+v %s", got.XP, s, d)
			}
			if got.Credits < 0 {
				t.Fatalf("credits=%d < 0 for %+v %s", got.Credits, s, d)
			}
		}
	}
}

func TestFailurePenalty(t *testing.T) {
	s := Stats{HP: 80, MaxHP: 100, XP: 30, Level: 2, Credits: 40}

	got, out, err := ApplyFailure(s, DifficultyMedium)
	if err != nil {
		t.Fatalf("ApplyFailure: %v", err)
	}
	if got.HP != 72 {
		t.Fatalf("hp=%v, want 72", got.HP)
	}
	if got.XP != 18 {
		t.Fatalf("xp=%v, want 18", got.XP)
	}
	if got.Credits != 40 {
		t.Fatalf("credits=%d, want unchanged 40", got.Credits)
	}
	if out.Died {
		t.Fatalf("unexpected death: %+v", out)
	}
}

func TestFailureXPClampedAtZero(t *testing.T) {
	s := Stats{HP: 80, MaxHP: 100, XP: 3, Level: 1}

	got, _, err := ApplyFailure(s, DifficultyEasy)
	if err != nil {
		t.Fatalf("ApplyFailure: %v", err)
	}
	if got.XP != 0 {
		t.Fatalf("xp=%v, want clamp at 0", got.XP)
	}
}

func TestFailureDeathRule(t *testing.T) {
	s := Stats{HP: 5, MaxHP: 100, XP: 50, Level: 1, Credits: 100}

	got, out, err := ApplyFailure(s, DifficultyEpic)
	if err != nil {
		t.Fatalf("ApplyFailure: %v", err)
	}
	if !out.Died {
		t.Fatalf("expected death at hp<=0")
	}
	if got.HP != 50 {
		t.Fatalf("hp=%v, want maxHP/2 = 50", got.HP)
	}
	if got.Credits != 90 {
		t.Fatalf("credits=%d, want floor(100*0.9)=90", got.Credits)
	}
	if got.XP != 0 {
		t.Fatalf("xp=%v, want floor(max(0,50-50)*0.9)=0", got.XP)
	}
}

func TestRewardTable(t *testing.T) {
	r, err := RewardFor(DifficultyHard)
	if err != nil {
		t.Fatalf("RewardFor: %v", err)
	}
	if r != (Reward{XP: 50, Credits: 30, FailXP: 25, FailHP: 15}) {
		t.Fatalf("hard reward=%+v", r)
	}
	if _, err := RewardFor(Difficulty("legendary")); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}

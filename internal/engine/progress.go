package engine

import "math"

const (
	baseThreshold   = 100.0
	thresholdGrowth = 1.5

	// Completing a task heals a fraction of its XP reward.
	healPerXP = 0.1

	// Dying restores half health but taxes XP and credits by 10%.
	deathRestoreFraction = 0.5
	deathTaxFraction     = 0.9
)

// LevelThreshold returns the XP needed to leave the given level:
// 100 * 1.5^(level-1). The value is fractional and compared directly
// against XP, no rounding.
func LevelThreshold(level int) float64 {
	return baseThreshold * math.Pow(thresholdGrowth, float64(level-1))
}

// LevelPolicy controls how XP overflow past a threshold is handled.
type LevelPolicy int

const (
	// LevelSingle grants at most one level per completion. Overflow XP is
	// measured against the pre-increment threshold and may still exceed the
	// next one; the surplus only counts on a later completion. This matches
	// the original rules and is the default.
	LevelSingle LevelPolicy = iota
	// LevelLoop keeps leveling until XP falls under the current threshold.
	LevelLoop
)

// CompleteOutcome reports what a completion did, for display.
type CompleteOutcome struct {
	XPGained      int
	CreditsGained int
	LevelBefore   int
	LevelAfter    int
	LevelUp       bool
}

// ApplyCompletion returns the stats after completing a task of the given
// difficulty. Healing is proportional to the XP reward and clamped to max
// HP; a level-up overrides it with a full heal.
func ApplyCompletion(s Stats, d Difficulty, policy LevelPolicy) (Stats, CompleteOutcome, error) {
	reward, err := RewardFor(d)
	if err != nil {
		return s, CompleteOutcome{}, err
	}

	out := CompleteOutcome{
		XPGained:      reward.XP,
		CreditsGained: reward.Credits,
		LevelBefore:   s.Level,
	}

	s.HP = math.Min(s.MaxHP, s.HP+float64(reward.XP)*healPerXP)
	s.XP += float64(reward.XP)

	if policy == LevelLoop {
		for s.XP >= LevelThreshold(s.Level) {
			s.XP -= LevelThreshold(s.Level)
			s.Level++
			s.HP = s.MaxHP
		}
	} else if threshold := LevelThreshold(s.Level); s.XP >= threshold {
		s.XP -= threshold
		s.Level++
		s.HP = s.MaxHP
	}

	s.Credits += reward.Credits
	out.LevelAfter = s.Level
	out.LevelUp = s.Level > out.LevelBefore
	return s, out, nil
}

// FailOutcome reports what a failure cost, for display.
type FailOutcome struct {
	HPLost int
	XPLost int
	Died   bool
}

// ApplyFailure returns the stats after failing a task of the given
// difficulty. Hitting zero HP triggers the death rule: half-health
// restore plus a 10% cut of XP and credits on top of the penalty.
func ApplyFailure(s Stats, d Difficulty) (Stats, FailOutcome, error) {
	reward, err := RewardFor(d)
	if err != nil {
		return s, FailOutcome{}, err
	}

	out := FailOutcome{HPLost: reward.FailHP, XPLost: reward.FailXP}

	s.HP -= float64(reward.FailHP)
	s.XP = math.Max(0, s.XP-float64(reward.FailXP))

	if s.HP <= 0 {
		s = applyDeath(s)
		out.Died = true
	}
	return s, out, nil
}

func applyDeath(s Stats) Stats {
	s.HP = s.MaxHP * deathRestoreFraction
	s.Credits = int(math.Floor(float64(s.Credits) * deathTaxFraction))
	s.XP = math.Floor(s.XP * deathTaxFraction)
	return s
}

package engine

import "fmt"

// Reward is the static payout/penalty row for one difficulty tier.
type Reward struct {
	XP      int
	Credits int
	FailXP  int
	FailHP  int
}

var difficultyRewards = map[Difficulty]Reward{
	DifficultyEasy:   {XP: 10, Credits: 5, FailXP: 5, FailHP: 3},
	DifficultyMedium: {XP: 25, Credits: 15, FailXP: 12, FailHP: 8},
	DifficultyHard:   {XP: 50, Credits: 30, FailXP: 25, FailHP: 15},
	DifficultyEpic:   {XP: 100, Credits: 60, FailXP: 50, FailHP: 30},
}

// RewardFor looks up the reward row for a difficulty tier.
func RewardFor(d Difficulty) (Reward, error) {
	r, ok := difficultyRewards[d]
	if !ok {
		return Reward{}, fmt.Errorf("invalid difficulty: %q", d)
	}
	return r, nil
}

package engine

import (
	"fmt"
	"strings"
	"time"
)

type RoutineType string

const (
	RoutineDaily RoutineType = "daily"
	RoutineHabit RoutineType = "habit"
	RoutineTodo  RoutineType = "todo"
)

func (t RoutineType) IsValid() bool {
	switch t {
	case RoutineDaily, RoutineHabit, RoutineTodo:
		return true
	default:
		return false
	}
}

func ParseRoutineType(input string) (RoutineType, error) {
	s := RoutineType(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid routine type: %q", input)
	}
	return s, nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyEpic   Difficulty = "epic"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	default:
		return false
	}
}

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty Difficulty = DifficultyMedium

func ParseDifficulty(input string) (Difficulty, error) {
	d := Difficulty(strings.TrimSpace(strings.ToLower(input)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid difficulty: %q", input)
	}
	return d, nil
}

type HabitType string

const (
	HabitPositive HabitType = "positive"
	HabitNegative HabitType = "negative"
)

func (h HabitType) IsValid() bool {
	switch h {
	case HabitPositive, HabitNegative:
		return true
	default:
		return false
	}
}

type ItemType string

const (
	ItemConsumable ItemType = "consumable"
	ItemPermanent  ItemType = "permanent"
)

func (t ItemType) IsValid() bool {
	switch t {
	case ItemConsumable, ItemPermanent:
		return true
	default:
		return false
	}
}

// Stats is the player's progression state. HP and XP are floats because
// the level threshold and the completion heal are fractional.
type Stats struct {
	HP      float64
	MaxHP   float64
	XP      float64
	Level   int
	Credits int
	Streak  int
}

// NewStats returns the starting stats for a fresh profile.
func NewStats() Stats {
	return Stats{HP: 100, MaxHP: 100, XP: 0, Level: 1, Credits: 0, Streak: 0}
}

type ChecklistItem struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Routine struct {
	ID           string
	Title        string
	Type         RoutineType
	Difficulty   Difficulty
	HabitType    HabitType // habits only
	DaysOfWeek   []int     // dailies only; 0 = Sunday .. 6 = Saturday
	CompletedAt  *time.Time
	IsPomodoro   bool
	PomodoroTime int // minutes
	Checklist    []ChecklistItem
	Active       bool
}

type ShopItem struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Stock       *int
	Type        ItemType
}

// InventoryItem references a ShopItem; it never owns it. Entries are
// removed when quantity reaches zero.
type InventoryItem struct {
	ID          string
	Item        *ShopItem
	Quantity    int
	PurchasedAt time.Time
}

type LogStatus string

const (
	LogCompleted LogStatus = "completed"
	LogFailed    LogStatus = "failed"
)

// RoutineLog is an append-only audit fact; one row per complete/fail event.
type RoutineLog struct {
	RoutineID string
	UserID    string
	Date      string // calendar day, YYYY-MM-DD
	Status    LogStatus
}

// DayKey formats a timestamp as the calendar-day key used by routine logs.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameCalendarDay reports whether two timestamps fall on the same calendar
// day (date granularity, not 24h elapsed).
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

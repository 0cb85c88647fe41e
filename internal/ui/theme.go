package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LifeForge theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSparkle = "✨"
	IconHeart   = "❤️"
	IconCoin    = "🪙"
	IconFlame   = "🔥"
	IconDone    = "✅"
	IconSkull   = "💀"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBag     = "🎒"
	IconShop    = "🏪"
	IconLoop    = "🔁"
	IconSun     = "🌅"
	IconTomato  = "🍅"
	IconBell    = "🔔"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeDeath   = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("YOU DIED")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// TypeIcon picks the marker for a routine type string.
func TypeIcon(routineType string) string {
	switch routineType {
	case "daily":
		return IconSun
	case "habit":
		return IconLoop
	default:
		return IconDone
	}
}

// DifficultyText renders a difficulty tier with matching weight.
func DifficultyText(d string) string {
	switch d {
	case "easy":
		return Good.Render("easy")
	case "medium":
		return Warn.Render("medium")
	case "hard":
		return Bad.Render("hard")
	case "epic":
		return Gold.Render("epic")
	default:
		return Muted.Render(d)
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
)

// help-study theme (CLI + TUI).

const (
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconOpen     = "⬜"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconBook     = "📚"
	IconFlag     = "🚩"
	IconCalendar = "📅"
	IconCheck    = "✔️"
	IconLock     = "🔒"
	IconTrash    = "🗑️"
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
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	LevelUpBanner = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
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

// BadgeIcon maps a badge icon tag to an emoji.
func BadgeIcon(tag string) string {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "check":
		return IconCheck
	case "book":
		return IconBook
	case "calendar":
		return IconCalendar
	case "flag":
		return IconFlag
	default:
		return IconTrophy
	}
}

func TypeIcon(taskType string) string {
	if t, ok := progress.ParseTaskType(taskType); ok && t == progress.TaskTypeDeadline {
		return IconFlag
	}
	return IconBook
}

func CheckBox(done bool) string {
	if done {
		return IconDone
	}
	return IconOpen
}

// Bar renders a plain [###---] bar of value out of total.
func Bar(value, total float64, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(value / total * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// XPBar renders progress toward the next level.
func XPBar(p progress.Progress, width int) string {
	return Bar(p.XP, progress.Requirement(p.Level), width)
}

// FormatXP prints whole numbers without decimals.
func FormatXP(xp float64) string {
	if xp == float64(int64(xp)) {
		return fmt.Sprintf("%d", int64(xp))
	}
	return fmt.Sprintf("%.1f", xp)
}

func SignedXP(delta float64) string {
	switch {
	case delta > 0:
		return Good.Render("+" + FormatXP(delta) + " XP")
	case delta < 0:
		return Warn.Render("-" + FormatXP(-delta) + " XP")
	default:
		return Muted.Render("±0 XP")
	}
}

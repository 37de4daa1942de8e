package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

// service is the slice of planner.Service the board needs.
type service interface {
	Progress(ctx context.Context) (progress.Progress, error)
	Badges(ctx context.Context) ([]planner.BadgeStatus, error)
	Day(ctx context.Context, date string) (*planner.DaySummary, error)
	UpcomingDeadlines(ctx context.Context, from string, limit int) ([]storage.Task, error)
	ToggleTask(ctx context.Context, id string) (*planner.ToggleResult, error)
	Today() string
}

type boardModel struct {
	ctx           context.Context
	svc           service
	deadlineLimit int

	width  int
	height int

	progress  *progress.Progress
	badges    []planner.BadgeStatus
	today     []storage.Task
	deadlines []storage.Task

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	progress  progress.Progress
	badges    []planner.BadgeStatus
	today     []storage.Task
	deadlines []storage.Task
	err       error
}

type toggledMsg struct {
	res *planner.ToggleResult
	err error
}

func newBoardModel(ctx context.Context, svc service, deadlineLimit int) boardModel {
	if deadlineLimit <= 0 {
		deadlineLimit = 5
	}
	return boardModel{
		ctx:           ctx,
		svc:           svc,
		deadlineLimit: deadlineLimit,
		loading:       true,
		lastLog:       "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.Progress(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		badges, err := m.svc.Badges(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		date := m.svc.Today()
		day, err := m.svc.Day(m.ctx, date)
		if err != nil {
			return loadedMsg{err: err}
		}
		dl, err := m.svc.UpcomingDeadlines(m.ctx, date, m.deadlineLimit)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{progress: p, badges: badges, today: day.Tasks, deadlines: dl}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTask(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		p := msg.progress
		m.progress = &p
		m.badges = msg.badges
		m.today = msg.today
		m.deadlines = msg.deadlines
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = toggleLog(msg.res)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				m.lastLog = "Nothing to toggle."
				return m, nil
			}
			t := rows[m.selected]
			m.lastLog = fmt.Sprintf("Toggling %q…", t.Title)
			return m, m.toggleCmd(t.ID)
		}
	}
	return m, nil
}

func toggleLog(res *planner.ToggleResult) string {
	verb := "Reopened"
	if res.Completed {
		verb = "Completed"
	}
	line := fmt.Sprintf("%s %q: %+g XP", verb, res.Title, res.XPDelta)
	if res.LevelUp {
		line += fmt.Sprintf(" | level %d → %d", res.LevelBefore, res.LevelAfter)
	}
	for _, b := range res.Unlocked {
		line += fmt.Sprintf(" | badge %s (+%d XP)", b.Name, b.XPReward)
	}
	return line
}

// rows lists today's tasks followed by upcoming deadlines not already shown.
func (m boardModel) rows() []storage.Task {
	out := make([]storage.Task, 0, len(m.today)+len(m.deadlines))
	seen := make(map[string]bool, len(m.today))
	for _, t := range m.today {
		seen[t.ID] = true
		out = append(out, t)
	}
	for _, t := range m.deadlines {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func (m *boardModel) clampSelection() {
	n := len(m.rows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	n := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < n; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.progress == nil {
		return "help-study: loading…"
	}
	p := *m.progress
	return fmt.Sprintf("help-study | Level %d | XP %s/%s %s",
		p.Level, ui.FormatXP(p.XP), ui.FormatXP(progress.Requirement(p.Level)), ui.XPBar(p, 30))
}

func (m boardModel) renderSidebar() string {
	if m.progress == nil {
		return "Badges\n\nLoading…"
	}
	lines := []string{fmt.Sprintf("Badges (%d/%d)", m.progress.CountAchieved(), len(m.badges))}
	for _, b := range m.badges {
		lines = append(lines, badgeLine(b))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: toggle done")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func badgeLine(b planner.BadgeStatus) string {
	switch {
	case b.Achieved && b.AchievedAt != nil:
		return fmt.Sprintf("%s %s %s", ui.BadgeIcon(b.Icon), b.Name, b.AchievedAt.Local().Format("01-02"))
	case b.Achieved:
		return fmt.Sprintf("%s %s", ui.BadgeIcon(b.Icon), b.Name)
	case !b.Available:
		return fmt.Sprintf("%s %s (n/a)", ui.IconLock, b.Name)
	default:
		return fmt.Sprintf("%s %s", ui.IconLock, b.Name)
	}
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	rows := m.rows()
	var out []string

	done := 0
	for _, t := range m.today {
		if t.IsCompleted {
			done++
		}
	}
	out = append(out, fmt.Sprintf("Today (%d/%d)", done, len(m.today)))
	if len(m.today) == 0 {
		out = append(out, "(nothing scheduled)")
	}
	for i := range rows {
		if i == len(m.today) {
			out = append(out, "", "Upcoming deadlines")
		}
		out = append(out, m.renderRow(i, rows[i]))
	}
	if len(rows) == len(m.today) {
		out = append(out, "", "Upcoming deadlines", "(none)")
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderRow(i int, t storage.Task) string {
	cursor := "  "
	if i == m.selected {
		cursor = "> "
	}
	detail := t.Date
	if t.Duration != nil {
		detail = fmt.Sprintf("%gh", *t.Duration)
	}
	return fmt.Sprintf("%s%s %s %s (%s)", cursor, ui.CheckBox(t.IsCompleted), ui.TypeIcon(t.Type), t.Title, detail)
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

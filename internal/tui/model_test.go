package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

type fakeService struct {
	today     []storage.Task
	deadlines []storage.Task
	toggled   []string
}

func (f *fakeService) Progress(context.Context) (progress.Progress, error) {
	return progress.NewProgress(progress.DefaultBadges()), nil
}

func (f *fakeService) Badges(context.Context) ([]planner.BadgeStatus, error) {
	var out []planner.BadgeStatus
	for _, b := range progress.DefaultBadges() {
		out = append(out, planner.BadgeStatus{Badge: b, Available: progress.HasRule(b.ID)})
	}
	return out, nil
}

func (f *fakeService) Day(_ context.Context, date string) (*planner.DaySummary, error) {
	return &planner.DaySummary{Date: date, Tasks: f.today}, nil
}

func (f *fakeService) UpcomingDeadlines(context.Context, string, int) ([]storage.Task, error) {
	return f.deadlines, nil
}

func (f *fakeService) ToggleTask(_ context.Context, id string) (*planner.ToggleResult, error) {
	f.toggled = append(f.toggled, id)
	return &planner.ToggleResult{TaskID: id, Title: id, Completed: true, XPDelta: 50}, nil
}

func (f *fakeService) Today() string { return "2026-10-18" }

func loaded(t *testing.T, f *fakeService) boardModel {
	t.Helper()
	m := newBoardModel(context.Background(), f, 5)
	msg := m.loadCmd()()
	next, _ := m.Update(msg)
	return next.(boardModel)
}

func TestBoardRowsSkipDuplicateDeadlines(t *testing.T) {
	dl := storage.Task{ID: "d1", Title: "Essay", Type: "DEADLINE", Date: "2026-10-18"}
	f := &fakeService{
		today:     []storage.Task{{ID: "s1", Title: "Read", Type: "STUDY", Date: "2026-10-18"}, dl},
		deadlines: []storage.Task{dl, {ID: "d2", Title: "Lab", Type: "DEADLINE", Date: "2026-10-21"}},
	}
	m := loaded(t, f)
	rows := m.rows()
	if len(rows) != 3 {
		t.Fatalf("rows=%d want 3", len(rows))
	}
	if rows[2].ID != "d2" {
		t.Fatalf("last row=%s want d2", rows[2].ID)
	}
	view := m.View()
	if !strings.Contains(view, "Today (0/2)") || !strings.Contains(view, "Upcoming deadlines") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestBoardToggleSelected(t *testing.T) {
	f := &fakeService{today: []storage.Task{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}
	m := loaded(t, f)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = next.(boardModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = next.(boardModel)
	if cmd == nil {
		t.Fatalf("expected toggle command")
	}
	next, _ = m.Update(cmd())
	m = next.(boardModel)
	if len(f.toggled) != 1 || f.toggled[0] != "b" {
		t.Fatalf("toggled=%v want [b]", f.toggled)
	}
	if !strings.Contains(m.lastLog, "Completed") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestBoardMoveStaysInRange(t *testing.T) {
	m := loaded(t, &fakeService{today: []storage.Task{{ID: "only"}}})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = next.(boardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(boardModel)
	if m.selected != 0 {
		t.Fatalf("selected=%d want 0", m.selected)
	}
}

func TestBadgeLineFlagsMissingRule(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	earned := badgeLine(planner.BadgeStatus{Badge: progress.Badge{Name: "First Step", Icon: "check", Achieved: true}, AchievedAt: &at, Available: true})
	if !strings.Contains(earned, "10-18") {
		t.Fatalf("earned badge line %q lacks unlock date", earned)
	}
	gap := badgeLine(planner.BadgeStatus{Badge: progress.Badge{Name: "Perfect Week"}})
	if !strings.Contains(gap, "(n/a)") {
		t.Fatalf("badge without rule not flagged: %q", gap)
	}
	locked := badgeLine(planner.BadgeStatus{Badge: progress.Badge{Name: "Studious"}, Available: true})
	if strings.Contains(locked, "(n/a)") {
		t.Fatalf("available badge flagged: %q", locked)
	}
}

func TestBoardSidebarListsBadges(t *testing.T) {
	m := loaded(t, &fakeService{})
	view := m.View()
	if !strings.Contains(view, "Badges (0/5)") || !strings.Contains(view, "Perfect Week (n/a)") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

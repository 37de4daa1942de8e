package api

import (
	"time"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

type subjectView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Goal      string    `json:"goal"`
	CreatedAt time.Time `json:"createdAt"`
}

func newSubjectView(s storage.Subject) subjectView {
	return subjectView{ID: s.ID, Name: s.Name, Color: s.Color, Goal: s.Goal, CreatedAt: s.CreatedAt}
}

type taskView struct {
	ID                  string    `json:"id"`
	SubjectID           string    `json:"subjectId"`
	Title               string    `json:"title"`
	Date                string    `json:"date"`
	Type                string    `json:"type"`
	Duration            *float64  `json:"duration,omitempty"`
	IsCompleted         bool      `json:"isCompleted"`
	Assignment          *string   `json:"assignment,omitempty"`
	Pages               *string   `json:"pages,omitempty"`
	Memo                *string   `json:"memo,omitempty"`
	StartTime           *string   `json:"startTime,omitempty"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func newTaskView(t storage.Task) taskView {
	return taskView{
		ID:                  t.ID,
		SubjectID:           t.SubjectID,
		Title:               t.Title,
		Date:                t.Date,
		Type:                t.Type,
		Duration:            t.Duration,
		IsCompleted:         t.IsCompleted,
		Assignment:          t.Assignment,
		Pages:               t.Pages,
		Memo:                t.Memo,
		StartTime:           t.StartTime,
		NotificationEnabled: t.NotificationEnabled,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func newTaskViews(in []storage.Task) []taskView {
	out := make([]taskView, len(in))
	for i := range in {
		out[i] = newTaskView(in[i])
	}
	return out
}

type progressView struct {
	Level       int              `json:"level"`
	XP          float64          `json:"xp"`
	Requirement float64          `json:"requirement"`
	Badges      []progress.Badge `json:"badges"`
}

func newProgressView(p progress.Progress) progressView {
	badges := p.Badges
	if badges == nil {
		badges = []progress.Badge{}
	}
	return progressView{Level: p.Level, XP: p.XP, Requirement: progress.Requirement(p.Level), Badges: badges}
}

type badgeView struct {
	progress.Badge
	AchievedAt *time.Time `json:"achievedAt,omitempty"`
	Available  bool       `json:"available"`
}

func newBadgeViews(in []planner.BadgeStatus) []badgeView {
	out := make([]badgeView, len(in))
	for i, b := range in {
		out[i] = badgeView{Badge: b.Badge, AchievedAt: b.AchievedAt, Available: b.Available}
	}
	return out
}

type outcomeView struct {
	Progress    progressView     `json:"progress"`
	Unlocked    []progress.Badge `json:"unlocked"`
	LevelBefore int              `json:"levelBefore"`
	LevelAfter  int              `json:"levelAfter"`
	LevelUp     bool             `json:"levelUp"`
}

func newOutcomeView(o planner.Outcome) outcomeView {
	unlocked := o.Unlocked
	if unlocked == nil {
		unlocked = []progress.Badge{}
	}
	return outcomeView{
		Progress:    newProgressView(o.Progress),
		Unlocked:    unlocked,
		LevelBefore: o.LevelBefore,
		LevelAfter:  o.LevelAfter,
		LevelUp:     o.LevelUp,
	}
}

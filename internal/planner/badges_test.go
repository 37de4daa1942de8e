package planner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

func TestBadgesCarryUnlockTime(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)

	before, err := svc.Badges(ctx)
	require.NoError(t, err)
	require.Len(t, before, 5)
	for _, b := range before {
		assert.Nil(t, b.AchievedAt, b.ID)
	}

	_, err = svc.ToggleTask(ctx, newStudy(t, svc, sub, "2026-10-18", 1))
	require.NoError(t, err)

	after, err := svc.Badges(ctx)
	require.NoError(t, err)
	for _, b := range after {
		switch b.ID {
		case progress.BadgeFirstStep:
			assert.True(t, b.Achieved)
			require.NotNil(t, b.AchievedAt)
			assert.True(t, b.AchievedAt.Equal(testNow))
			assert.True(t, b.Available)
		case progress.BadgePerfectWeek:
			assert.False(t, b.Achieved)
			assert.False(t, b.Available, "perfect_week has no unlock rule")
		default:
			assert.Nil(t, b.AchievedAt, b.ID)
			assert.True(t, b.Available, b.ID)
		}
	}
}

func TestXPSinceWeekStart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)

	start := svc.WeekStart()
	assert.True(t, start.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)), "week start %s", start)

	id := newStudy(t, svc, sub, "2026-10-18", 3)
	_, err := svc.ToggleTask(ctx, id)
	require.NoError(t, err)

	xp, err := svc.XPSince(ctx, start)
	require.NoError(t, err)
	assert.Equal(t, 60.0, xp)

	xp, err = svc.XPSince(ctx, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0.0, xp)
}

func TestTodayFollowsClockZone(t *testing.T) {
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "zone.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 18th is already the 19th in Tokyo.
	local := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC).In(tokyo)
	svc := NewService(db, nil, WithClock(func() time.Time { return local }))

	assert.Equal(t, "2026-10-19", svc.Today())
	start := svc.WeekStart()
	assert.True(t, start.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, tokyo)), "week start %s", start)
	assert.Equal(t, "JST", start.Location().String())

	sub, err := svc.CreateSubject(context.Background(), SubjectInput{Name: "Japanese"})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, sub.CreatedAt.Location(), "stored timestamps are UTC")
}

func TestUpdateTaskClearsDuration(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)
	id := newStudy(t, svc, sub, "2026-10-18", 2)

	res, err := svc.UpdateTask(ctx, id, TaskPatch{ClearDuration: true, Duration: ptr(5.0)})
	require.NoError(t, err)
	assert.Nil(t, res.Task.Duration)

	got, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Duration)
}

func TestNewServiceWarnsOnBadgesWithoutRule(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	defs := progress.MergeBadges(progress.DefaultBadges(), []progress.Badge{{ID: "night_owl", Name: "Night Owl"}})

	NewService(nil, zap.New(core), WithBadges(defs))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "night_owl", entry.ContextMap()["badge"])

	core, logs = observer.New(zap.WarnLevel)
	NewService(nil, zap.New(core))
	assert.Equal(t, 0, logs.Len(), "the built-in table only lacks the perfect_week rule")
}

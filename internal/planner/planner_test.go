package planner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
	"github.com/ukprmenbersaku-abc/help-study/internal/suggest"
)

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open db")
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db, nil, WithClock(func() time.Time { return testNow }))
}

func ptr[T any](v T) *T { return &v }

func newSubject(t *testing.T, svc *Service) string {
	t.Helper()
	sub, err := svc.CreateSubject(context.Background(), SubjectInput{Name: "English", Goal: "TOEIC 800"})
	require.NoError(t, err)
	return sub.ID
}

func newStudy(t *testing.T, svc *Service, subjectID string, date string, h float64) string {
	t.Helper()
	res, err := svc.CreateTask(context.Background(), TaskInput{SubjectID: subjectID, Title: "Study", Date: date, Type: "study", Duration: &h})
	require.NoError(t, err)
	return res.Task.ID
}

func newDeadline(t *testing.T, svc *Service, subjectID string, date string) string {
	t.Helper()
	res, err := svc.CreateTask(context.Background(), TaskInput{SubjectID: subjectID, Title: "Submit", Date: date, Type: "deadline"})
	require.NoError(t, err)
	return res.Task.ID
}

func TestProgressFirstRun(t *testing.T) {
	svc := newTestService(t)
	p, err := svc.Progress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0.0, p.XP)
	assert.Len(t, p.Badges, 5)
}

func TestToggleStudyTaskRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)
	id := newStudy(t, svc, sub, "2026-10-18", 3)

	done, err := svc.ToggleTask(ctx, id)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, 60.0, done.XPDelta)
	// 60 from the task + 50 from first_step = 110 -> level 2 with 10 left
	assert.True(t, done.LevelUp)
	assert.Equal(t, 2, done.LevelAfter)
	assert.Equal(t, 10.0, done.Progress.XP)
	require.Len(t, done.Unlocked, 1)
	assert.Equal(t, progress.BadgeFirstStep, done.Unlocked[0].ID)

	undone, err := svc.ToggleTask(ctx, id)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Equal(t, -60.0, undone.XPDelta)
	assert.Equal(t, 0.0, undone.Progress.XP, "xp is floored at zero")
	assert.Equal(t, 2, undone.LevelAfter, "level never goes down")
	assert.Empty(t, undone.Unlocked)

	p, err := svc.Progress(ctx)
	require.NoError(t, err)
	b, ok := p.Badge(progress.BadgeFirstStep)
	require.True(t, ok)
	assert.True(t, b.Achieved, "badges stay achieved after un-completing")

	task, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.False(t, task.IsCompleted)

	activity, err := svc.RecentActivity(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, activity, 2)
}

func TestDeadlineMasterThroughToggles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)

	var last *ToggleResult
	for i := 0; i < 5; i++ {
		id := newDeadline(t, svc, sub, "2026-10-20")
		res, err := svc.ToggleTask(ctx, id)
		require.NoError(t, err)
		if i < 4 {
			for _, b := range res.Unlocked {
				assert.NotEqual(t, progress.BadgeDeadlineMaster, b.ID)
			}
		}
		last = res
	}
	require.Len(t, last.Unlocked, 1)
	assert.Equal(t, progress.BadgeDeadlineMaster, last.Unlocked[0].ID)
	assert.Equal(t, 3, last.LevelAfter)
	assert.Equal(t, 200.0, last.Progress.XP)

	sixth, err := svc.ToggleTask(ctx, newDeadline(t, svc, sub, "2026-10-21"))
	require.NoError(t, err)
	assert.Empty(t, sixth.Unlocked)
	assert.Equal(t, 3, sixth.LevelAfter)
	assert.Equal(t, 250.0, sixth.Progress.XP)
}

func TestToggleMissingTask(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ToggleTask(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCreateTaskValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)

	cases := map[string]TaskInput{
		"title":      {SubjectID: sub, Title: " ", Date: "2026-10-18", Type: "study"},
		"date":       {SubjectID: sub, Title: "x", Date: "18/10/2026", Type: "study"},
		"type":       {SubjectID: sub, Title: "x", Date: "2026-10-18", Type: "exam"},
		"duration":   {SubjectID: sub, Title: "x", Date: "2026-10-18", Type: "study", Duration: ptr(-1.0)},
		"start time": {SubjectID: sub, Title: "x", Date: "2026-10-18", Type: "study", StartTime: ptr("25:99")},
		"subject":    {Title: "x", Date: "2026-10-18", Type: "study"},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, in)
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, field, verr.Field)
		})
	}

	_, err := svc.CreateTask(ctx, TaskInput{SubjectID: "ghost", Title: "x", Date: "2026-10-18", Type: "study"})
	assert.ErrorIs(t, err, ErrSubjectNotFound)

	all, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateDeadlineDropsDuration(t *testing.T) {
	svc := newTestService(t)
	sub := newSubject(t, svc)
	res, err := svc.CreateTask(context.Background(), TaskInput{
		SubjectID: sub, Title: " Report ", Date: "2026-10-25", Type: "DEADLINE",
		Duration: ptr(4.0), Memo: ptr("  "), StartTime: ptr("09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Report", res.Task.Title)
	assert.Equal(t, "DEADLINE", res.Task.Type)
	assert.Nil(t, res.Task.Duration)
	assert.Nil(t, res.Task.Memo)
	require.NotNil(t, res.Task.StartTime)
	assert.Equal(t, "09:00", *res.Task.StartTime)
}

func TestUpdateTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)
	id := newStudy(t, svc, sub, "2026-10-18", 1)

	res, err := svc.UpdateTask(ctx, id, TaskPatch{Title: ptr("Chapter 3"), Duration: ptr(2.5), Pages: ptr("40-55")})
	require.NoError(t, err)
	assert.Equal(t, "Chapter 3", res.Task.Title)
	assert.Equal(t, 2.5, *res.Task.Duration)

	got, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Chapter 3", got.Title)
	require.NotNil(t, got.Pages)
	assert.Equal(t, "40-55", *got.Pages)

	_, err = svc.UpdateTask(ctx, id, TaskPatch{Date: ptr("tomorrow")})
	var verr ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = svc.UpdateTask(ctx, "missing", TaskPatch{})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTaskKeepsProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)
	id := newStudy(t, svc, sub, "2026-10-18", 10)

	done, err := svc.ToggleTask(ctx, id)
	require.NoError(t, err)

	del, err := svc.DeleteTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, done.Progress.Level, del.Progress.Level)
	assert.Equal(t, done.Progress.XP, del.Progress.XP)
	assert.Equal(t, done.Progress.CountAchieved(), del.Progress.CountAchieved())

	_, err = svc.DeleteTask(ctx, id)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSubjects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateSubject(ctx, SubjectInput{Name: "Math"})
	require.NoError(t, err)
	b, err := svc.CreateSubject(ctx, SubjectInput{Name: "Physics", Color: "#60a5fa"})
	require.NoError(t, err)
	assert.Equal(t, SubjectColors[0], a.Color)
	assert.Equal(t, "#60A5FA", b.Color)

	_, err = svc.CreateSubject(ctx, SubjectInput{Name: "Art", Color: "red"})
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "color", verr.Field)

	_, err = svc.CreateSubject(ctx, SubjectInput{Name: "  "})
	assert.Error(t, err)

	up, err := svc.UpdateSubject(ctx, a.ID, SubjectPatch{Goal: ptr("Pass calculus")})
	require.NoError(t, err)
	assert.Equal(t, "Pass calculus", up.Goal)
	assert.Equal(t, "Math", up.Name)

	list, err := svc.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.UpdateSubject(ctx, "missing", SubjectPatch{})
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestDeleteSubjectRemovesItsTasks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	keep := newSubject(t, svc)
	drop := newSubject(t, svc)
	newStudy(t, svc, keep, "2026-10-18", 1)
	id := newDeadline(t, svc, drop, "2026-10-19")
	newDeadline(t, svc, drop, "2026-10-20")
	_, err := svc.ToggleTask(ctx, id)
	require.NoError(t, err)

	res, err := svc.DeleteSubject(ctx, drop)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TasksDeleted)
	b, _ := res.Progress.Badge(progress.BadgeFirstStep)
	assert.True(t, b.Achieved)

	all, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep, all[0].SubjectID)

	_, err = svc.DeleteSubject(ctx, drop)
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestImportSuggestions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)

	res, err := svc.ImportSuggestions(ctx, sub, testNow, []suggest.Suggestion{
		{Title: "Vocabulary", Description: "50 words", EstimatedHours: 1},
		{Title: "Listening", EstimatedHours: 1.5},
		{Title: "Mock test", EstimatedHours: 2},
	})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 3)
	assert.Equal(t, "2026-10-18", res.Tasks[0].Date)
	assert.Equal(t, "2026-10-20", res.Tasks[2].Date)
	assert.Equal(t, "STUDY", res.Tasks[1].Type)
	assert.Equal(t, 1.5, *res.Tasks[1].Duration)
	require.NotNil(t, res.Tasks[0].Memo)
	assert.Nil(t, res.Tasks[1].Memo)

	_, err = svc.ImportSuggestions(ctx, sub, testNow, nil)
	assert.ErrorIs(t, err, suggest.ErrEmptyPlan)
}

func TestImportSuggestionsIsAtomic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)

	_, err := svc.ImportSuggestions(ctx, sub, testNow, []suggest.Suggestion{
		{Title: "Fine", EstimatedHours: 1},
		{Title: "", EstimatedHours: 1},
	})
	require.Error(t, err)

	all, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = svc.ImportSuggestions(ctx, "ghost", testNow, []suggest.Suggestion{{Title: "x"}})
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestDashboardReads(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sub := newSubject(t, svc)
	today := svc.Today()
	require.Equal(t, "2026-10-18", today)

	a := newStudy(t, svc, sub, today, 2)
	newStudy(t, svc, sub, today, 1)
	newDeadline(t, svc, sub, "2026-10-17")
	d2 := newDeadline(t, svc, sub, "2026-10-22")
	newDeadline(t, svc, sub, "2026-10-19")
	_, err := svc.ToggleTask(ctx, a)
	require.NoError(t, err)

	day, err := svc.Day(ctx, today)
	require.NoError(t, err)
	assert.Len(t, day.Tasks, 2)
	assert.Equal(t, 1, day.Completed)

	upcoming, err := svc.UpcomingDeadlines(ctx, today, 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "2026-10-19", upcoming[0].Date)
	assert.Equal(t, d2, upcoming[1].ID)

	from, to := WeekRange(testNow)
	assert.Equal(t, "2026-10-12", from)
	assert.Equal(t, "2026-10-18", to)
	week, err := svc.ListTasksBetween(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, week, 3)

	_, err = svc.ListTasksBetween(ctx, to, from)
	assert.Error(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.AnyCompleted)
	assert.Equal(t, 2.0, stats.StudyHours)
}

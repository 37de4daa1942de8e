package planner

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

type TaskInput struct {
	SubjectID           string
	Title               string
	Date                string
	Type                string
	Duration            *float64
	Assignment          *string
	Pages               *string
	Memo                *string
	StartTime           *string
	NotificationEnabled bool
}

// TaskPatch edits a task; nil fields are left unchanged. An empty string clears
// an optional text field and ClearDuration removes the duration. The completion
// flag is only changed by ToggleTask.
type TaskPatch struct {
	SubjectID           *string
	Title               *string
	Date                *string
	Type                *string
	Duration            *float64
	ClearDuration       bool
	Assignment          *string
	Pages               *string
	Memo                *string
	StartTime           *string
	NotificationEnabled *bool
}

type TaskResult struct {
	Task storage.Task
	Outcome
}

type DeleteTaskResult struct {
	TaskID string
	Outcome
}

func optionalText(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

// normalizeTask validates t in place against the stored subjects.
func normalizeTask(ctx context.Context, r storage.Repos, t *storage.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return invalid("title", "title is required")
	}

	day, err := ParseDate(t.Date)
	if err != nil {
		return err
	}
	t.Date = day.Format(DateLayout)

	typ, ok := progress.ParseTaskType(t.Type)
	if !ok {
		return invalid("type", "%q is not study or deadline", t.Type)
	}
	t.Type = string(typ)

	switch typ {
	case progress.TaskTypeStudy:
		if t.Duration != nil {
			d := *t.Duration
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return invalid("duration", "must be a non-negative number of hours")
			}
		}
	case progress.TaskTypeDeadline:
		t.Duration = nil
	}

	t.Assignment = optionalText(t.Assignment)
	t.Pages = optionalText(t.Pages)
	t.Memo = optionalText(t.Memo)
	t.StartTime = optionalText(t.StartTime)
	if t.StartTime != nil && !validStartTime(*t.StartTime) {
		return invalid("start time", "%q is not HH:MM", *t.StartTime)
	}

	t.SubjectID = strings.TrimSpace(t.SubjectID)
	if t.SubjectID == "" {
		return invalid("subject", "subject is required")
	}
	sub, err := r.Subjects.Get(ctx, t.SubjectID)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("subject %s: %w", t.SubjectID, ErrSubjectNotFound)
	}
	return nil
}

func (s *Service) CreateTask(ctx context.Context, in TaskInput) (*TaskResult, error) {
	now := s.stamp()
	t := storage.Task{
		ID:                  s.newID(),
		SubjectID:           in.SubjectID,
		Title:               in.Title,
		Date:                in.Date,
		Type:                in.Type,
		Duration:            in.Duration,
		Assignment:          in.Assignment,
		Pages:               in.Pages,
		Memo:                in.Memo,
		StartTime:           in.StartTime,
		NotificationEnabled: in.NotificationEnabled,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	out, err := s.run(ctx, func(r storage.Repos, _ *progress.Progress) error {
		if err := normalizeTask(ctx, r, &t); err != nil {
			return err
		}
		return r.Tasks.Insert(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("task created", zap.String("task_id", t.ID), zap.String("type", t.Type), zap.String("date", t.Date))
	return &TaskResult{Task: t, Outcome: *out}, nil
}

func (s *Service) GetTask(ctx context.Context, id string) (*storage.Task, error) {
	t, err := storage.NewTaskRepo(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	return t, nil
}

func (s *Service) ListTasks(ctx context.Context) ([]storage.Task, error) {
	return storage.NewTaskRepo(s.db).ListAll(ctx)
}

// ListTasksBetween returns tasks dated within [from, to].
func (s *Service) ListTasksBetween(ctx context.Context, from, to string) ([]storage.Task, error) {
	f, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return nil, err
	}
	if t.Before(f) {
		return nil, invalid("range", "%s is before %s", to, from)
	}
	return storage.NewTaskRepo(s.db).ListBetween(ctx, f.Format(DateLayout), t.Format(DateLayout))
}

func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*TaskResult, error) {
	var t *storage.Task
	out, err := s.run(ctx, func(r storage.Repos, _ *progress.Progress) error {
		var err error
		t, err = r.Tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
		}
		applyPatch(t, patch)
		t.UpdatedAt = s.stamp()
		if err := normalizeTask(ctx, r, t); err != nil {
			return err
		}
		return r.Tasks.Update(ctx, *t)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("task updated", zap.String("task_id", id))
	return &TaskResult{Task: *t, Outcome: *out}, nil
}

func applyPatch(t *storage.Task, p TaskPatch) {
	if p.SubjectID != nil {
		t.SubjectID = *p.SubjectID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	switch {
	case p.ClearDuration:
		t.Duration = nil
	case p.Duration != nil:
		t.Duration = p.Duration
	}
	if p.Assignment != nil {
		t.Assignment = p.Assignment
	}
	if p.Pages != nil {
		t.Pages = p.Pages
	}
	if p.Memo != nil {
		t.Memo = p.Memo
	}
	if p.StartTime != nil {
		t.StartTime = p.StartTime
	}
	if p.NotificationEnabled != nil {
		t.NotificationEnabled = *p.NotificationEnabled
	}
}

func (s *Service) DeleteTask(ctx context.Context, id string) (*DeleteTaskResult, error) {
	out, err := s.run(ctx, func(r storage.Repos, _ *progress.Progress) error {
		t, err := r.Tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
		}
		return r.Tasks.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("task deleted", zap.String("task_id", id))
	return &DeleteTaskResult{TaskID: id, Outcome: *out}, nil
}

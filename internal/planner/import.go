package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
	"github.com/ukprmenbersaku-abc/help-study/internal/suggest"
)

type ImportResult struct {
	Tasks []storage.Task
	Outcome
}

// ImportSuggestions inserts suggested study tasks for a subject, one per day
// from start, in a single transaction.
func (s *Service) ImportSuggestions(ctx context.Context, subjectID string, start time.Time, in []suggest.Suggestion) (*ImportResult, error) {
	if len(in) == 0 {
		return nil, suggest.ErrEmptyPlan
	}
	drafts := suggest.Schedule(subjectID, start, in)
	now := s.stamp()

	tasks := make([]storage.Task, 0, len(drafts))
	out, err := s.run(ctx, func(r storage.Repos, _ *progress.Progress) error {
		for i, d := range drafts {
			hours := d.Duration
			memo := d.Memo
			t := storage.Task{
				ID:        s.newID(),
				SubjectID: d.SubjectID,
				Title:     d.Title,
				Date:      d.Date,
				Type:      string(progress.TaskTypeStudy),
				Duration:  &hours,
				Memo:      &memo,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := normalizeTask(ctx, r, &t); err != nil {
				return fmt.Errorf("suggestion %d: %w", i+1, err)
			}
			if err := r.Tasks.Insert(ctx, t); err != nil {
				return err
			}
			tasks = append(tasks, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("suggestions imported", zap.String("subject_id", subjectID), zap.Int("count", len(tasks)))
	return &ImportResult{Tasks: tasks, Outcome: *out}, nil
}

package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

type ToggleResult struct {
	TaskID    string
	Title     string
	Completed bool
	XPDelta   float64
	Outcome
}

// ToggleTask flips a task's completion flag. The XP delta is computed from the
// state before the flip and applied with a floor at zero; badges and levels are
// then recomputed over the updated task list. Levels never go down.
func (s *Service) ToggleTask(ctx context.Context, id string) (*ToggleResult, error) {
	res := &ToggleResult{TaskID: id}
	out, err := s.run(ctx, func(r storage.Repos, p *progress.Progress) error {
		t, err := r.Tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
		}

		now := s.stamp()
		res.Title = t.Title
		res.XPDelta = progress.ToggleCompletion(engineTask(*t), t.IsCompleted)
		res.Completed = !t.IsCompleted
		*p = progress.ApplyDelta(*p, res.XPDelta)

		if err := r.Tasks.SetCompleted(ctx, id, res.Completed, now); err != nil {
			return err
		}
		_, err = r.Completions.Insert(ctx, id, now, res.Completed, res.XPDelta)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Outcome = *out
	s.logger.Debug("task toggled",
		zap.String("task_id", id),
		zap.Bool("completed", res.Completed),
		zap.Float64("xp_delta", res.XPDelta),
	)
	return res, nil
}

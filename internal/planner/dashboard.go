package planner

import (
	"context"
	"database/sql"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

// Progress returns the stored progress record, creating it on first run.
func (s *Service) Progress(ctx context.Context) (progress.Progress, error) {
	var p progress.Progress
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := storage.NewRepos(tx)
		var err error
		if p, err = r.Progress.Load(ctx, s.badges); err != nil {
			return err
		}
		return r.Progress.Save(ctx, p, s.stamp())
	})
	if err != nil {
		return progress.Progress{}, err
	}
	return p, nil
}

// Stats aggregates completion figures over every stored task.
func (s *Service) Stats(ctx context.Context) (progress.TaskStats, error) {
	all, err := storage.NewTaskRepo(s.db).ListAll(ctx)
	if err != nil {
		return progress.TaskStats{}, err
	}
	return progress.Stats(engineTasks(all)), nil
}

type DaySummary struct {
	Date      string
	Tasks     []storage.Task
	Completed int
}

// Day returns the tasks scheduled on date and how many are done.
func (s *Service) Day(ctx context.Context, date string) (*DaySummary, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	day := d.Format(DateLayout)
	tasks, err := storage.NewTaskRepo(s.db).ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	sum := &DaySummary{Date: day, Tasks: tasks}
	for _, t := range tasks {
		if t.IsCompleted {
			sum.Completed++
		}
	}
	return sum, nil
}

// UpcomingDeadlines returns up to limit incomplete deadlines dated on or after from.
func (s *Service) UpcomingDeadlines(ctx context.Context, from string, limit int) ([]storage.Task, error) {
	d, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}
	return storage.NewTaskRepo(s.db).ListOpenDeadlinesFrom(ctx, d.Format(DateLayout), limit)
}

// RecentActivity returns the latest completion toggles, newest first.
func (s *Service) RecentActivity(ctx context.Context, n int) ([]storage.TaskCompletion, error) {
	return storage.NewCompletionRepo(s.db).ListRecent(ctx, n)
}

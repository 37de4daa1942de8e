package planner

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

type Service struct {
	db     *sql.DB
	badges []progress.Badge
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

// WithBadges replaces the built-in badge table.
func WithBadges(defs []progress.Badge) Option {
	return func(s *Service) { s.badges = defs }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *sql.DB, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		db:     db,
		badges: progress.DefaultBadges(),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, id := range progress.Unreachable(s.badges) {
		if id == progress.BadgePerfectWeek {
			continue
		}
		s.logger.Warn("badge has no unlock rule and can never be earned", zap.String("badge", id))
	}
	return s
}

// Outcome is the progression state after a mutation.
type Outcome struct {
	Progress    progress.Progress
	Unlocked    []progress.Badge
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// Today returns the current calendar day in the clock's time zone.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

// stamp is the clock reading for stored timestamps, in UTC.
func (s *Service) stamp() time.Time {
	return s.now().UTC()
}

// run executes fn in a transaction with the loaded progress record, then
// recomputes badges and levels over the full task list and persists the
// result. fn may adjust p (the completion toggle does) before the recompute.
func (s *Service) run(ctx context.Context, fn func(r storage.Repos, p *progress.Progress) error) (*Outcome, error) {
	var out *Outcome
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := storage.NewRepos(tx)
		p, err := r.Progress.Load(ctx, s.badges)
		if err != nil {
			return err
		}
		levelBefore := p.Level

		if err := fn(r, &p); err != nil {
			return err
		}

		stored, err := r.Tasks.ListAll(ctx)
		if err != nil {
			return err
		}
		res := progress.Recompute(engineTasks(stored), p)
		if err := r.Progress.Save(ctx, res.Progress, s.stamp()); err != nil {
			return err
		}

		out = &Outcome{
			Progress:    res.Progress,
			Unlocked:    res.Unlocked,
			LevelBefore: levelBefore,
			LevelAfter:  res.Progress.Level,
			LevelUp:     res.Progress.Level > levelBefore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, b := range out.Unlocked {
		s.logger.Info("badge unlocked", zap.String("badge", b.ID), zap.Int("xp_reward", b.XPReward))
	}
	if out.LevelUp {
		s.logger.Info("level up", zap.Int("from", out.LevelBefore), zap.Int("to", out.LevelAfter))
	}
	return out, nil
}

func engineTask(t storage.Task) progress.Task {
	return progress.Task{
		ID:          t.ID,
		Type:        progress.TaskType(t.Type),
		Duration:    t.Duration,
		IsCompleted: t.IsCompleted,
	}
}

func engineTasks(in []storage.Task) []progress.Task {
	out := make([]progress.Task, len(in))
	for i := range in {
		out[i] = engineTask(in[i])
	}
	return out
}

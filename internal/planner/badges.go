package planner

import (
	"context"
	"database/sql"
	"time"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

// BadgeStatus is a badge as shown to the user.
type BadgeStatus struct {
	progress.Badge
	AchievedAt *time.Time
	// Available is false for badges without an unlock rule; they can never be earned.
	Available bool
}

// Badges returns every badge with its unlock time.
func (s *Service) Badges(ctx context.Context) ([]BadgeStatus, error) {
	var out []BadgeStatus
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := storage.NewRepos(tx)
		p, err := r.Progress.Load(ctx, s.badges)
		if err != nil {
			return err
		}
		if err := r.Progress.Save(ctx, p, s.stamp()); err != nil {
			return err
		}
		out = make([]BadgeStatus, 0, len(p.Badges))
		for _, b := range p.Badges {
			st := BadgeStatus{Badge: b, Available: progress.HasRule(b.ID)}
			if b.Achieved {
				if st.AchievedAt, err = r.Progress.AchievedAt(ctx, b.ID); err != nil {
					return err
				}
			}
			out = append(out, st)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WeekStart returns midnight of the Monday of the current week in the clock's zone.
func (s *Service) WeekStart() time.Time {
	now := s.now()
	from, _ := WeekRange(now)
	monday, _ := time.ParseInLocation(DateLayout, from, now.Location())
	return monday
}

// XPSince returns the net XP moved by completion toggles at or after since.
// Badge rewards and level-ups are not included.
func (s *Service) XPSince(ctx context.Context, since time.Time) (float64, error) {
	return storage.NewCompletionRepo(s.db).SumSince(ctx, since)
}

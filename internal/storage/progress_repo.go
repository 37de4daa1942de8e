package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
)

const MainProgressKey = "main"

type ProgressRepo struct {
	db DBTX
}

func NewProgressRepo(db DBTX) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Load returns the stored progress record, creating the first-run record
// (level 1, xp 0, nothing achieved) when there is none. Badge definitions in
// defs that are not stored yet are added unachieved.
func (r *ProgressRepo) Load(ctx context.Context, defs []progress.Badge) (progress.Progress, error) {
	row := r.db.QueryRowContext(ctx, `SELECT level, xp FROM progress WHERE key = ?`, MainProgressKey)

	var p progress.Progress
	err := row.Scan(&p.Level, &p.XP)
	switch {
	case err == sql.ErrNoRows:
		if _, err := r.db.ExecContext(ctx, `INSERT INTO progress (key, level, xp) VALUES (?, 1, 0)`, MainProgressKey); err != nil {
			return progress.Progress{}, fmt.Errorf("progress insert: %w", err)
		}
		p = progress.NewProgress(nil)
	case err != nil:
		return progress.Progress{}, fmt.Errorf("progress get: %w", err)
	}

	badges, err := r.listBadges(ctx)
	if err != nil {
		return progress.Progress{}, err
	}
	p.Badges = badges
	return progress.EnsureBadges(p, defs), nil
}

func (r *ProgressRepo) listBadges(ctx context.Context) ([]progress.Badge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, icon, xp_reward, achieved
		FROM badges
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("badge list: %w", err)
	}
	defer rows.Close()

	var out []progress.Badge
	for rows.Next() {
		var (
			b        progress.Badge
			achieved int
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.XPReward, &achieved); err != nil {
			return nil, fmt.Errorf("badge scan: %w", err)
		}
		b.Achieved = achieved != 0
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("badge rows: %w", err)
	}
	return out, nil
}

// Save writes level, xp and every badge. A stored achieved flag is never cleared
// and achieved_at keeps the first unlock time.
func (r *ProgressRepo) Save(ctx context.Context, p progress.Progress, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress (key, level, xp) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET level = excluded.level, xp = excluded.xp
	`, MainProgressKey, p.Level, p.XP)
	if err != nil {
		return fmt.Errorf("progress save: %w", err)
	}

	for i, b := range p.Badges {
		var achievedAt *time.Time
		if b.Achieved {
			achievedAt = &now
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO badges (id, position, name, description, icon, xp_reward, achieved, achieved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				position = excluded.position,
				name = excluded.name,
				description = excluded.description,
				icon = excluded.icon,
				xp_reward = excluded.xp_reward,
				achieved = MAX(badges.achieved, excluded.achieved),
				achieved_at = COALESCE(badges.achieved_at, excluded.achieved_at)
		`, b.ID, i, b.Name, b.Description, b.Icon, b.XPReward, boolToInt(b.Achieved), achievedAt)
		if err != nil {
			return fmt.Errorf("badge save %s: %w", b.ID, err)
		}
	}
	return nil
}

// AchievedAt returns when a badge was first unlocked, or nil.
func (r *ProgressRepo) AchievedAt(ctx context.Context, id string) (*time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT achieved_at FROM badges WHERE id = ?`, id)
	var at sql.NullTime
	if err := row.Scan(&at); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("badge achieved at: %w", err)
	}
	if !at.Valid {
		return nil, nil
	}
	v := at.Time
	return &v, nil
}

package storage

import (
	"context"
	"fmt"
	"time"
)

type CompletionRepo struct {
	db DBTX
}

func NewCompletionRepo(db DBTX) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, taskID string, toggledAt time.Time, completed bool, xpDelta float64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO task_completions (task_id, toggled_at, completed, xp_delta)
		VALUES (?, ?, ?, ?)
	`, taskID, toggledAt, boolToInt(completed), xpDelta)
	if err != nil {
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns the latest n toggles, newest first.
func (r *CompletionRepo) ListRecent(ctx context.Context, n int) ([]TaskCompletion, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, toggled_at, completed, xp_delta
		FROM task_completions
		ORDER BY toggled_at DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []TaskCompletion
	for rows.Next() {
		var (
			tc        TaskCompletion
			completed int
		)
		if err := rows.Scan(&tc.ID, &tc.TaskID, &tc.ToggledAt, &completed, &tc.XPDelta); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		tc.Completed = completed != 0
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

// SumSince returns the net XP moved by toggles at or after since.
func (r *CompletionRepo) SumSince(ctx context.Context, since time.Time) (float64, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(xp_delta), 0)
		FROM task_completions
		WHERE toggled_at >= ?
	`, since.UTC())
	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("completion sum: %w", err)
	}
	return sum, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, subject_id, title, date, type, duration, is_completed,
	assignment, pages, memo, start_time, notification_enabled, created_at, updated_at`

func (r *TaskRepo) Insert(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.SubjectID, t.Title, t.Date, t.Type, t.Duration, boolToInt(t.IsCompleted),
		t.Assignment, t.Pages, t.Memo, t.StartTime, boolToInt(t.NotificationEnabled), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTaskRow(row)
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	return r.list(ctx, "task list", `SELECT `+taskColumns+` FROM tasks ORDER BY date ASC, created_at ASC, id ASC`)
}

// ListBetween returns tasks dated within [from, to], both YYYY-MM-DD and inclusive.
func (r *TaskRepo) ListBetween(ctx context.Context, from, to string) ([]Task, error) {
	return r.list(ctx, "task list between", `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, start_time ASC, created_at ASC, id ASC
	`, from, to)
}

func (r *TaskRepo) ListByDate(ctx context.Context, date string) ([]Task, error) {
	return r.ListBetween(ctx, date, date)
}

// ListOpenDeadlinesFrom returns incomplete deadline tasks dated on or after date.
func (r *TaskRepo) ListOpenDeadlinesFrom(ctx context.Context, date string, limit int) ([]Task, error) {
	return r.list(ctx, "task list deadlines", `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE type = 'DEADLINE' AND is_completed = 0 AND date >= ?
		ORDER BY date ASC, created_at ASC, id ASC
		LIMIT ?
	`, date, limit)
}

func (r *TaskRepo) list(ctx context.Context, op string, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}

// Update rewrites every editable column. The completion flag is left alone; use SetCompleted.
func (r *TaskRepo) Update(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET subject_id = ?, title = ?, date = ?, type = ?, duration = ?,
			assignment = ?, pages = ?, memo = ?, start_time = ?, notification_enabled = ?,
			updated_at = ?
		WHERE id = ?
	`, t.SubjectID, t.Title, t.Date, t.Type, t.Duration,
		t.Assignment, t.Pages, t.Memo, t.StartTime, boolToInt(t.NotificationEnabled),
		t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

func (r *TaskRepo) SetCompleted(ctx context.Context, id string, completed bool, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET is_completed = ?, updated_at = ? WHERE id = ?`, boolToInt(completed), at, id)
	if err != nil {
		return fmt.Errorf("task set completed: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

// DeleteBySubject removes every task of a subject and returns how many were deleted.
func (r *TaskRepo) DeleteBySubject(ctx context.Context, subjectID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE subject_id = ?`, subjectID)
	if err != nil {
		return 0, fmt.Errorf("task delete by subject: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("task delete by subject rows: %w", err)
	}
	return n, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		t            Task
		duration     sql.NullFloat64
		isCompleted  int
		assignment   sql.NullString
		pages        sql.NullString
		memo         sql.NullString
		startTime    sql.NullString
		notification int
	)

	if err := row.Scan(
		&t.ID, &t.SubjectID, &t.Title, &t.Date, &t.Type, &duration, &isCompleted,
		&assignment, &pages, &memo, &startTime, &notification, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	if duration.Valid {
		v := duration.Float64
		t.Duration = &v
	}
	t.IsCompleted = isCompleted != 0
	t.Assignment = nullString(assignment)
	t.Pages = nullString(pages)
	t.Memo = nullString(memo)
	t.StartTime = nullString(startTime)
	t.NotificationEnabled = notification != 0
	return &t, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

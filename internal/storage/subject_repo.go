package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type SubjectRepo struct {
	db DBTX
}

func NewSubjectRepo(db DBTX) *SubjectRepo {
	return &SubjectRepo{db: db}
}

func (r *SubjectRepo) Insert(ctx context.Context, s Subject) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subjects (id, name, color, goal, created_at) VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.Name, s.Color, s.Goal, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("subject insert: %w", err)
	}
	return nil
}

func (r *SubjectRepo) Get(ctx context.Context, id string) (*Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, color, goal, created_at FROM subjects WHERE id = ?`, id)
	var s Subject
	if err := row.Scan(&s.ID, &s.Name, &s.Color, &s.Goal, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("subject get: %w", err)
	}
	return &s, nil
}

func (r *SubjectRepo) List(ctx context.Context) ([]Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, goal, created_at FROM subjects ORDER BY created_at ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("subject list: %w", err)
	}
	defer rows.Close()

	var out []Subject
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.Goal, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("subject scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subject rows: %w", err)
	}
	return out, nil
}

func (r *SubjectRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("subject count: %w", err)
	}
	return n, nil
}

func (r *SubjectRepo) Update(ctx context.Context, s Subject) error {
	_, err := r.db.ExecContext(ctx, `UPDATE subjects SET name = ?, color = ?, goal = ? WHERE id = ?`, s.Name, s.Color, s.Goal, s.ID)
	if err != nil {
		return fmt.Errorf("subject update: %w", err)
	}
	return nil
}

func (r *SubjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("subject delete: %w", err)
	}
	return nil
}

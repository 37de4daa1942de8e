package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS subjects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			goal TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			subject_id TEXT NOT NULL,
			title TEXT NOT NULL,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			duration REAL,
			is_completed INTEGER DEFAULT 0,

			assignment TEXT,
			pages TEXT,
			memo TEXT,
			start_time TEXT,
			notification_enabled INTEGER DEFAULT 0,

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,

			FOREIGN KEY(subject_id) REFERENCES subjects(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			level INTEGER DEFAULT 1,
			xp REAL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS badges (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			xp_reward INTEGER NOT NULL DEFAULT 0,
			achieved INTEGER DEFAULT 0,
			achieved_at DATETIME
		);`,
		// XP audit trail: one row per completion toggle. No FK so history survives task deletion.
		`CREATE TABLE IF NOT EXISTS task_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id TEXT NOT NULL,
			toggled_at DATETIME NOT NULL,
			completed INTEGER NOT NULL,
			xp_delta REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_subject_id ON tasks(subject_id);`,
		`CREATE INDEX IF NOT EXISTS idx_task_completions_toggled_at ON task_completions(toggled_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

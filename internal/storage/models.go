package storage

import "time"

type Subject struct {
	ID        string
	Name      string
	Color     string
	Goal      string
	CreatedAt time.Time
}

// Task is a stored task. Date is a calendar day in YYYY-MM-DD form so that
// lexical order is chronological.
type Task struct {
	ID                  string
	SubjectID           string
	Title               string
	Date                string
	Type                string
	Duration            *float64
	IsCompleted         bool
	Assignment          *string
	Pages               *string
	Memo                *string
	StartTime           *string // HH:MM
	NotificationEnabled bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type TaskCompletion struct {
	ID        int64
	TaskID    string
	ToggledAt time.Time
	Completed bool
	XPDelta   float64
}

package task

import (
	"fmt"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "TO_DO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
	// StatusDelete is the soft-delete marker: rows keep this status instead
	// of being removed, and default reads exclude them.
	StatusDelete TaskStatus = "DELETE"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone, StatusDelete:
		return true
	}
	return false
}

// ParseStatus converts a wire literal into a TaskStatus.
func ParseStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidStatus)
	}
	return status, nil
}

// Task is the core domain entity: a unit of work with lifecycle state,
// ownership and a deadline.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DeadLine    Date       `json:"dead_line"`
	Author      int64      `json:"author"`
	Assignee    int64      `json:"assignee"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

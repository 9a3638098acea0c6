package api

import (
	"time"

	domain "github.com/mramazanov/taskservice/domain/task"
)

// CreateTaskRequest is the HTTP request for creating a task. Any status in
// the body is ignored: new tasks always start as TO_DO.
type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DeadLine    domain.Date `json:"dead_line"`
	Author      int64       `json:"author"`
	Assignee    int64       `json:"assignee"`
}

// UpdateTaskRequest is the HTTP request for partially updating a task.
// Absent fields keep the stored value.
type UpdateTaskRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Status      *string      `json:"status,omitempty"`
	DeadLine    *domain.Date `json:"dead_line,omitempty"`
	Assignee    *int64       `json:"assignee,omitempty"`
}

// TaskResponse is the HTTP response for a single task.
type TaskResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	DeadLine    domain.Date `json:"dead_line"`
	Author      int64       `json:"author"`
	Assignee    int64       `json:"assignee"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

// ListTasksResponse is the HTTP response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// HealthResponse is the HTTP response for the health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

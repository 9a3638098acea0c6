package task

import (
	"context"
	"time"

	domain "github.com/mramazanov/taskservice/domain/task"
)

// CreateTaskRequest is the request for creating a task. The status is not
// part of the request: new tasks always start as TO_DO.
type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DeadLine    domain.Date `json:"dead_line"`
	Author      int64       `json:"author"`
	Assignee    int64       `json:"assignee"`
}

// GetTaskRequest is the request for getting a task by id.
type GetTaskRequest struct {
	ID int64 `json:"id"`
}

// UpdateTaskRequest is a sparse overlay keyed by task id: nil fields keep
// the stored value. Author and timestamps are not updatable.
type UpdateTaskRequest struct {
	ID          int64              `json:"id"`
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *domain.TaskStatus `json:"status,omitempty"`
	DeadLine    *domain.Date       `json:"dead_line,omitempty"`
	Assignee    *int64             `json:"assignee,omitempty"`
}

// ListTasksRequest is the request for listing tasks with optional
// conjunctive filters. Soft-deleted tasks are included only when the status
// filter is DELETE.
type ListTasksRequest struct {
	Status   *domain.TaskStatus `json:"status,omitempty"`
	Assignee *int64             `json:"assignee,omitempty"`
}

// TaskResponse represents a task in API responses.
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

// ListTasksResponse is the response containing the matching tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// TaskPort is the contract driving adapters (the HTTP surface) use to reach
// the task lifecycle engine.
type TaskPort interface {
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	Get(ctx context.Context, id int64) (TaskResponse, error)
	Update(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)
	List(ctx context.Context, req ListTasksRequest) (ListTasksResponse, error)
}

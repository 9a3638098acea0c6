package task

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/mramazanov/taskservice/domain/task"
	"github.com/mramazanov/taskservice/modules/userdir"
)

// TaskService defines the task lifecycle operations.
type TaskService interface {
	// Create validates the request, verifies author and assignee against the
	// user directory and persists a new TO_DO task.
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	// Get retrieves a non-deleted task by id.
	Get(ctx context.Context, id int64) (TaskResponse, error)
	// Update merges the sparse request over the stored record and persists
	// the result.
	Update(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)
	// List retrieves tasks matching the optional status/assignee filters.
	List(ctx context.Context, req ListTasksRequest) (ListTasksResponse, error)
}

// TaskServiceImpl implements TaskService using TaskRepository and the user
// directory. It holds no mutable state and is safe for concurrent use.
type TaskServiceImpl struct {
	repo      TaskRepository
	directory userdir.Directory
}

// Compile-time interface check.
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService with the given repository and
// directory client.
func NewTaskService(repo TaskRepository, directory userdir.Directory) TaskService {
	return &TaskServiceImpl{
		repo:      repo,
		directory: directory,
	}
}

// Create handles the task creation request.
func (s *TaskServiceImpl) Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	if err := validateCreate(req); err != nil {
		return TaskResponse{}, err
	}

	// One batched directory round trip covers both participants.
	if err := s.checkUsers(ctx, []int64{req.Author, req.Assignee}); err != nil {
		return TaskResponse{}, err
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(created), nil
}

// Get handles the get-by-id request. Soft-deleted tasks are not visible.
func (s *TaskServiceImpl) Get(ctx context.Context, id int64) (TaskResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(found), nil
}

// Update handles the partial-update request: validate the present fields,
// fetch the current record, merge and persist.
func (s *TaskServiceImpl) Update(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error) {
	if req.DeadLine != nil && !deadlineAccepted(*req.DeadLine) {
		return TaskResponse{}, fmt.Errorf("deadline %s: %w", *req.DeadLine, domain.ErrInvalidDeadline)
	}
	if req.Status != nil && !req.Status.Valid() {
		return TaskResponse{}, fmt.Errorf("%q: %w", string(*req.Status), domain.ErrInvalidStatus)
	}
	if req.Assignee != nil {
		if err := s.checkUsers(ctx, []int64{*req.Assignee}); err != nil {
			return TaskResponse{}, err
		}
	}

	// The fetch deliberately bypasses the soft-delete filter: setting a new
	// status on a DELETE task restores it.
	current, err := s.repo.GetByIDAnyStatus(ctx, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}

	merged := *current
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Status != nil {
		merged.Status = *req.Status
	}
	if req.DeadLine != nil {
		merged.DeadLine = *req.DeadLine
	}
	if req.Assignee != nil {
		merged.Assignee = *req.Assignee
	}

	updated, err := s.repo.Update(ctx, &merged)
	if err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(updated), nil
}

// List handles the filtered list request.
func (s *TaskServiceImpl) List(ctx context.Context, req ListTasksRequest) (ListTasksResponse, error) {
	if req.Status != nil && !req.Status.Valid() {
		return ListTasksResponse{}, fmt.Errorf("%q: %w", string(*req.Status), domain.ErrInvalidStatus)
	}

	tasks, err := s.repo.List(ctx, req.Status, req.Assignee)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for i := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(&tasks[i]))
	}
	return response, nil
}

// checkUsers verifies every id against the user directory in a single
// lookup. The strict policy applies: each requested id must appear in the
// result, and the first missing one (in request order) is reported.
func (s *TaskServiceImpl) checkUsers(ctx context.Context, ids []int64) error {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.directory.Lookup(ctx, unique)
	if err != nil {
		return err
	}

	found := make(map[int64]struct{}, len(users))
	for _, u := range users {
		found[u.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("user %d: %w", id, domain.ErrUnknownUser)
		}
	}
	return nil
}

func validateCreate(req CreateTaskRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.ErrTitleRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return domain.ErrDescriptionRequired
	}
	if !deadlineAccepted(req.DeadLine) {
		return fmt.Errorf("deadline %s: %w", req.DeadLine, domain.ErrInvalidDeadline)
	}
	if req.Author <= 0 {
		return domain.ErrInvalidAuthor
	}
	if req.Assignee <= 0 {
		return domain.ErrInvalidAssignee
	}
	return nil
}

// deadlineAccepted reports whether d is strictly after tomorrow, at date
// granularity: the earliest acceptable deadline is two days out.
func deadlineAccepted(d domain.Date) bool {
	if d.IsZero() {
		return false
	}
	return d.After(domain.Today().AddDays(1))
}

func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DeadLine:    t.DeadLine,
		Author:      t.Author,
		Assignee:    t.Assignee,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

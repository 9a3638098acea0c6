package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	domain "github.com/mramazanov/taskservice/domain/task"
	"github.com/mramazanov/taskservice/modules/task"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.listTasks)
	tasks.Get("/:id", m.getTask)
	tasks.Patch("/:id", m.updateTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// createTask handles POST /api/v1/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.tasks.Create(c.Context(), task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DeadLine:    req.DeadLine,
		Author:      req.Author,
		Assignee:    req.Assignee,
	})
	if err != nil {
		return m.domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(resp))
}

// getTask handles GET /api/v1/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Task id must be a positive integer",
		})
	}

	resp, err := m.tasks.Get(c.Context(), id)
	if err != nil {
		return m.domainError(c, err)
	}

	return c.JSON(toTaskResponse(resp))
}

// updateTask handles PATCH /api/v1/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Task id must be a positive integer",
		})
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	update := task.UpdateTaskRequest{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DeadLine:    req.DeadLine,
		Assignee:    req.Assignee,
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return m.domainError(c, err)
		}
		update.Status = &status
	}

	resp, err := m.tasks.Update(c.Context(), update)
	if err != nil {
		return m.domainError(c, err)
	}

	return c.JSON(toTaskResponse(resp))
}

// listTasks handles GET /api/v1/tasks with optional status and assignee
// query filters.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	var req task.ListTasksRequest

	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return m.domainError(c, err)
		}
		req.Status = &status
	}

	if raw := c.Query("assignee"); raw != "" {
		assignee, err := parseID(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "validation_error",
				Message: "Assignee must be a positive integer",
			})
		}
		req.Assignee = &assignee
	}

	resp, err := m.tasks.List(c.Context(), req)
	if err != nil {
		return m.domainError(c, err)
	}

	tasks := make([]TaskResponse, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}

	return c.JSON(ListTasksResponse{
		Tasks: tasks,
		Total: resp.Total,
	})
}

// domainError translates engine errors into HTTP responses: validation and
// lookup failures are 400, a missing task is 404, anything else is an
// untranslated infrastructure failure.
func (m *APIModule) domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrDescriptionRequired),
		errors.Is(err, domain.ErrInvalidDeadline),
		errors.Is(err, domain.ErrInvalidAuthor),
		errors.Is(err, domain.ErrInvalidAssignee),
		errors.Is(err, domain.ErrUnknownUser),
		errors.Is(err, domain.ErrDuplicateTitle),
		errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func toTaskResponse(t task.TaskResponse) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DeadLine:    t.DeadLine,
		Author:      t.Author,
		Assignee:    t.Assignee,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/mramazanov/taskservice/domain/task"
	"github.com/mramazanov/taskservice/modules/task"
)

// stubTaskService is a canned-response TaskPort for handler tests.
type stubTaskService struct {
	createResp task.TaskResponse
	createErr  error
	getResp    task.TaskResponse
	getErr     error
	updateResp task.TaskResponse
	updateErr  error
	listResp   task.ListTasksResponse
	listErr    error

	lastCreate task.CreateTaskRequest
	lastUpdate task.UpdateTaskRequest
	lastList   task.ListTasksRequest
}

var _ task.TaskPort = (*stubTaskService)(nil)

func (s *stubTaskService) Create(_ context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	s.lastCreate = req
	return s.createResp, s.createErr
}

func (s *stubTaskService) Get(_ context.Context, _ int64) (task.TaskResponse, error) {
	return s.getResp, s.getErr
}

func (s *stubTaskService) Update(_ context.Context, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	s.lastUpdate = req
	return s.updateResp, s.updateErr
}

func (s *stubTaskService) List(_ context.Context, req task.ListTasksRequest) (task.ListTasksResponse, error) {
	s.lastList = req
	return s.listResp, s.listErr
}

func newTestModule(stub *stubTaskService) *APIModule {
	m := NewModule(0)
	m.SetTaskService(stub)
	m.buildApp()
	return m
}

func doJSON(t *testing.T, m *APIModule, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func sampleResponse() task.TaskResponse {
	return task.TaskResponse{
		ID:          1,
		Title:       "Task 1",
		Description: "Desc",
		Status:      string(domain.StatusToDo),
		DeadLine:    domain.Today().AddDays(10),
		Author:      1,
		Assignee:    2,
		CreatedAt:   time.Now(),
	}
}

func TestCreateTaskHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &stubTaskService{createResp: sampleResponse()}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title":       "Task 1",
			"description": "Desc",
			"dead_line":   domain.Today().AddDays(10).String(),
			"author":      1,
			"assignee":    2,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}

		var body TaskResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.ID != 1 || body.Status != "TO_DO" {
			t.Errorf("unexpected body %+v", body)
		}
		if stub.lastCreate.Title != "Task 1" {
			t.Errorf("expected title passed through, got %q", stub.lastCreate.Title)
		}
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		stub := &stubTaskService{createErr: domain.ErrTitleRequired}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodPost, "/api/v1/tasks", map[string]any{"title": ""})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown user maps to 400", func(t *testing.T) {
		stub := &stubTaskService{createErr: fmt.Errorf("user 42: %w", domain.ErrUnknownUser)}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodPost, "/api/v1/tasks", map[string]any{"title": "x"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		m := newTestModule(&stubTaskService{})

		resp := doJSON(t, m, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title":     "x",
			"dead_line": "not-a-date",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("infrastructure error maps to 500", func(t *testing.T) {
		stub := &stubTaskService{createErr: fmt.Errorf("dial tcp: connection refused")}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodPost, "/api/v1/tasks", map[string]any{"title": "x"})
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}
	})
}

func TestGetTaskHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		stub := &stubTaskService{getResp: sampleResponse()}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodGet, "/api/v1/tasks/1", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		stub := &stubTaskService{getErr: fmt.Errorf("task 999: %w", domain.ErrTaskNotFound)}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodGet, "/api/v1/tasks/999", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		m := newTestModule(&stubTaskService{})

		resp := doJSON(t, m, http.MethodGet, "/api/v1/tasks/abc", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestUpdateTaskHandler(t *testing.T) {
	t.Run("partial body passes through", func(t *testing.T) {
		expected := sampleResponse()
		expected.Status = string(domain.StatusInProgress)
		stub := &stubTaskService{updateResp: expected}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodPatch, "/api/v1/tasks/1", map[string]any{
			"status": "IN_PROGRESS",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		if stub.lastUpdate.ID != 1 {
			t.Errorf("expected id 1, got %d", stub.lastUpdate.ID)
		}
		if stub.lastUpdate.Status == nil || *stub.lastUpdate.Status != domain.StatusInProgress {
			t.Errorf("expected status IN_PROGRESS, got %v", stub.lastUpdate.Status)
		}
		if stub.lastUpdate.Title != nil {
			t.Error("expected absent title to stay nil")
		}
	})

	t.Run("unknown status literal", func(t *testing.T) {
		m := newTestModule(&stubTaskService{})

		resp := doJSON(t, m, http.MethodPatch, "/api/v1/tasks/1", map[string]any{
			"status": "ARCHIVED",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestListTasksHandler(t *testing.T) {
	t.Run("filters parsed from query", func(t *testing.T) {
		stub := &stubTaskService{listResp: task.ListTasksResponse{
			Tasks: []task.TaskResponse{sampleResponse()},
			Total: 1,
		}}
		m := newTestModule(stub)

		resp := doJSON(t, m, http.MethodGet, "/api/v1/tasks/?status=TO_DO&assignee=5", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		if stub.lastList.Status == nil || *stub.lastList.Status != domain.StatusToDo {
			t.Errorf("expected status filter TO_DO, got %v", stub.lastList.Status)
		}
		if stub.lastList.Assignee == nil || *stub.lastList.Assignee != 5 {
			t.Errorf("expected assignee filter 5, got %v", stub.lastList.Assignee)
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		m := newTestModule(&stubTaskService{})

		resp := doJSON(t, m, http.MethodGet, "/api/v1/tasks/?status=NOPE", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("invalid assignee filter", func(t *testing.T) {
		m := newTestModule(&stubTaskService{})

		resp := doJSON(t, m, http.MethodGet, "/api/v1/tasks/?assignee=bob", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestAPIModuleStart(t *testing.T) {
	t.Run("fails without a task module", func(t *testing.T) {
		m := NewModule(0)

		if err := m.Start(context.Background()); err == nil {
			t.Error("expected error when no task module is wired")
		}
	})

	t.Run("resolves the service from the task module", func(t *testing.T) {
		stub := &stubTaskService{getResp: sampleResponse()}
		taskModule := task.NewModuleWithService(stub)

		m := NewModule(0)
		m.SetTaskModule(taskModule)

		if err := m.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer m.Stop(context.Background())

		resp := doJSON(t, m, http.MethodGet, "/api/v1/tasks/1", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 through the resolved service, got %d", resp.StatusCode)
		}

		if !m.Health(context.Background()).Healthy {
			t.Error("expected healthy module after Start")
		}
	})
}

package api

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mramazanov/taskservice/modules/task"
)

// APIModule is the HTTP surface: a thin adapter translating requests and
// responses for the task lifecycle engine behind the TaskPort contract.
type APIModule struct {
	app        *fiber.App
	tasks      task.TaskPort
	taskModule *task.TaskModule
	port       int
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*APIModule)(nil)
	_ mono.HealthCheckableModule = (*APIModule)(nil)
)

// NewModule creates a new APIModule listening on the given port.
func NewModule(port int) *APIModule {
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// SetTaskModule wires the task module into the surface. Its service is
// resolved on Start, which the application runs after the task module's.
func (m *APIModule) SetTaskModule(tm *task.TaskModule) {
	m.taskModule = tm
}

// SetTaskService wires the task engine into the surface directly. Must be
// called before the first request is served.
func (m *APIModule) SetTaskService(tasks task.TaskPort) {
	m.tasks = tasks
}

// buildApp constructs the Fiber app and its routes.
func (m *APIModule) buildApp() {
	m.app = fiber.New(fiber.Config{
		AppName:               "task-service",
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())

	m.setupRoutes()
}

// Start resolves the task service and brings the Fiber HTTP server up.
func (m *APIModule) Start(_ context.Context) error {
	if m.tasks == nil {
		if m.taskModule == nil {
			return fmt.Errorf("task module not set")
		}
		service := m.taskModule.Service()
		if service == nil {
			return fmt.Errorf("task service not available")
		}
		m.tasks = service
	}

	m.buildApp()

	// Server availability is verified via Health().
	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// App returns the Fiber app (for testing).
func (m *APIModule) App() *fiber.App {
	return m.app
}

// customErrorHandler handles Fiber-level errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

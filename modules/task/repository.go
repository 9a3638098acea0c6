package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mramazanov/taskservice/domain/task"
)

// TaskRepository is the store contract used by the task service.
type TaskRepository interface {
	// Create inserts a new TO_DO task; the store assigns id and created_at.
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	// GetByID retrieves a task by id, excluding soft-deleted rows.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// GetByIDAnyStatus retrieves a task by id regardless of status; the
	// update path uses it so a soft-deleted task can still be modified.
	GetByIDAnyStatus(ctx context.Context, id int64) (*domain.Task, error)
	// Update persists a fully merged record and stamps updated_at.
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// List retrieves tasks matching the optional filters.
	List(ctx context.Context, status *domain.TaskStatus, assignee *int64) ([]domain.Task, error)
}

// DefaultTable is the schema-qualified task table.
const DefaultTable = "taskservice.task"

const taskColumns = "id, title, description, status, dead_line, author, assignee, created_at, updated_at"

// PostgresRepository provides access to task storage in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool

	insertSQL       string
	getByIDSQL      string
	getAnyStatusSQL string
	updateSQL       string
	listSQL         string
}

// Compile-time interface check.
var _ TaskRepository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a task repository bound to the given table.
// An empty table falls back to DefaultTable.
func NewPostgresRepository(pool *pgxpool.Pool, table string) *PostgresRepository {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresRepository{
		pool: pool,
		insertSQL: fmt.Sprintf(`
			INSERT INTO %s (title, description, status, dead_line, author, assignee, created_at)
			VALUES ($1, $2, 'TO_DO', $3, $4, $5, now())
			RETURNING %s`, table, taskColumns),
		getByIDSQL: fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE status != 'DELETE' AND id = $1`, taskColumns, table),
		getAnyStatusSQL: fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE id = $1`, taskColumns, table),
		updateSQL: fmt.Sprintf(`
			UPDATE %s
			SET title = $2, description = $3, status = $4, dead_line = $5, assignee = $6, updated_at = now()
			WHERE id = $1
			RETURNING %s`, table, taskColumns),
		listSQL: fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE ($1::bigint IS NULL OR assignee = $1::bigint)
			AND ($2::varchar IS NULL OR status = $2::varchar)
			AND ($2::varchar = 'DELETE' OR status != 'DELETE')`, taskColumns, table),
	}
}

// Create inserts a new task. The status is fixed to TO_DO by the insert
// itself; the store assigns id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, r.insertSQL,
		req.Title, req.Description, req.DeadLine, req.Author, req.Assignee)

	created, err := scanTask(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("title %q: %w", req.Title, domain.ErrDuplicateTitle)
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a non-deleted task by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	found, err := scanTask(r.pool.QueryRow(ctx, r.getByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
		}
		return nil, err
	}
	return found, nil
}

// GetByIDAnyStatus retrieves a task by id without soft-delete filtering.
func (r *PostgresRepository) GetByIDAnyStatus(ctx context.Context, id int64) (*domain.Task, error) {
	found, err := scanTask(r.pool.QueryRow(ctx, r.getAnyStatusSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
		}
		return nil, err
	}
	return found, nil
}

// Update writes a merged record back and stamps updated_at. id, author and
// created_at are never written.
func (r *PostgresRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, r.updateSQL,
		t.ID, t.Title, t.Description, string(t.Status), t.DeadLine, t.Assignee)

	updated, err := scanTask(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("title %q: %w", t.Title, domain.ErrDuplicateTitle)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", t.ID, domain.ErrTaskNotFound)
		}
		return nil, err
	}
	return updated, nil
}

// List retrieves tasks matching the optional assignee and status filters.
// Soft-deleted rows are returned only when the status filter is DELETE.
func (r *PostgresRepository) List(ctx context.Context, status *domain.TaskStatus, assignee *int64) ([]domain.Task, error) {
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.pool.Query(ctx, r.listSQL, assignee, statusArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status,
			&t.DeadLine, &t.Author, &t.Assignee, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status,
		&t.DeadLine, &t.Author, &t.Assignee, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// isUniqueViolation checks if err is a PostgreSQL unique violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

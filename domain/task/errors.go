package task

import "errors"

// Domain errors. Callers wrap these with the offending field or identifier
// via fmt.Errorf("...: %w", ...) and check them with errors.Is.
var (
	// ErrTitleRequired is returned when a task is created with a blank title.
	ErrTitleRequired = errors.New("task title is required")

	// ErrDescriptionRequired is returned when a task is created with a blank
	// description.
	ErrDescriptionRequired = errors.New("task description is required")

	// ErrInvalidDeadline is returned when the deadline is missing or not
	// strictly after tomorrow.
	ErrInvalidDeadline = errors.New("task deadline must be at least two days ahead")

	// ErrInvalidAuthor is returned when the author id is missing or not
	// positive.
	ErrInvalidAuthor = errors.New("author id must be positive")

	// ErrInvalidAssignee is returned when the assignee id is missing or not
	// positive.
	ErrInvalidAssignee = errors.New("assignee id must be positive")

	// ErrUnknownUser is returned when a referenced user id is not present in
	// the user directory.
	ErrUnknownUser = errors.New("user not found")

	// ErrDuplicateTitle is returned when a title collides with an existing
	// non-deleted task.
	ErrDuplicateTitle = errors.New("task title already exists")

	// ErrTaskNotFound is returned when the referenced task id does not exist
	// or is hidden by soft-delete filtering.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidStatus is returned when a status literal is not one of the
	// known statuses.
	ErrInvalidStatus = errors.New("unknown task status")
)

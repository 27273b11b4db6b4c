package domain

import "errors"

// Sentinel errors. All are locally recoverable: the operation is rejected
// and state is left unchanged.

var (
	// Task errors
	ErrDuplicateTask    = errors.New("a task with this name already exists in this category")
	ErrTaskNotFound     = errors.New("task not found")
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrInvalidCategory  = errors.New("unknown task category")
	ErrInvalidAttribute = errors.New("unknown attribute")
	ErrInvalidPoints    = errors.New("task points must be positive")
	ErrEmptyTaskName    = errors.New("task name must not be empty")

	// Job errors
	ErrInvalidJob = errors.New("job is not available or already held")

	// Store errors
	ErrBadImport = errors.New("import data is missing required fields")
)

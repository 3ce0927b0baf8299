package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a live task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrAttachmentNotFound is returned when a live attachment is not found
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrPriorityNotFound is returned when a task priority is not found
	ErrPriorityNotFound = errors.New("priority not found")

	// ErrStatusNotFound is returned when a task status is not found
	ErrStatusNotFound = errors.New("status not found")

	// ErrVerificationNotFound is returned when a verification token or session is not found
	ErrVerificationNotFound = errors.New("verification not found")
)

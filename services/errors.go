package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrorCode is the stable machine-readable code carried on every domain
// error and echoed in API error responses.
type ErrorCode string

const (
	CodeTaskNotFound                    ErrorCode = "TASK_NOT_FOUND"
	CodeTaskAlreadyCompleted            ErrorCode = "TASK_ALREADY_COMPLETED"
	CodeTaskArchived                    ErrorCode = "TASK_ARCHIVED"
	CodeInvalidTaskState                ErrorCode = "INVALID_TASK_STATE"
	CodeInvalidRecurrenceConfiguration  ErrorCode = "INVALID_RECURRENCE_CONFIGURATION"
	CodeTagNotFound                     ErrorCode = "TAG_NOT_FOUND"
	CodeTagsNotFound                    ErrorCode = "TAGS_NOT_FOUND"
	CodeTagAlreadyExists                ErrorCode = "TAG_ALREADY_EXISTS"
	CodeTooManyTags                     ErrorCode = "TOO_MANY_TAGS"
	CodeConcurrentModification          ErrorCode = "CONCURRENT_MODIFICATION"
	CodeValidationError                 ErrorCode = "VALIDATION_ERROR"
	CodeUnspecifiedServerError          ErrorCode = "UNSPECIFIED_SERVER_ERROR_CODE"
)

// DomainError is a synchronous, non-retryable failure caused by the
// caller's input or the entity's current state. Operations abort on the
// first one raised; no partial mutation is left visible.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewTaskNotFound(id uuid.UUID) *DomainError {
	return &DomainError{
		Code:    CodeTaskNotFound,
		Message: fmt.Sprintf("Task with id %s not found", id),
	}
}

func NewTaskAlreadyCompleted(id uuid.UUID) *DomainError {
	return &DomainError{
		Code:    CodeTaskAlreadyCompleted,
		Message: fmt.Sprintf("Task with id %s is already completed", id),
	}
}

func NewTaskArchived(id uuid.UUID) *DomainError {
	return &DomainError{
		Code:    CodeTaskArchived,
		Message: fmt.Sprintf("Task with id %s is archived and cannot be modified", id),
	}
}

func NewInvalidTaskState(message string) *DomainError {
	return &DomainError{Code: CodeInvalidTaskState, Message: message}
}

func NewInvalidRecurrenceConfiguration(message string) *DomainError {
	return &DomainError{Code: CodeInvalidRecurrenceConfiguration, Message: message}
}

func NewTagNotFound(id uuid.UUID) *DomainError {
	return &DomainError{
		Code:    CodeTagNotFound,
		Message: fmt.Sprintf("Tag with id %s not found", id),
	}
}

// NewTagsNotFound lists every unresolved id, not just the first.
func NewTagsNotFound(ids []uuid.UUID) *DomainError {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return &DomainError{
		Code:    CodeTagsNotFound,
		Message: fmt.Sprintf("Tags not found: %s", strings.Join(strs, ", ")),
	}
}

func NewTagAlreadyExists(name string) *DomainError {
	return &DomainError{
		Code:    CodeTagAlreadyExists,
		Message: fmt.Sprintf("Tag with name '%s' already exists", name),
	}
}

func NewTooManyTags(count, max int) *DomainError {
	return &DomainError{
		Code:    CodeTooManyTags,
		Message: fmt.Sprintf("Cannot assign %d tags to a task, maximum is %d", count, max),
	}
}

func NewConcurrentModification(id uuid.UUID) *DomainError {
	return &DomainError{
		Code:    CodeConcurrentModification,
		Message: fmt.Sprintf("Task with id %s was modified concurrently, retry the operation", id),
	}
}

func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidationError, Message: message}
}

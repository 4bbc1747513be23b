package dto

import (
	"errors"
	"strings"
	"time"

	"taskplanner/model"

	"github.com/google/uuid"
)

// CreateTaskRequest is the polymorphic create payload. Type selects the
// variant; the variant-specific fields of the other variant must be absent.
type CreateTaskRequest struct {
	Type     model.TaskType `json:"type" binding:"required"`
	Name     string         `json:"name" binding:"required"`
	Category *string        `json:"category"`
	Tags     []uuid.UUID    `json:"tags"`

	// ONE_TIME
	DueDate *model.Date `json:"dueDate"`

	// RECURRING
	RecurrencePattern *model.RecurrencePattern `json:"recurrencePattern"`
	DayOfWeek         *model.DayOfWeek         `json:"dayOfWeek"`
	StartDate         *model.Date              `json:"startDate"`
	EndDate           *model.Date              `json:"endDate"`
}

func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("task name cannot be blank")
	}

	switch r.Type {
	case model.TaskTypeOneTime:
		if r.DueDate == nil {
			return errors.New("dueDate is required for one-time tasks")
		}
	case model.TaskTypeRecurring:
		if r.RecurrencePattern == nil {
			return errors.New("recurrencePattern is required for recurring tasks")
		}
		if !r.RecurrencePattern.IsValid() {
			return errors.New("recurrencePattern must be DAILY or WEEKLY")
		}
		if r.StartDate == nil {
			return errors.New("startDate is required for recurring tasks")
		}
		if r.DayOfWeek != nil && !r.DayOfWeek.IsValid() {
			return errors.New("dayOfWeek must be one of MONDAY..SUNDAY")
		}
		if *r.RecurrencePattern == model.RecurrenceWeekly && r.DayOfWeek == nil {
			return errors.New("day of week is required for weekly recurrence")
		}
	default:
		return errors.New("type must be ONE_TIME or RECURRING")
	}
	return nil
}

// UpdateTaskRequest carries a partial field set; nil fields keep their
// prior values. A non-nil Tags list fully replaces the existing tag set.
type UpdateTaskRequest struct {
	Name     *string      `json:"name"`
	Category *string      `json:"category"`
	Tags     *[]uuid.UUID `json:"tags"`

	// ONE_TIME
	DueDate *model.Date `json:"dueDate"`

	// RECURRING
	RecurrencePattern *model.RecurrencePattern `json:"recurrencePattern"`
	DayOfWeek         *model.DayOfWeek         `json:"dayOfWeek"`
	EndDate           *model.Date              `json:"endDate"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("task name cannot be blank")
	}
	if r.RecurrencePattern != nil && !r.RecurrencePattern.IsValid() {
		return errors.New("recurrencePattern must be DAILY or WEEKLY")
	}
	if r.DayOfWeek != nil && !r.DayOfWeek.IsValid() {
		return errors.New("dayOfWeek must be one of MONDAY..SUNDAY")
	}
	return nil
}

type CompleteTaskRequest struct {
	Notes *string `json:"notes"`
}

type TaskOrderUpdate struct {
	ID           uuid.UUID `json:"id" binding:"required"`
	DisplayOrder int       `json:"displayOrder"`
}

type ReorderTasksRequest struct {
	TaskOrders []TaskOrderUpdate `json:"taskOrders" binding:"required,min=1"`
}

type TagSummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// TaskResponse is the wire shape of both task variants, discriminated by
// Type. Variant fields of the other variant are omitted.
type TaskResponse struct {
	Type         model.TaskType       `json:"type"`
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	DisplayOrder int                  `json:"displayOrder"`
	Category     *string              `json:"category"`
	Status       model.TaskStatus     `json:"status"`
	Tags         []TagSummaryResponse `json:"tags"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`

	DueDate     *model.Date `json:"dueDate,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`

	RecurrencePattern *model.RecurrencePattern `json:"recurrencePattern,omitempty"`
	DayOfWeek         *model.DayOfWeek         `json:"dayOfWeek,omitempty"`
	StartDate         *model.Date              `json:"startDate,omitempty"`
	EndDate           *model.Date              `json:"endDate,omitempty"`
	NextDueDate       *model.Date              `json:"nextDueDate,omitempty"`
}

func ToTaskResponse(t *model.Task) TaskResponse {
	tags := make([]TagSummaryResponse, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, TagSummaryResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
	}

	resp := TaskResponse{
		Type:         t.TaskType,
		ID:           t.ID,
		Name:         t.Name,
		DisplayOrder: t.DisplayOrder,
		Category:     t.Category,
		Status:       t.Status,
		Tags:         tags,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	switch t.TaskType {
	case model.TaskTypeOneTime:
		if t.OneTime != nil {
			due := t.OneTime.DueDate
			resp.DueDate = &due
			resp.CompletedAt = t.OneTime.CompletedAt
		}
	case model.TaskTypeRecurring:
		if t.Recurring != nil {
			start := t.Recurring.StartDate
			next := t.Recurring.NextDueDate
			resp.RecurrencePattern = &t.Recurring.RecurrencePattern
			resp.DayOfWeek = t.Recurring.DayOfWeek
			resp.StartDate = &start
			resp.EndDate = t.Recurring.EndDate
			resp.NextDueDate = &next
		}
	}
	return resp
}

func ToTaskResponses(tasks []model.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, ToTaskResponse(&tasks[i]))
	}
	return responses
}

type TaskCompletionResponse struct {
	ID            uuid.UUID  `json:"id"`
	CompletedDate model.Date `json:"completedDate"`
	CompletedAt   time.Time  `json:"completedAt"`
	Notes         *string    `json:"notes"`
}

func ToTaskCompletionResponses(completions []model.TaskCompletion) []TaskCompletionResponse {
	responses := make([]TaskCompletionResponse, 0, len(completions))
	for _, c := range completions {
		responses = append(responses, TaskCompletionResponse{
			ID:            c.ID,
			CompletedDate: c.CompletedDate,
			CompletedAt:   c.CompletedAt,
			Notes:         c.Notes,
		})
	}
	return responses
}

// APIError is the uniform error body: a stable code plus a human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

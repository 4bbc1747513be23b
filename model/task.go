package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskType string

const (
	TaskTypeOneTime   TaskType = "ONE_TIME"
	TaskTypeRecurring TaskType = "RECURRING"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
	StatusArchived  TaskStatus = "ARCHIVED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

type RecurrencePattern string

const (
	RecurrenceDaily  RecurrencePattern = "DAILY"
	RecurrenceWeekly RecurrencePattern = "WEEKLY"
)

func (p RecurrencePattern) IsValid() bool {
	return p == RecurrenceDaily || p == RecurrenceWeekly
}

// DayOfWeek is the wire representation of a weekday (MONDAY..SUNDAY).
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdays = map[DayOfWeek]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

func (d DayOfWeek) IsValid() bool {
	_, ok := weekdays[d]
	return ok
}

func (d DayOfWeek) Weekday() time.Weekday {
	return weekdays[d]
}

// Task is the shared shape of both task variants. TaskType discriminates
// which of OneTime/Recurring is populated; exactly one is ever non-nil.
type Task struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"not null"`
	DisplayOrder int            `gorm:"not null"`
	Category     *string
	TaskType     TaskType       `gorm:"not null"`
	Status       TaskStatus     `gorm:"not null;default:'PENDING'"`
	Version      int64          `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	OneTime   *OneTimeDetails   `gorm:"foreignKey:TaskID"`
	Recurring *RecurringDetails `gorm:"foreignKey:TaskID"`
	Tags      []Tag             `gorm:"many2many:task_tags"`
}

type OneTimeDetails struct {
	TaskID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DueDate     Date       `gorm:"type:date;not null"`
	CompletedAt *time.Time
}

func (OneTimeDetails) TableName() string { return "one_time_tasks" }

type RecurringDetails struct {
	TaskID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	RecurrencePattern RecurrencePattern `gorm:"not null"`
	DayOfWeek         *DayOfWeek
	StartDate         Date              `gorm:"type:date;not null"`
	EndDate           *Date             `gorm:"type:date"`
	NextDueDate       Date              `gorm:"type:date;not null"`
}

func (RecurringDetails) TableName() string { return "recurring_tasks" }

// DueOn reports the date a task is considered due: the fixed due date for
// one-time tasks, the next occurrence for recurring ones.
func (t *Task) DueOn() (Date, bool) {
	switch t.TaskType {
	case TaskTypeOneTime:
		if t.OneTime != nil {
			return t.OneTime.DueDate, true
		}
	case TaskTypeRecurring:
		if t.Recurring != nil {
			return t.Recurring.NextDueDate, true
		}
	}
	return Date{}, false
}

// TaskCompletion is an append-only record of a single completion event.
// The unique index doubles as the storage-level guard against two racing
// completions landing on the same calendar day.
type TaskCompletion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_task_completions_day"`
	CompletedDate Date      `gorm:"type:date;not null;uniqueIndex:idx_task_completions_day"`
	CompletedAt   time.Time
	Notes         *string
}

// TaskSearchParams is a query descriptor for task listings; it is never
// persisted. All supplied filters combine conjunctively.
type TaskSearchParams struct {
	Category  *string
	Status    *TaskStatus
	DueDate   *Date
	StartDate *Date
	EndDate   *Date
	TagIDs    []uuid.UUID
}

package services

import (
	"context"
	"testing"

	"taskplanner/dto"
	"taskplanner/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Task{},
		&model.OneTimeDetails{},
		&model.RecurringDetails{},
		&model.TaskCompletion{},
		&model.Tag{},
		&model.TaskTag{},
	))
	return db
}

func ptr[T any](v T) *T {
	return &v
}

func mustCreateTag(t *testing.T, db *gorm.DB, name string) *model.Tag {
	t.Helper()
	tag, err := CreateTag(context.Background(), db, name, ptr("#FF5733"))
	require.NoError(t, err)
	return tag
}

func mustCreateOneTime(t *testing.T, db *gorm.DB, name string, dueDate model.Date) *model.Task {
	t.Helper()
	task, err := CreateTask(context.Background(), db, dto.CreateTaskRequest{
		Type:    model.TaskTypeOneTime,
		Name:    name,
		DueDate: &dueDate,
	})
	require.NoError(t, err)
	return task
}

func mustCreateWeekly(t *testing.T, db *gorm.DB, name string, startDate model.Date, day model.DayOfWeek) *model.Task {
	t.Helper()
	task, err := CreateTask(context.Background(), db, dto.CreateTaskRequest{
		Type:              model.TaskTypeRecurring,
		Name:              name,
		RecurrencePattern: ptr(model.RecurrenceWeekly),
		DayOfWeek:         &day,
		StartDate:         &startDate,
	})
	require.NoError(t, err)
	return task
}

func mustCreateDaily(t *testing.T, db *gorm.DB, name string, startDate model.Date) *model.Task {
	t.Helper()
	task, err := CreateTask(context.Background(), db, dto.CreateTaskRequest{
		Type:              model.TaskTypeRecurring,
		Name:              name,
		RecurrencePattern: ptr(model.RecurrenceDaily),
		StartDate:         &startDate,
	})
	require.NoError(t, err)
	return task
}

func requireDomainError(t *testing.T, err error, code ErrorCode) *DomainError {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*DomainError)
	require.True(t, ok, "expected *DomainError, got %T: %v", err, err)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

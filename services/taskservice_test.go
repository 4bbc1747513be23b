package services

import (
	"context"
	"testing"
	"time"

	"taskplanner/dto"
	"taskplanner/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOneTimeTask(t *testing.T) {
	db := newTestDB(t)
	due := model.NewDate(2024, time.March, 10)

	task := mustCreateOneTime(t, db, "Buy groceries", due)

	assert.Equal(t, model.TaskTypeOneTime, task.TaskType)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Equal(t, 1, task.DisplayOrder)
	require.NotNil(t, task.OneTime)
	assert.True(t, task.OneTime.DueDate.Equal(due))
	assert.Nil(t, task.OneTime.CompletedAt)
	assert.Nil(t, task.Recurring)

	second := mustCreateOneTime(t, db, "Another", due)
	assert.Equal(t, 2, second.DisplayOrder)
}

func TestCreateRecurringTaskComputesInitialNextDueDate(t *testing.T) {
	db := newTestDB(t)

	// 2024-01-03 is a Wednesday; first Friday on or after it is 2024-01-05.
	weekly := mustCreateWeekly(t, db, "Team sync", model.NewDate(2024, time.January, 3), model.Friday)
	require.NotNil(t, weekly.Recurring)
	assert.True(t, weekly.Recurring.NextDueDate.Equal(model.NewDate(2024, time.January, 5)))

	daily := mustCreateDaily(t, db, "Journal", model.NewDate(2024, time.January, 3))
	require.NotNil(t, daily.Recurring)
	assert.True(t, daily.Recurring.NextDueDate.Equal(model.NewDate(2024, time.January, 3)))
}

func TestCreateTaskWithTags(t *testing.T) {
	db := newTestDB(t)
	work := mustCreateTag(t, db, "Work")
	home := mustCreateTag(t, db, "Home")

	task, err := CreateTask(context.Background(), db, dto.CreateTaskRequest{
		Type:    model.TaskTypeOneTime,
		Name:    "Tagged",
		Tags:    []uuid.UUID{work.ID, home.ID},
		DueDate: ptr(model.NewDate(2024, time.March, 10)),
	})
	require.NoError(t, err)
	require.Len(t, task.Tags, 2)
}

func TestCreateTaskTooManyTags(t *testing.T) {
	db := newTestDB(t)

	ids := make([]uuid.UUID, 11)
	for i := range ids {
		ids[i] = uuid.New()
	}

	_, err := CreateTask(context.Background(), db, dto.CreateTaskRequest{
		Type:    model.TaskTypeOneTime,
		Name:    "Over the limit",
		Tags:    ids,
		DueDate: ptr(model.NewDate(2024, time.March, 10)),
	})
	domainErr := requireDomainError(t, err, CodeTooManyTags)
	assert.Contains(t, domainErr.Message, "11")
	assert.Contains(t, domainErr.Message, "10")
}

func TestCreateTaskTagsNotFoundListsMissingIDs(t *testing.T) {
	db := newTestDB(t)
	existing := mustCreateTag(t, db, "Exists")
	missing := uuid.New()

	_, err := CreateTask(context.Background(), db, dto.CreateTaskRequest{
		Type:    model.TaskTypeOneTime,
		Name:    "Bad tags",
		Tags:    []uuid.UUID{existing.ID, missing},
		DueDate: ptr(model.NewDate(2024, time.March, 10)),
	})
	domainErr := requireDomainError(t, err, CodeTagsNotFound)
	assert.Contains(t, domainErr.Message, missing.String())
	assert.NotContains(t, domainErr.Message, existing.ID.String())
}

func TestGetTaskNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := GetTask(context.Background(), db, uuid.New())
	requireDomainError(t, err, CodeTaskNotFound)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	db := newTestDB(t)
	task := mustCreateOneTime(t, db, "Old name", model.NewDate(2024, time.March, 10))

	updated, err := UpdateTask(context.Background(), db, task.ID, dto.UpdateTaskRequest{
		Name:     ptr("New name"),
		Category: ptr("errands"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "errands", *updated.Category)
	// Unsupplied fields keep their prior values.
	assert.True(t, updated.OneTime.DueDate.Equal(model.NewDate(2024, time.March, 10)))
}

func TestUpdateTaskReplacesTagSet(t *testing.T) {
	db := newTestDB(t)
	first := mustCreateTag(t, db, "First")
	second := mustCreateTag(t, db, "Second")

	ctx := context.Background()
	task, err := CreateTask(ctx, db, dto.CreateTaskRequest{
		Type:    model.TaskTypeOneTime,
		Name:    "Retag me",
		Tags:    []uuid.UUID{first.ID},
		DueDate: ptr(model.NewDate(2024, time.March, 10)),
	})
	require.NoError(t, err)

	updated, err := UpdateTask(ctx, db, task.ID, dto.UpdateTaskRequest{
		Tags: ptr([]uuid.UUID{second.ID}),
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, second.ID, updated.Tags[0].ID)
}

func TestUpdateTaskIgnoresWrongVariantFields(t *testing.T) {
	db := newTestDB(t)
	task := mustCreateOneTime(t, db, "One-time", model.NewDate(2024, time.March, 10))

	updated, err := UpdateTask(context.Background(), db, task.ID, dto.UpdateTaskRequest{
		RecurrencePattern: ptr(model.RecurrenceWeekly),
		DayOfWeek:         ptr(model.Friday),
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskTypeOneTime, updated.TaskType)
	assert.Nil(t, updated.Recurring)
}

func TestUpdateArchivedTaskFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	task := mustCreateOneTime(t, db, "To archive", model.NewDate(2024, time.March, 10))

	_, err := ArchiveTask(ctx, db, task.ID)
	require.NoError(t, err)

	_, err = UpdateTask(ctx, db, task.ID, dto.UpdateTaskRequest{Name: ptr("Nope")})
	requireDomainError(t, err, CodeTaskArchived)
}

func TestCompleteOneTimeTask(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	task := mustCreateOneTime(t, db, "Finish report", model.NewDate(2024, time.March, 10))

	completed, err := CompleteTask(ctx, db, task.ID, ptr("done early"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.Status)
	require.NotNil(t, completed.OneTime.CompletedAt)

	completions, err := GetTaskCompletions(ctx, db, task.ID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.True(t, completions[0].CompletedDate.Equal(model.Today()))
	require.NotNil(t, completions[0].Notes)
	assert.Equal(t, "done early", *completions[0].Notes)

	_, err = CompleteTask(ctx, db, task.ID, nil)
	requireDomainError(t, err, CodeTaskAlreadyCompleted)
}

func TestCompleteArchivedTaskFailsRegardlessOfCompletionState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	task := mustCreateOneTime(t, db, "Archive me", model.NewDate(2024, time.March, 10))

	_, err := CompleteTask(ctx, db, task.ID, nil)
	require.NoError(t, err)
	_, err = ArchiveTask(ctx, db, task.ID)
	require.NoError(t, err)

	// Archived wins over already-completed.
	_, err = CompleteTask(ctx, db, task.ID, nil)
	requireDomainError(t, err, CodeTaskArchived)
}

func TestCompleteRecurringWeeklyAdvancesToNextWeek(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// 2024-01-01 is a Monday, so the initial next due date is the start
	// date itself.
	task := mustCreateWeekly(t, db, "Weekly review", model.NewDate(2024, time.January, 1), model.Monday)
	require.True(t, task.Recurring.NextDueDate.Equal(model.NewDate(2024, time.January, 1)))

	completed, err := CompleteTask(ctx, db, task.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, completed.Status, "recurring completion must not change status")
	assert.True(t, completed.Recurring.NextDueDate.Equal(model.NewDate(2024, time.January, 8)),
		"expected 2024-01-08, got %s", completed.Recurring.NextDueDate)

	completions, err := GetTaskCompletions(ctx, db, task.ID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.True(t, completions[0].CompletedDate.Equal(model.Today()))

	// Second completion on the same calendar day is rejected.
	_, err = CompleteTask(ctx, db, task.ID, nil)
	requireDomainError(t, err, CodeTaskAlreadyCompleted)
}

func TestCompleteRecurringDailyAdvancesOneDay(t *testing.T) {
	db := newTestDB(t)
	task := mustCreateDaily(t, db, "Stretch", model.NewDate(2024, time.January, 1))

	completed, err := CompleteTask(context.Background(), db, task.ID, nil)
	require.NoError(t, err)
	assert.True(t, completed.Recurring.NextDueDate.Equal(model.NewDate(2024, time.January, 2)))
}

func TestArchiveTaskTransitions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pending := mustCreateOneTime(t, db, "Pending", model.NewDate(2024, time.March, 10))
	archived, err := ArchiveTask(ctx, db, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, archived.Status)

	_, err = ArchiveTask(ctx, db, pending.ID)
	requireDomainError(t, err, CodeInvalidTaskState)

	_, err = ArchiveTask(ctx, db, uuid.New())
	requireDomainError(t, err, CodeTaskNotFound)
}

func TestDeleteTaskHidesAllReadPaths(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	task := mustCreateOneTime(t, db, "Doomed", model.NewDate(2024, time.March, 10))

	require.NoError(t, DeleteTask(ctx, db, task.ID))

	_, err := GetTask(ctx, db, task.ID)
	requireDomainError(t, err, CodeTaskNotFound)

	_, err = GetTaskCompletions(ctx, db, task.ID)
	requireDomainError(t, err, CodeTaskNotFound)

	active, err := ListActiveTasks(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Deleting again reports not-found.
	requireDomainError(t, DeleteTask(ctx, db, task.ID), CodeTaskNotFound)
}

func TestDeleteNonexistentTask(t *testing.T) {
	db := newTestDB(t)
	requireDomainError(t, DeleteTask(context.Background(), db, uuid.New()), CodeTaskNotFound)
}

func TestDisplayOrderSkipsDeletedTasks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := mustCreateOneTime(t, db, "First", model.NewDate(2024, time.March, 10))
	second := mustCreateOneTime(t, db, "Second", model.NewDate(2024, time.March, 10))
	assert.Equal(t, 2, second.DisplayOrder)

	require.NoError(t, DeleteTask(ctx, db, second.ID))

	third := mustCreateOneTime(t, db, "Third", model.NewDate(2024, time.March, 10))
	assert.Equal(t, first.DisplayOrder+1, third.DisplayOrder)
}

func TestReorderTasks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := mustCreateOneTime(t, db, "A", model.NewDate(2024, time.March, 10))
	b := mustCreateOneTime(t, db, "B", model.NewDate(2024, time.March, 10))

	err := ReorderTasks(ctx, db, []dto.TaskOrderUpdate{
		{ID: a.ID, DisplayOrder: 5},
		{ID: b.ID, DisplayOrder: 1},
	})
	require.NoError(t, err)

	active, err := ListActiveTasks(ctx, db)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, b.ID, active[0].ID)
	assert.Equal(t, a.ID, active[1].ID)
}

func TestReorderTasksUnknownID(t *testing.T) {
	db := newTestDB(t)
	err := ReorderTasks(context.Background(), db, []dto.TaskOrderUpdate{
		{ID: uuid.New(), DisplayOrder: 1},
	})
	requireDomainError(t, err, CodeTaskNotFound)
}

func TestSearchTasksFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	work := mustCreateTag(t, db, "Work")

	early, err := CreateTask(ctx, db, dto.CreateTaskRequest{
		Type:     model.TaskTypeOneTime,
		Name:     "Early",
		Category: ptr("office"),
		Tags:     []uuid.UUID{work.ID},
		DueDate:  ptr(model.NewDate(2024, time.March, 1)),
	})
	require.NoError(t, err)

	late := mustCreateOneTime(t, db, "Late", model.NewDate(2024, time.March, 20))
	weekly := mustCreateWeekly(t, db, "Weekly", model.NewDate(2024, time.March, 4), model.Monday)

	t.Run("category", func(t *testing.T) {
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{Category: ptr("office")})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, early.ID, got[0].ID)
	})

	t.Run("status", func(t *testing.T) {
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{Status: ptr(model.StatusPending)})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("tag membership", func(t *testing.T) {
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{TagIDs: []uuid.UUID{work.ID}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, early.ID, got[0].ID)
	})

	t.Run("unused tag matches nothing", func(t *testing.T) {
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{TagIDs: []uuid.UUID{uuid.New()}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("inclusive date range covers both variants", func(t *testing.T) {
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{
			StartDate: ptr(model.NewDate(2024, time.March, 1)),
			EndDate:   ptr(model.NewDate(2024, time.March, 4)),
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		// Recurring tasks are matched on nextDueDate (2024-03-04, a Monday).
		ids := []uuid.UUID{got[0].ID, got[1].ID}
		assert.Contains(t, ids, early.ID)
		assert.Contains(t, ids, weekly.ID)
	})

	t.Run("exact due date", func(t *testing.T) {
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{
			DueDate: ptr(model.NewDate(2024, time.March, 20)),
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, late.ID, got[0].ID)
	})

	t.Run("range wins over exact date", func(t *testing.T) {
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{
			DueDate:   ptr(model.NewDate(2024, time.March, 20)),
			StartDate: ptr(model.NewDate(2024, time.March, 1)),
			EndDate:   ptr(model.NewDate(2024, time.March, 2)),
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, early.ID, got[0].ID)
	})

	t.Run("deleted tasks are excluded", func(t *testing.T) {
		require.NoError(t, DeleteTask(ctx, db, late.ID))
		got, err := SearchTasks(ctx, db, model.TaskSearchParams{})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestGetTasksDueBetween(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inRange := mustCreateOneTime(t, db, "In range", model.NewDate(2024, time.June, 15))
	mustCreateOneTime(t, db, "Out of range", model.NewDate(2024, time.July, 15))

	got, err := GetTasksDueBetween(ctx, db, model.NewDate(2024, time.June, 1), model.NewDate(2024, time.June, 30))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inRange.ID, got[0].ID)
}

func TestGetTasksDueToday(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	today := mustCreateOneTime(t, db, "Today", model.Today())
	mustCreateOneTime(t, db, "Tomorrow", model.Today().AddDays(1))

	got, err := GetTasksDueToday(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, today.ID, got[0].ID)
}

func TestStaleSaveIsRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	task := mustCreateOneTime(t, db, "Contended", model.NewDate(2024, time.March, 10))

	stale, err := GetTask(ctx, db, task.ID)
	require.NoError(t, err)

	_, err = UpdateTask(ctx, db, task.ID, dto.UpdateTaskRequest{Name: ptr("Winner")})
	require.NoError(t, err)

	// A write based on the pre-update snapshot must not clobber the winner.
	err = casUpdateTask(db, stale, map[string]interface{}{"name": "Loser"})
	requireDomainError(t, err, CodeConcurrentModification)

	current, err := GetTask(ctx, db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Winner", current.Name)
}

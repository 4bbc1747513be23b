package services

import (
	"context"
	"errors"
	"time"

	"taskplanner/dto"
	"taskplanner/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTask validates tags, assigns the next display order and persists a
// new PENDING task of the requested variant. Recurring tasks get their
// initial next due date computed from the start date.
func CreateTask(ctx context.Context, db *gorm.DB, req dto.CreateTaskRequest) (*model.Task, error) {
	var created model.Task
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ValidateTagLimit(req.Tags); err != nil {
			return err
		}
		tags, err := GetTagsByIDs(ctx, tx, req.Tags)
		if err != nil {
			return err
		}

		maxOrder, err := maxDisplayOrder(tx)
		if err != nil {
			return err
		}

		task := model.Task{
			ID:           uuid.New(),
			Name:         req.Name,
			DisplayOrder: maxOrder + 1,
			Category:     req.Category,
			Status:       model.StatusPending,
			Tags:         tags,
		}

		switch req.Type {
		case model.TaskTypeOneTime:
			task.TaskType = model.TaskTypeOneTime
			task.OneTime = &model.OneTimeDetails{
				TaskID:  task.ID,
				DueDate: *req.DueDate,
			}
		case model.TaskTypeRecurring:
			nextDueDate, err := NextDueDate(*req.StartDate, *req.RecurrencePattern, req.DayOfWeek)
			if err != nil {
				return err
			}
			task.TaskType = model.TaskTypeRecurring
			task.Recurring = &model.RecurringDetails{
				TaskID:            task.ID,
				RecurrencePattern: *req.RecurrencePattern,
				DayOfWeek:         req.DayOfWeek,
				StartDate:         *req.StartDate,
				EndDate:           req.EndDate,
				NextDueDate:       nextDueDate,
			}
		default:
			return NewValidationError("type must be ONE_TIME or RECURRING")
		}

		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func GetTask(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Task, error) {
	return fetchTask(db.WithContext(ctx), id)
}

func ListActiveTasks(ctx context.Context, db *gorm.DB) ([]model.Task, error) {
	var tasks []model.Task
	err := withDetails(db.WithContext(ctx)).
		Order("display_order, id").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// SearchTasks applies the filters of params conjunctively. Tag membership
// uses OR semantics among the listed tags. When both startDate and endDate
// are present they win over dueDate; dueDate alone filters by exact match.
func SearchTasks(ctx context.Context, db *gorm.DB, params model.TaskSearchParams) ([]model.Task, error) {
	q := withDetails(db.WithContext(ctx)).Order("display_order, id")

	if len(params.TagIDs) > 0 {
		var taskIDs []uuid.UUID
		err := db.WithContext(ctx).
			Model(&model.TaskTag{}).
			Where("tag_id IN ?", params.TagIDs).
			Distinct().
			Pluck("task_id", &taskIDs).Error
		if err != nil {
			return nil, err
		}
		if len(taskIDs) == 0 {
			return []model.Task{}, nil
		}
		q = q.Where("id IN ?", taskIDs)
	}
	if params.Category != nil {
		q = q.Where("category = ?", *params.Category)
	}
	if params.Status != nil {
		q = q.Where("status = ?", *params.Status)
	}

	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}

	// Date filtering runs in memory over the preloaded variant details,
	// mirroring how the due-date views are computed elsewhere.
	switch {
	case params.StartDate != nil && params.EndDate != nil:
		tasks = filterTasks(tasks, func(t *model.Task) bool {
			due, ok := t.DueOn()
			return ok && !due.Before(*params.StartDate) && !due.After(*params.EndDate)
		})
	case params.DueDate != nil:
		tasks = filterTasks(tasks, func(t *model.Task) bool {
			due, ok := t.DueOn()
			return ok && due.Equal(*params.DueDate)
		})
	}
	return tasks, nil
}

func GetTasksDueToday(ctx context.Context, db *gorm.DB) ([]model.Task, error) {
	today := model.Today()
	return SearchTasks(ctx, db, model.TaskSearchParams{DueDate: &today})
}

func GetTasksDueBetween(ctx context.Context, db *gorm.DB, startDate, endDate model.Date) ([]model.Task, error) {
	return SearchTasks(ctx, db, model.TaskSearchParams{StartDate: &startDate, EndDate: &endDate})
}

// UpdateTask applies a partial update. Archived tasks are immutable. A
// supplied tag list replaces the existing set after the usual limit and
// existence checks. Fields belonging to the other variant are ignored.
func UpdateTask(ctx context.Context, db *gorm.DB, id uuid.UUID, req dto.UpdateTaskRequest) (*model.Task, error) {
	var updated *model.Task
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := fetchTask(tx, id)
		if err != nil {
			return err
		}
		if task.Status == model.StatusArchived {
			return NewTaskArchived(id)
		}

		if req.Tags != nil {
			if err := ValidateTagLimit(*req.Tags); err != nil {
				return err
			}
			tags, err := GetTagsByIDs(ctx, tx, *req.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&model.Task{ID: id}).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if err := casUpdateTask(tx, task, updates); err != nil {
			return err
		}

		switch task.TaskType {
		case model.TaskTypeOneTime:
			if req.DueDate != nil {
				err := tx.Model(&model.OneTimeDetails{}).
					Where("task_id = ?", id).
					Update("due_date", *req.DueDate).Error
				if err != nil {
					return err
				}
			}
		case model.TaskTypeRecurring:
			detailUpdates := map[string]interface{}{}
			if req.RecurrencePattern != nil {
				detailUpdates["recurrence_pattern"] = *req.RecurrencePattern
			}
			if req.DayOfWeek != nil {
				detailUpdates["day_of_week"] = *req.DayOfWeek
			}
			if req.EndDate != nil {
				detailUpdates["end_date"] = *req.EndDate
			}
			if len(detailUpdates) > 0 {
				err := tx.Model(&model.RecurringDetails{}).
					Where("task_id = ?", id).
					Updates(detailUpdates).Error
				if err != nil {
					return err
				}
			}
		}

		updated, err = fetchTask(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CompleteTask appends a completion record and advances the task. The
// record is written inside the same transaction as the task update so a
// partial failure never leaves one without the other.
func CompleteTask(ctx context.Context, db *gorm.DB, id uuid.UUID, notes *string) (*model.Task, error) {
	var completed *model.Task
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := fetchTask(tx, id)
		if err != nil {
			return err
		}
		if task.Status == model.StatusArchived {
			return NewTaskArchived(id)
		}

		now := time.Now()
		today := model.DateOf(now)

		switch task.TaskType {
		case model.TaskTypeOneTime:
			if task.Status == model.StatusCompleted {
				return NewTaskAlreadyCompleted(id)
			}
			if err := appendCompletion(tx, id, today, now, notes); err != nil {
				return err
			}
			if err := casUpdateTask(tx, task, map[string]interface{}{"status": model.StatusCompleted}); err != nil {
				return err
			}
			err := tx.Model(&model.OneTimeDetails{}).
				Where("task_id = ?", id).
				Update("completed_at", now).Error
			if err != nil {
				return err
			}

		case model.TaskTypeRecurring:
			// Idempotent per calendar day.
			var existing int64
			err := tx.Model(&model.TaskCompletion{}).
				Where("task_id = ? AND completed_date = ?", id, today).
				Count(&existing).Error
			if err != nil {
				return err
			}
			if existing > 0 {
				return NewTaskAlreadyCompleted(id)
			}
			if err := appendCompletion(tx, id, today, now, notes); err != nil {
				return err
			}

			nextDueDate, err := NextDueDate(
				task.Recurring.NextDueDate.AddDays(1),
				task.Recurring.RecurrencePattern,
				task.Recurring.DayOfWeek,
			)
			if err != nil {
				return err
			}
			if err := casUpdateTask(tx, task, map[string]interface{}{}); err != nil {
				return err
			}
			err = tx.Model(&model.RecurringDetails{}).
				Where("task_id = ?", id).
				Update("next_due_date", nextDueDate).Error
			if err != nil {
				return err
			}
		}

		completed, err = fetchTask(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// ArchiveTask moves a PENDING or COMPLETED task to ARCHIVED. Re-archiving
// is an error, not a no-op.
func ArchiveTask(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Task, error) {
	var archived *model.Task
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := fetchTask(tx, id)
		if err != nil {
			return err
		}
		if task.Status == model.StatusArchived {
			return NewInvalidTaskState("Task is already archived")
		}
		if err := casUpdateTask(tx, task, map[string]interface{}{"status": model.StatusArchived}); err != nil {
			return err
		}
		archived, err = fetchTask(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}

// DeleteTask marks the tombstone; completion history stays queryable from
// storage but every read path above it treats the id as gone.
func DeleteTask(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewTaskNotFound(id)
	}
	return nil
}

// ReorderTasks overwrites display orders entry by entry. Duplicate orders
// are allowed; listings break ties by id.
func ReorderTasks(ctx context.Context, db *gorm.DB, orders []dto.TaskOrderUpdate) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			res := tx.Model(&model.Task{}).
				Where("id = ?", order.ID).
				Updates(map[string]interface{}{
					"display_order": order.DisplayOrder,
					"version":       gorm.Expr("version + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return NewTaskNotFound(order.ID)
			}
		}
		return nil
	})
}

func GetTaskCompletions(ctx context.Context, db *gorm.DB, id uuid.UUID) ([]model.TaskCompletion, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NewTaskNotFound(id)
	}

	var completions []model.TaskCompletion
	err := db.WithContext(ctx).
		Where("task_id = ?", id).
		Order("completed_at").
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}

func fetchTask(tx *gorm.DB, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := withDetails(tx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewTaskNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func withDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("OneTime").
		Preload("Recurring").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") })
}

func maxDisplayOrder(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Model(&model.Task{}).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// casUpdateTask writes the tasks row guarded by a version compare-and-swap
// so two racing mutations cannot silently overwrite each other.
func casUpdateTask(tx *gorm.DB, task *model.Task, updates map[string]interface{}) error {
	updates["version"] = gorm.Expr("version + 1")
	res := tx.Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewConcurrentModification(task.ID)
	}
	return nil
}

func appendCompletion(tx *gorm.DB, taskID uuid.UUID, date model.Date, at time.Time, notes *string) error {
	return tx.Create(&model.TaskCompletion{
		ID:            uuid.New(),
		TaskID:        taskID,
		CompletedDate: date,
		CompletedAt:   at,
		Notes:         notes,
	}).Error
}

func filterTasks(tasks []model.Task, keep func(*model.Task) bool) []model.Task {
	filtered := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if keep(&tasks[i]) {
			filtered = append(filtered, tasks[i])
		}
	}
	return filtered
}

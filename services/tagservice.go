package services

import (
	"context"
	"errors"
	"strings"

	"taskplanner/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxTagsPerTask caps how many tags a single task may carry.
const MaxTagsPerTask = 10

func CreateTag(ctx context.Context, db *gorm.DB, name string, color *string) (*model.Tag, error) {
	trimmed := strings.TrimSpace(name)

	var created model.Tag
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findTagByNameFold(tx, trimmed)
		if err != nil {
			return err
		}
		if existing != nil {
			return NewTagAlreadyExists(name)
		}

		finalColor := model.RandomColor()
		if color != nil {
			finalColor = *color
		}

		created = model.Tag{
			ID:    uuid.New(),
			Name:  trimmed,
			Color: finalColor,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func UpdateTag(ctx context.Context, db *gorm.DB, id uuid.UUID, name, color string) (*model.Tag, error) {
	trimmed := strings.TrimSpace(name)

	var updated model.Tag
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag model.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewTagNotFound(id)
			}
			return err
		}

		// A rename may not collide with a different tag's name.
		sameName, err := findTagByNameFold(tx, trimmed)
		if err != nil {
			return err
		}
		if sameName != nil && sameName.ID != tag.ID {
			return NewTagAlreadyExists(name)
		}

		tag.Name = trimmed
		tag.Color = color
		if err := tx.Save(&tag).Error; err != nil {
			return err
		}
		updated = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func GetTag(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	if err := db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewTagNotFound(id)
		}
		return nil, err
	}
	return &tag, nil
}

func GetAllTags(ctx context.Context, db *gorm.DB) ([]model.Tag, error) {
	var tags []model.Tag
	if err := db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteTag removes the tag and cascades removal of its task associations.
// Both deletes run in one transaction so no orphan association survives.
func DeleteTag(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag model.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewTagNotFound(id)
			}
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// GetTagUsageCount counts the non-deleted tasks currently carrying the tag.
func GetTagUsageCount(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, err := GetTag(ctx, db, id); err != nil {
		return 0, err
	}

	var count int64
	err := db.WithContext(ctx).
		Model(&model.TaskTag{}).
		Joins("JOIN tasks ON tasks.id = task_tags.task_id").
		Where("task_tags.tag_id = ? AND tasks.deleted_at IS NULL", id).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetTagsByIDs resolves every id or fails listing all unresolved ids.
func GetTagsByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}

	var tags []model.Tag
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(tags))
	for _, tag := range tags {
		found[tag.ID] = true
	}
	var missing []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !found[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	if len(missing) > 0 {
		return nil, NewTagsNotFound(missing)
	}
	return tags, nil
}

func ValidateTagLimit(tagIDs []uuid.UUID) error {
	if len(tagIDs) > MaxTagsPerTask {
		return NewTooManyTags(len(tagIDs), MaxTagsPerTask)
	}
	return nil
}

func findTagByNameFold(tx *gorm.DB, name string) (*model.Tag, error) {
	var tag model.Tag
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

package model

import (
	"math/rand"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// HexColorPattern matches the only accepted tag color form, "#RRGGBB".
var HexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Tag names are unique case-insensitively across all tags.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:50;not null"`
	Color     string    `gorm:"size:7;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskTag is the task/tag association row. Declared explicitly so cascade
// removal and usage counts can query the join table directly.
type TaskTag struct {
	TaskID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (TaskTag) TableName() string { return "task_tags" }

// DefaultColors is the palette used when a tag is created without an
// explicit color.
var DefaultColors = []string{
	"#FF5733", "#33FF57", "#3357FF", "#FF33F5", "#F5FF33",
	"#33FFF5", "#F533FF", "#5733FF", "#FF5733", "#57FF33",
	"#3357FF", "#FF5733", "#5733FF", "#33F5FF", "#F53357",
	"#57F533", "#3357F5", "#F5FF57", "#FF3357", "#5733F5",
}

func RandomColor() string {
	return DefaultColors[rand.Intn(len(DefaultColors))]
}

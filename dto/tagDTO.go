package dto

import (
	"errors"
	"strings"

	"taskplanner/model"

	"github.com/google/uuid"
)

type CreateTagRequest struct {
	Name  string  `json:"name" binding:"required,max=50"`
	Color *string `json:"color"`
}

func (r *CreateTagRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("tag name cannot be blank")
	}
	if r.Color != nil && !model.HexColorPattern.MatchString(*r.Color) {
		return errors.New("color must be a valid hex color code (e.g., #FF5733)")
	}
	return nil
}

type UpdateTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"required"`
}

func (r *UpdateTagRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("tag name cannot be blank")
	}
	if !model.HexColorPattern.MatchString(r.Color) {
		return errors.New("color must be a valid hex color code (e.g., #FF5733)")
	}
	return nil
}

type TagResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	UsageCount int64     `json:"usageCount"`
}

type TagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

func ToTagResponse(tag *model.Tag, usageCount int64) TagResponse {
	return TagResponse{
		ID:         tag.ID,
		Name:       tag.Name,
		Color:      tag.Color,
		UsageCount: usageCount,
	}
}

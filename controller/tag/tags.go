package tag

import (
	"net/http"

	"taskplanner/dto"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TagController(router *gin.Engine, db *gorm.DB) {
	router.GET("/api/v1/tags", func(c *gin.Context) {
		GetAllTags(c, db)
	})
	router.GET("/api/v1/tags/:id", func(c *gin.Context) {
		GetTag(c, db)
	})
	router.POST("/api/v1/tags", func(c *gin.Context) {
		CreateTag(c, db)
	})
	router.PUT("/api/v1/tags/:id", func(c *gin.Context) {
		UpdateTag(c, db)
	})
	router.DELETE("/api/v1/tags/:id", func(c *gin.Context) {
		DeleteTag(c, db)
	})
}

func GetAllTags(c *gin.Context, db *gorm.DB) {
	ctx := c.Request.Context()
	tags, err := services.GetAllTags(ctx, db)
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		count, err := services.GetTagUsageCount(ctx, db, tags[i].ID)
		if err != nil {
			c.Error(err)
			return
		}
		responses = append(responses, dto.ToTagResponse(&tags[i], count))
	}

	c.JSON(http.StatusOK, dto.TagsResponse{Tags: responses})
}

func GetTag(c *gin.Context, db *gorm.DB) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tag, err := services.GetTag(ctx, db, id)
	if err != nil {
		c.Error(err)
		return
	}
	count, err := services.GetTagUsageCount(ctx, db, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagResponse(tag, count))
}

func CreateTag(c *gin.Context, db *gorm.DB) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}

	tag, err := services.CreateTag(c.Request.Context(), db, req.Name, req.Color)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTagResponse(tag, 0))
}

func UpdateTag(c *gin.Context, db *gorm.DB) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}

	ctx := c.Request.Context()
	tag, err := services.UpdateTag(ctx, db, id, req.Name, req.Color)
	if err != nil {
		c.Error(err)
		return
	}
	count, err := services.GetTagUsageCount(ctx, db, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagResponse(tag, count))
}

func DeleteTag(c *gin.Context, db *gorm.DB) {
	id, ok := tagIDParam(c)
	if !ok {
		return
	}

	if err := services.DeleteTag(c.Request.Context(), db, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func tagIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(services.NewValidationError("invalid tag id"))
		return uuid.Nil, false
	}
	return id, true
}

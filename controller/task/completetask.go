package task

import (
	"net/http"

	"taskplanner/dto"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CompleteTaskController(router *gin.Engine, db *gorm.DB) {
	router.POST("/api/v1/tasks/:id/complete", func(c *gin.Context) {
		CompleteTask(c, db)
	})
}

func CompleteTask(c *gin.Context, db *gorm.DB) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	// Body is optional; an empty body completes without notes.
	var req dto.CompleteTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(services.NewValidationError(err.Error()))
			return
		}
	}

	task, err := services.CompleteTask(c.Request.Context(), db, id, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

package task

import (
	"net/http"

	"taskplanner/dto"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func UpdateTaskController(router *gin.Engine, db *gorm.DB) {
	router.PUT("/api/v1/tasks/:id", func(c *gin.Context) {
		UpdateTask(c, db)
	})
}

func UpdateTask(c *gin.Context, db *gorm.DB) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}

	task, err := services.UpdateTask(c.Request.Context(), db, id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

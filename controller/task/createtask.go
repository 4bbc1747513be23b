package task

import (
	"net/http"

	"taskplanner/dto"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateTaskController(router *gin.Engine, db *gorm.DB) {
	router.POST("/api/v1/tasks", func(c *gin.Context) {
		CreateTask(c, db)
	})
}

func CreateTask(c *gin.Context, db *gorm.DB) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}

	task, err := services.CreateTask(c.Request.Context(), db, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

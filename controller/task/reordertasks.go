package task

import (
	"net/http"

	"taskplanner/dto"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ReorderTasksController(router *gin.Engine, db *gorm.DB) {
	router.PUT("/api/v1/tasks/reorder", func(c *gin.Context) {
		ReorderTasks(c, db)
	})
}

func ReorderTasks(c *gin.Context, db *gorm.DB) {
	var req dto.ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(services.NewValidationError(err.Error()))
		return
	}

	if err := services.ReorderTasks(c.Request.Context(), db, req.TaskOrders); err != nil {
		c.Error(err)
		return
	}

	tasks, err := services.ListActiveTasks(c.Request.Context(), db)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

package task

import (
	"net/http"

	"taskplanner/dto"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ArchiveTaskController(router *gin.Engine, db *gorm.DB) {
	router.POST("/api/v1/tasks/:id/archive", func(c *gin.Context) {
		ArchiveTask(c, db)
	})
}

func ArchiveTask(c *gin.Context, db *gorm.DB) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := services.ArchiveTask(c.Request.Context(), db, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

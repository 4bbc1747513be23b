package task

import (
	"net/http"

	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DeleteTaskController(router *gin.Engine, db *gorm.DB) {
	router.DELETE("/api/v1/tasks/:id", func(c *gin.Context) {
		DeleteTask(c, db)
	})
}

func DeleteTask(c *gin.Context, db *gorm.DB) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := services.DeleteTask(c.Request.Context(), db, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

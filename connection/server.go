package connection

import (
	"log"

	"taskplanner/controller/tag"
	"taskplanner/controller/task"
	"taskplanner/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	router := gin.Default()

	db, err := Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	router.Use(cors.Default())
	router.Use(middleware.ErrorHandler())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	task.CreateTaskController(router, db)
	task.GetTasksController(router, db)
	task.UpdateTaskController(router, db)
	task.CompleteTaskController(router, db)
	task.ArchiveTaskController(router, db)
	task.DeleteTaskController(router, db)
	task.ReorderTasksController(router, db)
	tag.TagController(router, db)

	router.Run()
}

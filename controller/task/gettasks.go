package task

import (
	"net/http"
	"strings"

	"taskplanner/dto"
	"taskplanner/model"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetTasksController(router *gin.Engine, db *gorm.DB) {
	router.GET("/api/v1/tasks", func(c *gin.Context) {
		GetTasks(c, db)
	})
	router.GET("/api/v1/tasks/:id", func(c *gin.Context) {
		GetTask(c, db)
	})
	router.GET("/api/v1/tasks/:id/completions", func(c *gin.Context) {
		GetTaskCompletions(c, db)
	})
}

func GetTasks(c *gin.Context, db *gorm.DB) {
	params, err := searchParamsFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	tasks, svcErr := services.SearchTasks(c.Request.Context(), db, params)
	if svcErr != nil {
		c.Error(svcErr)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

func GetTask(c *gin.Context, db *gorm.DB) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := services.GetTask(c.Request.Context(), db, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

func GetTaskCompletions(c *gin.Context, db *gorm.DB) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	completions, err := services.GetTaskCompletions(c.Request.Context(), db, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskCompletionResponses(completions))
}

func taskIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(services.NewValidationError("invalid task id"))
		return uuid.Nil, false
	}
	return id, true
}

func searchParamsFromQuery(c *gin.Context) (model.TaskSearchParams, error) {
	var params model.TaskSearchParams

	if v := c.Query("category"); v != "" {
		params.Category = &v
	}
	if v := c.Query("status"); v != "" {
		status := model.TaskStatus(v)
		if !status.IsValid() {
			return params, services.NewValidationError("status must be PENDING, COMPLETED or ARCHIVED")
		}
		params.Status = &status
	}

	dates := map[string]**model.Date{
		"dueDate":   &params.DueDate,
		"startDate": &params.StartDate,
		"endDate":   &params.EndDate,
	}
	for name, target := range dates {
		if v := c.Query(name); v != "" {
			date, err := model.ParseDate(v)
			if err != nil {
				return params, services.NewValidationError(name + ": " + err.Error())
			}
			*target = &date
		}
	}

	// Accepts both repeated tags params and comma-separated lists.
	for _, raw := range c.QueryArray("tags") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return params, services.NewValidationError("invalid tag id: " + part)
			}
			params.TagIDs = append(params.TagIDs, id)
		}
	}

	return params, nil
}

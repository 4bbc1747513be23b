package middleware

import (
	"errors"
	"log"
	"net/http"

	"taskplanner/dto"
	"taskplanner/services"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors attached to the context into the uniform
// {code, message} error body. Handlers call c.Error(err) and return;
// anything that is not a DomainError becomes a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		var domainErr *services.DomainError
		if errors.As(last.Err, &domainErr) {
			c.JSON(statusForCode(domainErr.Code), dto.APIError{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
			})
			return
		}

		log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, last.Err)
		c.JSON(http.StatusInternalServerError, dto.APIError{
			Code:    string(services.CodeUnspecifiedServerError),
			Message: "An unexpected error has occurred on the server.",
		})
	}
}

func statusForCode(code services.ErrorCode) int {
	switch code {
	case services.CodeTaskNotFound, services.CodeTagNotFound:
		return http.StatusNotFound
	case services.CodeTagAlreadyExists, services.CodeConcurrentModification:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

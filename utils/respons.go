package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DataResponse struct {
	Data interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

// RespondError answers with the AppError status, or 500 for anything else.
// Unexpected errors are logged and never echoed to the client.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.Status, ErrorResponse{
			Status:  appErr.Status,
			Message: appErr.Message,
		})
		return
	}

	if ErrorLogger != nil {
		ErrorLogger.WithField("path", c.Request.URL.Path).Errorf("request failed: %v", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

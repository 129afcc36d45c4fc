package utils

import (
	"fmt"
	"net/http"
)

// AppError is a failure the client caused; Status is the HTTP code to answer with.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, format string, args ...interface{}) *AppError {
	return &AppError{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *AppError {
	return NewAppError(http.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...interface{}) *AppError {
	return NewAppError(http.StatusNotFound, format, args...)
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return NewAppError(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return NewAppError(http.StatusForbidden, format, args...)
}

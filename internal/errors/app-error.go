package app_error

import (
	"encoding/json"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg, "not-found")
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, msg, "forbidden")
}

func BadRequest(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg, "internal")
}

// IsNotFound reports whether err is an AppError carrying a 404, used by the
// chat session coordinator to distinguish client staleness from store faults.
func IsNotFound(err *AppError) bool {
	return err != nil && err.Code == http.StatusNotFound
}

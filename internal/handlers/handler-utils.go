package handlers

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/internal/dtos"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
	"github.com/wedsmoker/socialChat/internal/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type HandlerFunc func(w http.ResponseWriter, r *http.Request) *app_error.AppError

func WrapHandler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			log.Error().Err(err).Str("requestID", r.Header.Get("X-Request-ID")).Msg("request failed")
			writeJSON(w, err.Code, dtos.Response[any]{
				Message: "Error occur",
				Errors: &dtos.ErrorResponse{
					Code:    err.Code,
					Field:   err.Field,
					Message: err.Message,
				},
				RequestID: r.Header.Get("X-Request-ID"),
			})
		}
	}
}

func WriteResponse[T any](w http.ResponseWriter, status int, message string, data T, requestId string) {
	writeJSON(w, status, dtos.Response[T]{
		Message:   message,
		Data:      data,
		RequestID: requestId,
	})
}

func RequestID(r *http.Request) string {
	if reqID, ok := r.Context().Value(middleware.RequestIdKey).(string); ok {
		return reqID
	}
	return "unknown"
}

package dtos

// Response is the envelope every REST endpoint writes: Data on success,
// Errors on failure, never both. The request id ties a response back to the
// server-side log line.
type Response[T any] struct {
	Message   string         `json:"message"`
	Data      T              `json:"data"`
	RequestID string         `json:"request_id,omitempty"`
	Errors    *ErrorResponse `json:"errors,omitempty"`
}

// ErrorResponse mirrors AppError for the wire: the HTTP code, a user-facing
// message, and the offending field when one is known.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

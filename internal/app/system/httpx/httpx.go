// internal/app/system/httpx/httpx.go
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the uniform wrapper for every API outcome, success or failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// OK writes a success envelope with the given status, payload, and message.
func OK(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// Created is OK with a 201 status.
func Created(w http.ResponseWriter, data any, message string) {
	OK(w, http.StatusCreated, data, message)
}

// Fail writes a failure envelope with the given status and error text.
func Fail(w http.ResponseWriter, status int, errMsg string, details any) {
	writeJSON(w, status, Envelope{Success: false, Error: errMsg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Kind classifies a failure into the closed taxonomy the API exposes.
type Kind int

const (
	KindInternal   Kind = iota // 500, generic message
	KindValidation             // 400, field list in Details
	KindBadRequest             // 400
	KindUnauthorized           // 401
	KindForbidden              // 403
	KindNotFound               // 404
	KindConflict               // 400 "already exists" class
	KindRateLimit              // 429
)

// Error is the tagged failure lower layers return instead of raw errors.
// The message is safe to show the caller; wrapped internal detail is not.
type Error struct {
	Kind    Kind
	Msg     string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Msg + ": " + e.cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.cause }

// E builds a tagged error with a caller-visible message.
func E(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Wrap tags an underlying error. The cause is logged, never returned.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, cause: cause}
}

// WithDetails attaches structured detail (e.g. field violations).
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// Common short-hands used throughout the handlers.
var (
	ErrUnauthorized = E(KindUnauthorized, "Authentication required")
	ErrForbidden    = E(KindForbidden, "Admin access required")
)

// NotFound builds a 404 error for the named resource. The same response is
// used whether the record is absent or merely owned by someone else, so the
// API never leaks existence.
func NotFound(resource string) *Error {
	return E(KindNotFound, resource+" not found")
}

// Status maps a Kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindBadRequest, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteError performs the single exhaustive match from error to envelope.
// Tagged errors keep their message; anything untagged becomes a generic 500
// with the real cause logged server-side only.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == KindInternal {
			log.Error("internal error", zap.Error(err))
			Fail(w, http.StatusInternalServerError, "Internal server error", nil)
			return
		}
		Fail(w, apiErr.Kind.Status(), apiErr.Msg, apiErr.Details)
		return
	}
	log.Error("unhandled error", zap.Error(err))
	Fail(w, http.StatusInternalServerError, "Internal server error", nil)
}

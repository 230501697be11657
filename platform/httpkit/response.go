// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"orghub_backend/platform/apperr"
	"orghub_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success response format.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the standard error response format.
type ErrorBody struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// FieldErrorsBody is the response format for field validation failures.
type FieldErrorsBody struct {
	Errors []validator.FieldError `json:"errors"`
}

// Success sends a success envelope with the given status code.
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Status: "success", Message: message, Data: data})
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// Fail sends an error body with the given status code and status label.
func Fail(c *gin.Context, status int, label, message string) {
	c.JSON(status, ErrorBody{Status: label, Message: message, StatusCode: status})
}

// ValidationFailed sends a 422 with one entry per violated field/message pair.
func ValidationFailed(c *gin.Context, fields []validator.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, FieldErrorsBody{Errors: fields})
}

// statusLabel returns the human status label used in error bodies for each
// error kind. The labels mirror the public API contract, including the
// inconsistent capitalization it shipped with.
func statusLabel(kind apperr.Kind) string {
	switch kind {
	case apperr.KindForbidden:
		return "Forbidden Request"
	case apperr.KindBadRequest:
		return "Bad Request"
	default:
		return "Bad request"
	}
}

// HandleError maps domain errors to HTTP responses.
// Typed *apperr.Error values map via their Kind; validation errors carry their
// field details; anything untyped becomes an opaque 500 so no storage-layer
// detail leaks to clients.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	domainErr, ok := err.(*apperr.Error)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorBody{
			Status:     "error",
			Message:    "Internal server error",
			StatusCode: http.StatusInternalServerError,
		})
		return true
	}

	if domainErr.Kind == apperr.KindValidation {
		if fields, ok := domainErr.Details.([]validator.FieldError); ok {
			ValidationFailed(c, fields)
			return true
		}
		ValidationFailed(c, []validator.FieldError{{Field: "", Message: domainErr.Message}})
		return true
	}

	status := domainErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		c.JSON(status, ErrorBody{Status: "error", Message: "Internal server error", StatusCode: status})
		return true
	}

	c.JSON(status, ErrorBody{Status: statusLabel(domainErr.Kind), Message: domainErr.Message, StatusCode: status})
	return true
}

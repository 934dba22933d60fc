// Package response defines consistent HTTP response structures.
// All API responses should use these types for consistency.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"itemsapi/src/core/domain"
)

// Machine-readable error codes.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeNotConfigured    = "DB_NOT_CONFIGURED"
	CodeConnectFailed    = "DB_CONNECT_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
	genericInternalError = "An unexpected error occurred"
)

// Success represents a successful response with data.
type Success struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

// List represents a collection response.
type List struct {
	Count int `json:"count"`
	Data  any `json:"data"`
}

// Error represents an error response.
type Error struct {
	OK bool `json:"ok"`

	// Error is a machine-readable code (e.g., "NOT_FOUND"), or the validation
	// message itself for 400 responses.
	Error string `json:"error"`

	// Message is a human-readable error description
	Message string `json:"message,omitempty"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// Missing lists absent configuration variables (names only)
	Missing []string `json:"missing,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{OK: true, Data: data})
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Success{OK: true, Data: data})
}

// Collection sends a 200 response with a counted list.
func Collection[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, List{Count: len(data), Data: data})
}

// ValidationError sends a 400 response for validation failures.
func ValidationError(c *gin.Context, field, message, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error:     message,
		Field:     field,
		RequestID: requestID,
	})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusNotFound, Error{
		Error:     CodeNotFound,
		Message:   message,
		RequestID: requestID,
	})
}

// RouteNotFound sends a 404 response naming the unmatched method and path.
func RouteNotFound(c *gin.Context, requestID string) {
	NotFound(c, fmt.Sprintf("Route not found: %s %s", c.Request.Method, c.Request.URL.RequestURI()), requestID)
}

// NotConfigured sends a 503 response listing the missing variable names.
func NotConfigured(c *gin.Context, err *domain.NotConfiguredError, requestID string) {
	message := err.Message
	if message == "" {
		message = "Database is not configured: missing " + strings.Join(err.Missing, ", ")
	}
	c.JSON(http.StatusServiceUnavailable, Error{
		Error:     CodeNotConfigured,
		Message:   message,
		Missing:   err.Missing,
		RequestID: requestID,
	})
}

// ConnectFailed sends a 500 response without driver detail.
func ConnectFailed(c *gin.Context, requestID string) {
	c.JSON(http.StatusInternalServerError, Error{
		Error:     CodeConnectFailed,
		Message:   "Database connection failed",
		RequestID: requestID,
	})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	c.JSON(http.StatusInternalServerError, InternalErrorBody(requestID))
}

// InternalErrorBody is the generic 500 body, also used by the recovery middleware.
func InternalErrorBody(requestID string) Error {
	return Error{
		Error:     CodeInternalError,
		Message:   genericInternalError,
		RequestID: requestID,
	}
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// Infrastructure detail carried by the error is never written to the client.
func FromDomainError(c *gin.Context, err error, requestID string) {
	var notConfigured *domain.NotConfiguredError
	var domainErr *domain.DomainError
	switch {
	case errors.As(err, &notConfigured):
		NotConfigured(c, notConfigured, requestID)
	case domain.IsValidationError(err):
		if errors.As(err, &domainErr) {
			ValidationError(c, domainErr.Field, domainErr.Message, requestID)
		} else {
			ValidationError(c, "", "invalid input", requestID)
		}
	case domain.IsNotFound(err):
		message := "Resource not found"
		if errors.As(err, &domainErr) && domainErr.Message != "" {
			message = capitalize(domainErr.Message) + " not found"
		}
		NotFound(c, message, requestID)
	case domain.IsConnectFailed(err):
		ConnectFailed(c, requestID)
	default:
		InternalError(c, requestID)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

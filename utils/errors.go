package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AppError is the error taxonomy every controller propagates to the
// boundary. Status carries the HTTP mapping; Err keeps the cause.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing/empty required fields by name
func NewValidationError(fields ...string) *AppError {
	msg := "All fields are required"
	if len(fields) > 0 {
		msg = strings.Join(fields, ", ") + " required"
	}
	return &AppError{Status: fiber.StatusBadRequest, Message: msg}
}

// NewNotFoundError reports an absent target entity
func NewNotFoundError(entity string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: entity + " not found"}
}

// NewAuthorizationError reports a caller lacking the required role or membership
func NewAuthorizationError(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

// NewDuplicateError reports a submission the flow forbids repeating
func NewDuplicateError(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

// NewExternalServiceError reports a failed external dependency call.
// Surfaces as a 400 to the client; no retry is attempted.
func NewExternalServiceError(message string, err error) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message, Err: err}
}

// HandleError maps an error to the JSON error envelope. Unrecognized
// errors become opaque 500s.
func HandleError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, "Something went wrong")
}

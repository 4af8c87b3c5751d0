package utils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantMsg    string
	}{
		{"validation with fields", NewValidationError("email", "password"), fiber.StatusBadRequest, "email, password required"},
		{"validation without fields", NewValidationError(), fiber.StatusBadRequest, "All fields are required"},
		{"not found", NewNotFoundError("Team"), fiber.StatusNotFound, "Team not found"},
		{"authorization", NewAuthorizationError("unauthorized"), fiber.StatusUnauthorized, "unauthorized"},
		{"duplicate", NewDuplicateError("Feedback already given"), fiber.StatusConflict, "Feedback already given"},
		{"external service", NewExternalServiceError("Sentiment Analysis API is not working", errors.New("boom")), fiber.StatusBadRequest, "Sentiment Analysis API is not working"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalServiceError("Sentiment Analysis API is not working", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

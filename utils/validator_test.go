package utils

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,max=10"`
	Stars int    `validate:"min=0,max=5"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{Email: "a@b.com", Name: "ana", Stars: 3})
		assert.NoError(t, err)
	})

	t.Run("missing fields listed by name", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{})

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
		assert.Contains(t, appErr.Message, "email")
		assert.Contains(t, appErr.Message, "name")
	})

	t.Run("tag details included", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{Email: "not-an-email", Name: "waytoolongforthis", Stars: 9})

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "email (must be a valid email)")
		assert.Contains(t, appErr.Message, "name (at most 10)")
		assert.Contains(t, appErr.Message, "stars (at most 5)")
	})
}

func TestGenerateRateLimitKey(t *testing.T) {
	key := GenerateRateLimitKey(42, "7", "/api/v1/teams/feedback")
	assert.Equal(t, "rl:42:7:/api/v1/teams/feedback", key)
}

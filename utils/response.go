package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse writes the uniform success envelope used by every endpoint
func SuccessResponse(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"data":       data,
		"message":    message,
	})
}

// ErrorResponse writes the uniform error envelope
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"success":    false,
		"message":    message,
	})
}

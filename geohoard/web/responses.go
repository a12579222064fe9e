package web

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// sendSuccess wraps data in the standard success envelope.
func sendSuccess(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// sendError wraps a rejection in the standard error envelope.
func sendError(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

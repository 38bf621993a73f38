package response

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope is the standard API response format. Errors carries
// machine-readable reason strings on denials and validation failures.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *fiber.Ctx, status int, message string, errs ...string) error {
	return c.Status(status).JSON(Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *fiber.Ctx, message string, errs ...string) error {
	return Error(c, fiber.StatusBadRequest, message, errs...)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response carrying the denial reason.
func Forbidden(c *fiber.Ctx, message string, errs ...string) error {
	return Error(c, fiber.StatusForbidden, message, errs...)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Internal sends a 500 response for engine-level faults. Business denials
// never take this path; only genuine errors do.
func Internal(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/types"
)

// StatusForKind maps the application error taxonomy to HTTP status codes.
func StatusForKind(kind types.Kind) int {
	switch kind {
	case types.KindNotFound:
		return fiber.StatusNotFound
	case types.KindForbidden:
		return fiber.StatusForbidden
	case types.KindAlreadyExists:
		return fiber.StatusConflict
	case types.KindInvalidArgument:
		return fiber.StatusBadRequest
	case types.KindInvalidToken:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// ErrorResponse sends a standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// KindErrorResponse sends an error envelope for a service-layer error,
// mapping its kind to the HTTP status. Unknown errors become opaque 500s.
func KindErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	kind := types.KindOf(err)
	message := err.Error()
	if kind == types.KindUnknown {
		message = "internal error"
	}
	if e, ok := err.(*types.Error); ok {
		message = e.Message
	}
	return ErrorResponse(c, message, StatusForKind(kind), errorType)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

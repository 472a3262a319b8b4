package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps typed API errors, validation errors and everything else
// to JSON responses. Unclassified failures become opaque 500s carrying the
// error text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if apiError, ok := err.(Error); ok {
		return c.Status(apiError.Code).JSON(apiError)
	}
	if valError, ok := err.(ValidationError); ok {
		return c.Status(valError.Status).JSON(valError)
	}
	if fiberError, ok := err.(*fiber.Error); ok {
		return c.Status(fiberError.Code).JSON(NewError(fiberError.Code, fiberError.Message))
	}

	// Unclassified failures are logged with their cause but surfaced as an
	// opaque 500 so internal error strings never reach clients.
	slog.Default().Error("request failed", "error", err)
	apiError := NewError(fiber.StatusInternalServerError, "internal server error")
	return c.Status(apiError.Code).JSON(apiError)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrEmptyQuery() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "query cannot be empty",
	}
}

func ErrInvalidFileType() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid file type, please upload a PNG, JPG, or JPEG image",
	}
}

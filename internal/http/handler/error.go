package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Client-facing error messages. NotFound is a complete message; the other
// categories prefix a free-form detail string.
const (
	notFoundMessage  = "No resources could be found."
	badRequestPrefix = "There is something wrong with your request: "
	internalPrefix   = "Something went wrong. Probably not your fault: "
)

// errorPayload is the error response body shape for every non-2xx status.
type errorPayload struct {
	Error string `json:"error"`
}

// writeError writes the standardized JSON error body.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// writeNotFound reports a missing resource. The message carries no detail;
// there is nothing actionable for the client beyond the status.
func writeNotFound(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusNotFound, notFoundMessage)
}

// writeBadRequest reports a problem with the client's request.
func writeBadRequest(c *fiber.Ctx, detail string) error {
	return writeError(c, fiber.StatusBadRequest, badRequestPrefix+detail)
}

// writeInternal reports a local failure unrelated to client input.
func writeInternal(c *fiber.Ctx, detail string) error {
	return writeError(c, fiber.StatusInternalServerError, internalPrefix+detail)
}

// ErrorHandler returns a Fiber global error handler that keeps errors
// surfacing outside the handlers on the same JSON shape as handler
// results. Unknown routes get the standard not-found body.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return writeNotFound(c)
			case fiber.StatusBadRequest:
				return writeBadRequest(c, fe.Message)
			default:
				if fe.Code >= fiber.StatusInternalServerError {
					return writeInternal(c, fe.Message)
				}
				return writeError(c, fe.Code, fe.Message)
			}
		}
		return writeInternal(c, err.Error())
	}
}

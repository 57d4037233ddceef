package handler

import "github.com/gofiber/fiber/v2"

// statusPayload is the success body shape shared by health and upload.
type statusPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthCheck reports static liveness. No dependencies, no failure modes.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(statusPayload{
			Status:  "ok",
			Message: "Server is running :)",
		})
	}
}

package provider

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/progress"
)

// GetProgress returns the provider's onboarding stage.
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	return c.JSON(fiber.Map{
		"progress": progress.Default.Current(userID),
	})
}

// SetProgress advances the onboarding stage. Entering "awaiting" schedules
// the automatic approval.
func SetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	type ProgressInput struct {
		Progress string `json:"progress"`
	}

	input := new(ProgressInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := progress.Default.Set(userID, progress.Stage(input.Progress)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"progress": progress.Default.Current(userID),
	})
}

// ResetProgress returns the stage to basic.
func ResetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	if err := progress.Default.Reset(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"progress": progress.StageBasic,
	})
}

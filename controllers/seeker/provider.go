package seeker

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
	"github.com/mindhaven/mindhaven-api/utils"
)

// GetProviders returns the browsable provider directory, optionally
// filtered by care module and category. Only approved providers are listed.
func GetProviders(c *fiber.Ctx) error {
	query := db.DB.Where("role = ?", models.RoleProvider).
		Where("setup_progress = ?", "approved")

	if module := c.Query("module"); module != "" {
		query = query.Where("module = ?", module)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var providers []models.UserProfile
	if err := query.Order("first_name asc").Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}

	for i := range providers {
		providers[i].Password = ""
		providers[i].OTP = ""
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"count":     len(providers),
	})
}

// GetProvider returns one provider's full directory profile.
func GetProvider(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.UserProfile
	if err := db.DB.Where("role = ?", models.RoleProvider).
		First(&provider, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	provider.Password = ""
	provider.OTP = ""

	return c.JSON(provider)
}

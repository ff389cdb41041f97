package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
	"github.com/mindhaven/mindhaven-api/redis"
	"github.com/mindhaven/mindhaven-api/utils"
)

// UpdateProfile patches mutable profile fields for the logged-in user.
// Writes go to the profile row first; the session cache is refreshed only
// after the remote write succeeds.
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input models.UserProfile
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.UserProfile
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{}
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.DOB != "" {
		updates["dob"] = input.DOB
	}
	if input.Gender != "" {
		updates["gender"] = input.Gender
	}
	if user.Role == models.RoleProvider {
		if input.Specialty != "" {
			updates["specialty"] = input.Specialty
		}
		if input.Module != "" {
			updates["module"] = input.Module
		}
		if input.Category != "" {
			updates["category"] = input.Category
		}
		if input.About != "" {
			updates["about"] = input.About
		}
		if input.Location != "" {
			updates["location"] = input.Location
		}
		if input.Availability != "" {
			updates["availability"] = input.Availability
		}
		if input.ExperienceYears != 0 {
			updates["experience_years"] = input.ExperienceYears
		}
		if (input.Charges != models.Charges{}) {
			updates["charges"] = input.Charges
		}
	}

	if len(updates) == 0 {
		return c.JSON(user)
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	user.Password = ""
	user.OTP = ""
	if err := redis.SetJSON(redis.SessionKey(userID), user, 24*time.Hour); err != nil {
		log.Printf("Failed to refresh session cache for %s: %v", userID, err)
	}

	return c.JSON(user)
}

// UploadAvatar stores a profile picture on Cloudinary and saves the URL.
func UploadAvatar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No avatar file provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read avatar file",
		})
	}
	defer file.Close()

	url, err := utils.UploadAvatar(file, "avatar-"+userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload avatar",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&models.UserProfile{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save avatar URL",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"avatar_url": url,
	})
}

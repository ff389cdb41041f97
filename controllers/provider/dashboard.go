package provider

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
)

// GetDashboardOverview returns the counters on the provider home screen.
func GetDashboardOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var statistics struct {
		TotalAppointments int64     `json:"total_appointments"`
		PendingCount      int64     `json:"pending_count"`
		UpcomingCount     int64     `json:"upcoming_count"`
		CompletedCount    int64     `json:"completed_count"`
		CancelledCount    int64     `json:"cancelled_count"`
		Patients          int       `json:"patients"`
		Reviews           int       `json:"reviews"`
		LastUpdated       time.Time `json:"last_updated"`
	}

	appointmentQuery := db.DB.Model(&models.Appointment{}).Where("provider_id = ?", userID)

	appointmentQuery.Count(&statistics.TotalAppointments)
	countByStatus := func(status models.AppointmentStatus, dest *int64) {
		db.DB.Model(&models.Appointment{}).
			Where("provider_id = ? AND status = ?", userID, status).
			Count(dest)
	}
	countByStatus(models.StatusPending, &statistics.PendingCount)
	countByStatus(models.StatusUpcoming, &statistics.UpcomingCount)
	countByStatus(models.StatusCompleted, &statistics.CompletedCount)
	countByStatus(models.StatusCancelled, &statistics.CancelledCount)

	var profile models.UserProfile
	if err := db.DB.Select("patients", "reviews").First(&profile, "id = ?", userID).Error; err == nil {
		statistics.Patients = profile.Patients
		statistics.Reviews = profile.Reviews
	}

	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}

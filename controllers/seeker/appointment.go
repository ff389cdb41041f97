package seeker

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
	"github.com/mindhaven/mindhaven-api/utils"
)

// GetAppointments returns the seeker's appointments partitioned into the
// requests / upcoming / completed view groups.
func GetAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Provider").
		Where("seeker_id = ?", userID).
		Order("starts_at asc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	for i := range appointments {
		appointments[i].Provider.Password = ""
		appointments[i].Provider.OTP = ""
	}

	return c.JSON(models.GroupAppointments(appointments))
}

// BookAppointment writes a new appointment row. The caller is responsible
// for having picked a doctor, day and time; missing selections are rejected
// before any write. Status seeds pending, or upcoming when the provider has
// auto-confirm enabled.
func BookAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	type BookInput struct {
		DoctorID     string `json:"doctor_id"`
		Date         string `json:"date"` // "2006-01-02"
		Time         string `json:"time"` // display, e.g. "4:00pm"
		StartsAt     string `json:"starts_at,omitempty"`
		LocationType string `json:"location_type"`
		Location     string `json:"location"`
	}

	input := new(BookInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.DoctorID == "" || input.Date == "" || input.Time == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "doctor_id, date and time are required",
		})
	}
	if input.LocationType != "" && input.LocationType != "home" && input.LocationType != "clinic" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "location_type must be 'home' or 'clinic'",
		})
	}

	var provider models.UserProfile
	if err := db.DB.Where("role = ?", models.RoleProvider).
		First(&provider, "id = ?", input.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		// Fall back to the selected day when no precise timestamp came in.
		startsAt, err = time.Parse("2006-01-02", input.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date. Please use the 2006-01-02 format.",
			})
		}
	}

	status := models.StatusPending
	if provider.AutoConfirmBookings {
		status = models.StatusUpcoming
	}

	appointment := models.Appointment{
		SeekerID:     userID,
		ProviderID:   provider.ID,
		DoctorName:   provider.FullName(),
		Specialty:    provider.Specialty,
		Module:       provider.Module,
		Date:         input.Date,
		Time:         input.Time,
		StartsAt:     startsAt,
		LocationType: input.LocationType,
		Location:     input.Location,
		Status:       status,
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		// Nothing local to roll back; the error propagates for UI display.
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CancelAppointment moves an upcoming appointment to cancelled.
func CancelAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.SeekerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only cancel your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment cancelled",
		"appointment": appointment,
	})
}

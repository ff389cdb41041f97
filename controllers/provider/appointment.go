package provider

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
	"github.com/mindhaven/mindhaven-api/utils"
	"gorm.io/gorm/clause"
)

// RequestView is one pending booking on the provider's requests screen,
// with the seeker joined for display.
type RequestView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Avatar       string `json:"avatar"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	LocationType string `json:"location_type"`
	Location     string `json:"location"`
}

func toRequestView(a *models.Appointment, now time.Time) RequestView {
	return RequestView{
		ID:           a.ID,
		Name:         a.Seeker.FullName(),
		Age:          utils.AgeFromDOB(a.Seeker.DOB, now),
		Avatar:       a.Seeker.AvatarURL,
		Type:         a.Specialty,
		Date:         a.Date,
		Time:         a.Time,
		LocationType: a.LocationType,
		Location:     a.Location,
	}
}

// GetRequests returns the provider's pending booking requests.
func GetRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Seeker").
		Where("provider_id = ? AND status = ?", userID, models.StatusPending).
		Order("created_at asc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch requests",
			Error:   err.Error(),
		})
	}

	now := time.Now()
	requests := make([]RequestView, 0, len(appointments))
	for i := range appointments {
		requests = append(requests, toRequestView(&appointments[i], now))
	}

	return c.JSON(fiber.Map{
		"requests": requests,
		"count":    len(requests),
	})
}

// AcceptRequest moves a pending request to upcoming and makes sure a
// conversation with the seeker exists so the provider can reach out.
func AcceptRequest(c *fiber.Ctx) error {
	return transitionRequest(c, models.StatusUpcoming)
}

// RejectRequest declines a pending request. The row stays on record with
// the rejected status.
func RejectRequest(c *fiber.Ctx) error {
	return transitionRequest(c, models.StatusRejected)
}

func transitionRequest(c *fiber.Ctx, next models.AppointmentStatus) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Preload("Seeker").First(&appointment, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, next); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if next == models.StatusUpcoming {
		// Seed the conversation keyed by this appointment so the pair can
		// start chatting; no-op when it already exists.
		conversation := models.Conversation{
			ID:          appointment.ID,
			SeekerID:    appointment.SeekerID,
			ProviderID:  appointment.ProviderID,
			DisplayName: appointment.Seeker.FullName(),
			Avatar:      appointment.Seeker.AvatarURL,
		}
		if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&conversation).Error; err != nil {
			log.Printf("Failed to ensure conversation for appointment %s: %v", appointment.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated successfully",
		"appointment": appointment,
	})
}

// GetUpcomingAppointments returns confirmed appointments for the provider's
// schedule screen, soonest first.
func GetUpcomingAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	limit := 10
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Seeker").
		Where("provider_id = ? AND status = ?", userID, models.StatusUpcoming).
		Order("starts_at asc").
		Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	now := time.Now()
	views := make([]RequestView, 0, len(appointments))
	for i := range appointments {
		views = append(views, toRequestView(&appointments[i], now))
	}

	return c.JSON(fiber.Map{
		"appointments": views,
		"count":        len(views),
	})
}

// GetAppointmentHistory returns completed, cancelled and rejected rows,
// most recent first.
func GetAppointmentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	page := 1
	limit := 10
	if c.Query("page") != "" {
		if parsedPage := c.QueryInt("page"); parsedPage > 0 {
			page = parsedPage
		}
	}
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	offset := (page - 1) * limit

	statuses := []models.AppointmentStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusRejected,
	}
	if status := c.Query("status"); status != "" {
		switch models.AppointmentStatus(status) {
		case models.StatusCompleted, models.StatusCancelled, models.StatusRejected:
			statuses = []models.AppointmentStatus{models.AppointmentStatus(status)}
		}
	}

	var total int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", userID).
		Where("status IN ?", statuses).
		Count(&total)

	var appointments []models.Appointment
	if err := db.DB.Preload("Seeker").
		Where("provider_id = ?", userID).
		Where("status IN ?", statuses).
		Order("updated_at desc").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointment history",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        (total + int64(limit) - 1) / int64(limit),
	})
}

// CancelAppointment moves an upcoming appointment to cancelled.
func CancelAppointment(c *fiber.Ctx) error {
	return closeAppointment(c, models.StatusCancelled)
}

// CompleteAppointment marks an upcoming appointment done.
func CompleteAppointment(c *fiber.Ctx) error {
	return closeAppointment(c, models.StatusCompleted)
}

func closeAppointment(c *fiber.Ctx, next models.AppointmentStatus) error {
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

	if appointment.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, next); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated successfully",
		"appointment": appointment,
	})
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/controllers/seeker"
	"github.com/mindhaven/mindhaven-api/middleware"
	"github.com/mindhaven/mindhaven-api/models"
)

// SetupSeekerRoutes configures all care-seeker related routes
func SetupSeekerRoutes(app *fiber.App) {
	group := app.Group("/care-seeker", middleware.Protected(), middleware.RequireRole(string(models.RoleSeeker)))

	group.Get("/providers", seeker.GetProviders)
	group.Get("/providers/:id", seeker.GetProvider)

	group.Get("/appointments", seeker.GetAppointments)
	group.Post("/appointments", seeker.BookAppointment)
	group.Post("/appointments/:id/cancel", seeker.CancelAppointment)
}

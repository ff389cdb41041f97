package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/controllers/provider"
	"github.com/mindhaven/mindhaven-api/middleware"
	"github.com/mindhaven/mindhaven-api/models"
)

// SetupProviderRoutes configures all care-provider related routes
func SetupProviderRoutes(app *fiber.App) {
	group := app.Group("/care-provider", middleware.Protected(), middleware.RequireRole(string(models.RoleProvider)))

	group.Get("/requests", provider.GetRequests)
	group.Post("/requests/:id/accept", provider.AcceptRequest)
	group.Post("/requests/:id/reject", provider.RejectRequest)

	group.Get("/appointments", provider.GetUpcomingAppointments)
	group.Get("/appointments/history", provider.GetAppointmentHistory)
	group.Post("/appointments/:id/cancel", provider.CancelAppointment)
	group.Post("/appointments/:id/complete", provider.CompleteAppointment)

	group.Get("/dashboard", provider.GetDashboardOverview)

	group.Get("/progress", provider.GetProgress)
	group.Put("/progress", provider.SetProgress)
	group.Delete("/progress", provider.ResetProgress)
}

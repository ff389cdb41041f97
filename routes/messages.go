package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/controllers"
)

// SetupMessageRoutes configures the messaging API
func SetupMessageRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/messages", controllers.GetMessages)
	api.Post("/messages", controllers.SendMessage)

	api.Get("/conversations", controllers.GetConversations)
	api.Post("/conversations", controllers.EnsureConversation)
}

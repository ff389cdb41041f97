package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-api/controllers"
	"github.com/mindhaven/mindhaven-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Get("/user/:id", middleware.Protected(), controllers.GetUserByID)

	// Profile management
	profile := app.Group("/profile", middleware.Protected())
	profile.Patch("/", controllers.UpdateProfile)
	profile.Post("/avatar", controllers.UploadAvatar)
}

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mindhaven/mindhaven-api/cron"
	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/progress"
	"github.com/mindhaven/mindhaven-api/redis"
	"github.com/mindhaven/mindhaven-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	progress.Init()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("MindHaven API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupSeekerRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupMessageRoutes(app)

	log.Fatal(app.Listen(":8000"))
}

package db

import (
	"log"

	"github.com/mindhaven/mindhaven-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.UserProfile{},
		&models.Appointment{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	log.Println("Migrations applied")
}

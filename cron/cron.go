package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
	"github.com/mindhaven/mindhaven-api/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Seeker").Preload("Provider").
		Where("status = ? AND starts_at BETWEEN ? AND ?", models.StatusUpcoming, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %s to %s", appointment.ID, appointment.Seeker.Email)
	}
}

// sendReminderEmail mails both parties about the upcoming visit
func sendReminderEmail(appointment *models.Appointment) error {
	details := fmt.Sprintf(`
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Specialty:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Location:</strong> %s (%s)</li>
		</ul>
	`, appointment.Specialty, appointment.Date, appointment.Time,
		appointment.Location, appointment.LocationType)

	seekerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment with %s in one hour.</p>
		%s
		<p>Best regards,<br>The MindHaven Team</p>
	`, appointment.Seeker.FullName(), appointment.DoctorName, details)
	if err := utils.SendEmail(appointment.Seeker.Email, "Reminder: Upcoming Appointment", seekerBody); err != nil {
		return err
	}

	providerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment with %s in one hour.</p>
		%s
		<p>Best regards,<br>The MindHaven Team</p>
	`, appointment.Provider.FullName(), appointment.Seeker.FullName(), details)
	return utils.SendEmail(appointment.Provider.Email, "Reminder: Upcoming Appointment", providerBody)
}

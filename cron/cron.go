package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/carebook/carebook-api/db"
	"github.com/carebook/carebook-api/models"
	"github.com/carebook/carebook-api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Every morning at 07:00, remind patients about today's appointments
	_, err := c.AddFunc("0 7 * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	today := time.Now().Format(utils.DateLayout)

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor.User").
		Where("status = ? AND date = ?", models.StatusBooked, today).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Appointment with %s today", appointment.Doctor.User.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment today.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s (%s)</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Carebook Team</p>
	`, appointment.Patient.Name, appointment.Doctor.User.Name, appointment.Doctor.Specialization,
		appointment.Date, appointment.Time)

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}

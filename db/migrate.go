package db

import (
	"fmt"
	"log"

	"github.com/carebook/carebook-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.AvailabilityDay{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Partial unique indexes back the booking exclusivity invariants.
	// Only rows with status='booked' count, so a cancelled appointment
	// no longer blocks rebooking of the same slot.
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_slot
			ON appointments (doctor_id, date, time)
			WHERE status = 'booked' AND deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_patient_slot
			ON appointments (patient_id, date, time)
			WHERE status = 'booked' AND deleted_at IS NULL`,
	}
	for _, stmt := range indexes {
		if err := DB.Exec(stmt).Error; err != nil {
			log.Fatal("Failed to create booking indexes: ", err)
		}
	}

	fmt.Println("✅ Migrations applied successfully!")
}

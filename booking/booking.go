package booking

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/carebook/carebook-api/models"
	"github.com/carebook/carebook-api/utils"
)

// Index names created by db.Migrate. A unique violation on one of
// these is how a concurrent double-booking loses.
const (
	doctorSlotIndex  = "idx_appointments_doctor_slot"
	patientSlotIndex = "idx_appointments_patient_slot"
)

const (
	msgSlotTaken     = "Slot already taken"
	msgPatientBooked = "Patient already booked this time"
)

// GetAvailableSlots returns the slot set a doctor offers on date. A
// date the doctor never published yields an empty set, not an error.
func GetAvailableSlots(db *gorm.DB, doctorID uint, date string) (models.TimeSlots, error) {
	var day models.AvailabilityDay
	err := db.Where("doctor_profile_id = ? AND date = ?", doctorID, date).First(&day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TimeSlots{}, nil
		}
		return nil, err
	}
	return day.Slots, nil
}

// SetAvailability replaces the slot set for one date on the calling
// doctor's profile. Replacement is whole-day: previously published
// slots for that date are dropped, never merged.
func SetAvailability(db *gorm.DB, accountID uint, date string, slots []string) (*models.AvailabilityDay, error) {
	if date == "" || len(slots) == 0 {
		return nil, utils.ValidationError("Date and slots are required")
	}
	if !utils.ValidDate(date) {
		return nil, utils.ValidationError("Date must be in YYYY-MM-DD format")
	}
	for _, s := range slots {
		if !utils.ValidSlot(s) {
			return nil, utils.ValidationError("Slots must be in 24h HH:MM format")
		}
	}

	var profile models.DoctorProfile
	if err := db.Where("user_id = ?", accountID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Doctor profile not found")
		}
		return nil, err
	}

	normalized := models.TimeSlots(slots).Normalize()

	var day models.AvailabilityDay
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("doctor_profile_id = ? AND date = ?", profile.ID, date).First(&day)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			day = models.AvailabilityDay{
				DoctorProfileID: profile.ID,
				Date:            date,
				Slots:           normalized,
			}
			return tx.Create(&day).Error
		}
		day.Slots = normalized
		return tx.Save(&day).Error
	})
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// Book creates a booked appointment for patientID with doctorID at
// {date, slot}. The exclusivity invariants are enforced by the partial
// unique indexes, not by the pre-checks alone: when two callers race
// for the same tuple, exactly one insert commits and the loser's
// unique violation is surfaced as the same conflict error the
// pre-check would have produced.
func Book(db *gorm.DB, patientID, doctorID uint, date, slot string) (*models.Appointment, error) {
	if date == "" || slot == "" {
		return nil, utils.ValidationError("Date and time are required")
	}
	if !utils.ValidDate(date) || !utils.ValidSlot(slot) {
		return nil, utils.ValidationError("Date must be YYYY-MM-DD and time must be HH:MM")
	}

	var profile models.DoctorProfile
	if err := db.First(&profile, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Doctor not found")
		}
		return nil, err
	}

	offered, err := GetAvailableSlots(db, profile.ID, date)
	if err != nil {
		return nil, err
	}
	if !offered.Contains(slot) {
		return nil, utils.ValidationError("Slot not offered by this doctor")
	}

	appointment := models.Appointment{
		PatientID: patientID,
		DoctorID:  profile.ID,
		Date:      date,
		Time:      slot,
		Status:    models.StatusBooked,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Pre-checks give the common sequential case a friendly
		// answer; the indexes are what make the guarantee hold
		// under concurrency. A failed lookup is a real error, not
		// an absent conflict.
		var existing models.Appointment
		result := tx.Where("patient_id = ? AND date = ? AND time = ? AND status = ?",
			patientID, date, slot, models.StatusBooked).First(&existing)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return utils.ConflictError(msgPatientBooked)
		}

		result = tx.Where("doctor_id = ? AND date = ? AND time = ? AND status = ?",
			profile.ID, date, slot, models.StatusBooked).First(&existing)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return utils.ConflictError(msgSlotTaken)
		}

		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, asConflict(err)
	}
	return &appointment, nil
}

// Cancel transitions a booked appointment to cancelled. Only the
// owning patient may cancel; cancelled is terminal.
func Cancel(db *gorm.DB, requesterID, appointmentID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := db.First(&appointment, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Appointment not found")
		}
		return nil, err
	}

	if appointment.PatientID != requesterID {
		return nil, utils.AuthorizationError("You can only cancel your own appointments")
	}
	if appointment.Status == models.StatusCancelled {
		return nil, utils.ValidationError("Appointment is already cancelled")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return appointment.UpdateStatus(tx, models.StatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListForPatient returns the patient's appointments with the doctor
// side preloaded for display.
func ListForPatient(db *gorm.DB, patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("date, time").
		Find(&appointments).Error
	return appointments, err
}

// ListForDoctor returns appointments on the calling doctor's own
// profile with the patient side preloaded for display.
func ListForDoctor(db *gorm.DB, doctorAccountID uint) ([]models.Appointment, error) {
	var profile models.DoctorProfile
	if err := db.Where("user_id = ?", doctorAccountID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Doctor profile not found")
		}
		return nil, err
	}

	var appointments []models.Appointment
	err := db.Preload("Patient").
		Where("doctor_id = ?", profile.ID).
		Order("date, time").
		Find(&appointments).Error
	return appointments, err
}

// asConflict rewrites a unique violation from one of the booking
// indexes into the matching domain conflict. SQLSTATE 23505 is
// unique_violation.
func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case doctorSlotIndex:
			return utils.ConflictError(msgSlotTaken)
		case patientSlotIndex:
			return utils.ConflictError(msgPatientBooked)
		}
	}
	return err
}

package models

import (
	"fmt"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	gorm.Model
	PatientID uint              `json:"patient_id"`
	Patient   User              `json:"patient" gorm:"foreignKey:PatientID"`
	DoctorID  uint              `json:"doctor_id"`
	Doctor    DoctorProfile     `json:"doctor" gorm:"foreignKey:DoctorID"`
	Date      string            `json:"date" gorm:"type:varchar(10)"` // "2006-01-02"
	Time      string            `json:"time" gorm:"type:varchar(5)"`  // "15:04"
	Status    AppointmentStatus `json:"status" gorm:"type:varchar(16)"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusBooked
	}
	return nil
}

// CanTransitionTo reports whether the status machine allows moving to
// newStatus. The only legal transition is booked -> cancelled;
// cancelled is terminal.
func (a *Appointment) CanTransitionTo(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusBooked:
		if newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from booked to %s", newStatus)
		}
	case StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %s", a.Status)
	}
	return nil
}

// UpdateStatus validates the transition and persists it. Appointment
// rows are never deleted; cancellation is a status change only.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := a.CanTransitionTo(newStatus); err != nil {
		return err
	}

	a.Status = newStatus
	if err := tx.Save(a).Error; err != nil {
		return err
	}
	return nil
}

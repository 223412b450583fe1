package models

import (
	"gorm.io/gorm"
)

// DoctorProfile is a doctor's directory entry, distinct from the
// underlying account. At most one profile exists per account.
type DoctorProfile struct {
	gorm.Model
	UserID         uint              `json:"user_id" gorm:"uniqueIndex"`
	User           User              `json:"user" gorm:"foreignKey:UserID"`
	Specialization string            `json:"specialization"`
	PhotoURL       string            `json:"photo_url"`
	Availability   []AvailabilityDay `json:"availability" gorm:"foreignKey:DoctorProfileID"`
}

// AvailabilityDay holds the slot set a doctor offers on one calendar
// date. Setting availability replaces the whole day, it never merges.
type AvailabilityDay struct {
	gorm.Model
	DoctorProfileID uint      `json:"doctor_profile_id" gorm:"uniqueIndex:idx_profile_date"`
	Date            string    `json:"date" gorm:"type:varchar(10);uniqueIndex:idx_profile_date"` // "2006-01-02"
	Slots           TimeSlots `json:"slots" gorm:"type:jsonb"`
}

package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/carebook/carebook-api/booking"
	"github.com/carebook/carebook-api/db"
	"github.com/carebook/carebook-api/models"
	"github.com/carebook/carebook-api/utils"
)

// BookAppointment godoc
// @Summary Book an appointment
// @Description Book one of a doctor's offered slots for the calling patient
// @Tags appointments
// @Accept json
// @Produce json
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments [post]
func BookAppointment(c *fiber.Ctx) error {
	type BookingInput struct {
		DoctorID uint   `json:"doctorId"`
		Date     string `json:"date"`
		Time     string `json:"time"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	patientID := c.Locals("userID").(uint)
	appointment, err := booking.Book(db.DB, patientID, input.DoctorID, input.Date, input.Time)
	if err != nil {
		if utils.KindOf(err) == utils.KindInternal {
			log.Printf("Booking failed for patient %d: %v", patientID, err)
		}
		return utils.RenderError(c, err)
	}

	sendBookingConfirmation(appointment)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"appointment": appointment,
	})
}

// CancelAppointment godoc
// @Summary Cancel an appointment
// @Description Cancel a booked appointment owned by the calling patient
// @Tags appointments
// @Produce json
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /appointments/{id}/cancel [put]
func CancelAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment id",
		})
	}

	patientID := c.Locals("userID").(uint)
	appointment, err := booking.Cancel(db.DB, patientID, uint(id))
	if err != nil {
		if utils.KindOf(err) == utils.KindInternal {
			log.Printf("Cancel failed for appointment %d: %v", id, err)
		}
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"appointment": appointment,
	})
}

// GetPatientAppointments returns the calling patient's appointments
// with the doctor's display name attached.
func GetPatientAppointments(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	appointments, err := booking.ListForPatient(db.DB, patientID)
	if err != nil {
		log.Printf("Failed to list appointments for patient %d: %v", patientID, err)
		return utils.RenderError(c, err)
	}

	out := make([]fiber.Map, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, fiber.Map{
			"id":         a.ID,
			"doctorId":   a.DoctorID,
			"doctorName": a.Doctor.User.Name,
			"date":       a.Date,
			"time":       a.Time,
			"status":     a.Status,
		})
	}
	return c.JSON(out)
}

// GetDoctorAppointments returns appointments on the calling doctor's
// profile with the patient's display name attached.
func GetDoctorAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	appointments, err := booking.ListForDoctor(db.DB, userID)
	if err != nil {
		if utils.KindOf(err) == utils.KindInternal {
			log.Printf("Failed to list appointments for doctor account %d: %v", userID, err)
		}
		return utils.RenderError(c, err)
	}

	out := make([]fiber.Map, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, fiber.Map{
			"id":          a.ID,
			"patientId":   a.PatientID,
			"patientName": a.Patient.Name,
			"date":        a.Date,
			"time":        a.Time,
			"status":      a.Status,
		})
	}
	return c.JSON(out)
}

// sendBookingConfirmation mails both parties. Mail failures are logged
// only; the booking already committed.
func sendBookingConfirmation(appointment *models.Appointment) {
	var patient models.User
	if err := db.DB.First(&patient, appointment.PatientID).Error; err != nil {
		log.Printf("Failed to load patient %d for confirmation mail: %v", appointment.PatientID, err)
		return
	}
	var profile models.DoctorProfile
	if err := db.DB.Preload("User").First(&profile, appointment.DoctorID).Error; err != nil {
		log.Printf("Failed to load doctor %d for confirmation mail: %v", appointment.DoctorID, err)
		return
	}

	patientBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s (%s)</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Carebook Team</p>
	`, patient.Name, profile.User.Name, profile.Specialization, appointment.Date, appointment.Time)
	if err := utils.SendEmail(patient.Email, "Appointment Confirmation", patientBody); err != nil {
		log.Printf("Failed to send confirmation email to patient %d: %v", patient.ID, err)
	}

	doctorBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A new appointment has been booked with you.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Carebook Team</p>
	`, profile.User.Name, patient.Name, appointment.Date, appointment.Time)
	if err := utils.SendEmail(profile.User.Email, "New Appointment Booked", doctorBody); err != nil {
		log.Printf("Failed to send confirmation email to doctor %d: %v", profile.ID, err)
	}
}

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

// ListDoctors godoc
// @Summary List all doctors
// @Description Get every doctor profile with availability and account summary
// @Tags doctors
// @Produce json
// @Success 200 {array} fiber.Map
// @Failure 500 {object} utils.ErrorResponse
// @Router /doctors [get]
func ListDoctors(c *fiber.Ctx) error {
	var profiles []models.DoctorProfile
	if err := db.DB.Preload("User").Preload("Availability").Find(&profiles).Error; err != nil {
		log.Printf("Failed to fetch doctors: %v", err)
		return utils.RenderError(c, err)
	}

	doctors := make([]fiber.Map, 0, len(profiles))
	for _, p := range profiles {
		doctors = append(doctors, fiber.Map{
			"id":             p.ID,
			"name":           p.User.Name,
			"email":          p.User.Email,
			"specialization": p.Specialization,
			"photo_url":      p.PhotoURL,
			"availability":   p.Availability,
		})
	}
	return c.JSON(doctors)
}

// SetAvailability godoc
// @Summary Replace a day's slot set
// @Description Replace (not merge) the calling doctor's slots for one date
// @Tags doctors
// @Accept json
// @Produce json
// @Success 200 {object} models.AvailabilityDay
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /doctors/availability [put]
func SetAvailability(c *fiber.Ctx) error {
	type AvailabilityInput struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}

	input := new(AvailabilityInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	userID := c.Locals("userID").(uint)
	day, err := booking.SetAvailability(db.DB, userID, input.Date, input.Slots)
	if err != nil {
		return utils.RenderError(c, err)
	}
	return c.JSON(fiber.Map{
		"availability": day,
	})
}

// GetAvailableSlots godoc
// @Summary Get a doctor's slots for a date
// @Tags doctors
// @Produce json
// @Success 200 {object} fiber.Map
// @Failure 400 {object} utils.ErrorResponse
// @Router /doctors/{id}/slots [get]
func GetAvailableSlots(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor id",
		})
	}
	date := c.Query("date")
	if !utils.ValidDate(date) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Date must be in YYYY-MM-DD format",
		})
	}

	slots, err := booking.GetAvailableSlots(db.DB, uint(doctorID), date)
	if err != nil {
		return utils.RenderError(c, err)
	}
	return c.JSON(fiber.Map{
		"date":  date,
		"slots": slots,
	})
}

// UploadPhoto stores the calling doctor's profile photo on Cloudinary
// and saves the returned URL on the profile.
func UploadPhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.DoctorProfile
	if db.DB.Where("user_id = ?", userID).First(&profile).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor profile not found",
		})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Photo file is required",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to open uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadProfilePhoto(file, fmt.Sprintf("doctor-%d", profile.ID))
	if err != nil {
		log.Printf("Failed to upload photo for doctor %d: %v", profile.ID, err)
		return utils.RenderError(c, err)
	}

	if err := db.DB.Model(&profile).Update("photo_url", url).Error; err != nil {
		log.Printf("Failed to save photo URL for doctor %d: %v", profile.ID, err)
		return utils.RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"photo_url": url,
	})
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carebook/carebook-api/controllers"
	"github.com/carebook/carebook-api/middleware"
	"github.com/carebook/carebook-api/models"
)

// SetupDoctorRoutes configures the public directory and the
// doctor-only availability management routes
func SetupDoctorRoutes(app *fiber.App) {
	doctors := app.Group("/doctors")

	// Public directory
	doctors.Get("/", controllers.ListDoctors)
	doctors.Get("/:id/slots", controllers.GetAvailableSlots)

	// Doctor-only
	doctors.Put("/availability", middleware.Protected(), middleware.RequireRole(models.RoleDoctor), controllers.SetAvailability)
	doctors.Post("/photo", middleware.Protected(), middleware.RequireRole(models.RoleDoctor), controllers.UploadPhoto)
}

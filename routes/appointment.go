package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carebook/carebook-api/controllers"
	"github.com/carebook/carebook-api/middleware"
	"github.com/carebook/carebook-api/models"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())

	appointment.Post("/", middleware.RequireRole(models.RolePatient), controllers.BookAppointment)
	appointment.Get("/patient", middleware.RequireRole(models.RolePatient), controllers.GetPatientAppointments)
	appointment.Get("/doctor", middleware.RequireRole(models.RoleDoctor), controllers.GetDoctorAppointments)
	appointment.Put("/:id/cancel", middleware.RequireRole(models.RolePatient), controllers.CancelAppointment)
}

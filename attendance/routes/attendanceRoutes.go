package routes

import (
	"diocese-attendance-backend/attendance/controllers"
	"diocese-attendance-backend/attendance/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AttendanceRouterInit(
	app *fiber.App,
	db *gorm.DB,
	attendanceRepository repositories.AttendanceRepository,
) {
	attendanceController := &controllers.AttendanceController{
		AttendanceRepo: attendanceRepository,
		DB:             db,
	}

	attendanceRoutes := app.Group("/attendance")
	attendanceRoutes.Get("/records", attendanceController.GetFilteredRecordsController)
}

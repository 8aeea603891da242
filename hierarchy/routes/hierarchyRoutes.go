package routes

import (
	"diocese-attendance-backend/hierarchy/controllers"
	"diocese-attendance-backend/hierarchy/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func HierarchyRouterInit(
	app *fiber.App,
	db *gorm.DB,
	hierarchyRepository repositories.HierarchyRepository,
) {
	hierarchyController := &controllers.HierarchyController{
		HierarchyRepo: hierarchyRepository,
		DB:            db,
	}

	hierarchyRoutes := app.Group("/hierarchy")
	hierarchyRoutes.Get("/archdeaconries", hierarchyController.GetArchdeaconriesController)
	hierarchyRoutes.Get("/parishes", hierarchyController.GetParishesController)
	hierarchyRoutes.Get("/congregations", hierarchyController.GetCongregationsController)
}

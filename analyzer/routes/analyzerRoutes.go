package routes

import (
	"context"

	"diocese-attendance-backend/analyzer/controllers"
	"diocese-attendance-backend/analyzer/repositories"
	"diocese-attendance-backend/analyzer/services"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func AnalyzerRouterInit(
	app *fiber.App,
	db *gorm.DB,
	workbookRepository repositories.WorkbookRepository,
	orchestrator *services.UploadOrchestrator,
	analyticsService *services.AnalyticsService,
	redisClient *redis.Client,
	ctx context.Context,
) {
	analyzerController := &controllers.AnalyzerController{
		Orchestrator: orchestrator,
		Analytics:    analyticsService,
		WorkbookRepo: workbookRepository,
		RedisClient:  redisClient,
		Ctx:          ctx,
		DB:           db,
	}

	analyzerRoutes := app.Group("/analyzer")
	analyzerRoutes.Post("/upload-workbook", analyzerController.UploadWorkbookController)
	analyzerRoutes.Get("/analytics", analyzerController.GetAnalyticsController)
	analyzerRoutes.Get("/uploads", analyzerController.GetUploadsController)
}

package main

import (
	"bytes"
	"context"

	"diocese-attendance-backend/config"
	"diocese-attendance-backend/middleware"
	"diocese-attendance-backend/utils"

	// Repositories
	analyzer_repositories "diocese-attendance-backend/analyzer/repositories"
	attendance_repositories "diocese-attendance-backend/attendance/repositories"
	hierarchy_repositories "diocese-attendance-backend/hierarchy/repositories"

	// Services
	analyzer_services "diocese-attendance-backend/analyzer/services"

	// Routes
	analyzer_routes "diocese-attendance-backend/analyzer/routes"
	attendance_routes "diocese-attendance-backend/attendance/routes"
	hierarchy_routes "diocese-attendance-backend/hierarchy/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Fatal("Error loading .env file", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // workbook uploads
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	uploadPath := config.GetEnvOrDefault("WORKBOOK_UPLOAD_PATH", "./uploads/workbooks")
	fileStorage := utils.NewLocalFileStorage(uploadPath)

	// Repositories
	hierarchyRepo := hierarchy_repositories.NewHierarchyRepository(db)
	attendanceRepo := attendance_repositories.NewAttendanceRepository(db)
	workbookRepo := analyzer_repositories.NewWorkbookRepository(db)

	// Ingestion pipeline: one transaction per uploaded file
	transactor := analyzer_repositories.NewIngestionTransactor(db, workbookRepo, hierarchyRepo, attendanceRepo)
	orchestrator := analyzer_services.NewUploadOrchestrator(transactor, func(fileName string, data []byte) (string, error) {
		return fileStorage.UploadFileFromReader(bytes.NewReader(data), fileName)
	})

	analyticsService := analyzer_services.NewAnalyticsService(attendanceRepo)

	// Routes
	hierarchy_routes.HierarchyRouterInit(app, db, hierarchyRepo)
	attendance_routes.AttendanceRouterInit(app, db, attendanceRepo)
	analyzer_routes.AnalyzerRouterInit(app, db, workbookRepo, orchestrator, analyticsService, redisClient, ctx)

	// Background cleanup tasks
	go utils.RunScheduledCleanup(redisClient)

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}

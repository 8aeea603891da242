package controllers

import (
	"context"

	"diocese-attendance-backend/analyzer/repositories"
	"diocese-attendance-backend/analyzer/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AnalyzerController struct {
	Orchestrator *services.UploadOrchestrator
	Analytics    *services.AnalyticsService
	WorkbookRepo repositories.WorkbookRepository
	RedisClient  *redis.Client
	Ctx          context.Context
	DB           *gorm.DB
}

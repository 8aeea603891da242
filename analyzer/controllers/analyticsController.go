package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"diocese-attendance-backend/analyzer/services"
	"diocese-attendance-backend/config"
	"diocese-attendance-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const analyticsCacheTTL = 10 * time.Minute

// GetAnalyticsController serves the aggregated analytics for an inclusive
// date range and optional hierarchy filter. 404 when nothing matches, 500
// with a generic message on unexpected failure.
func (ac *AnalyzerController) GetAnalyticsController(c *fiber.Ctx) error {
	cleanQueryParam := func(param string) string {
		param = strings.TrimSpace(param)
		if param == "" || strings.ToLower(param) == "null" {
			return ""
		}
		return param
	}

	filters := make(map[string]string)
	for _, key := range []string{"start_date", "end_date", "archdeaconry", "parish", "congregation"} {
		if value := cleanQueryParam(c.Query(key)); value != "" {
			filters[key] = value
		}
	}

	cacheKey := utils.GenerateQueryHash("analytics", filters)
	if ac.RedisClient != nil {
		if cached, err := ac.RedisClient.Get(ac.Ctx, cacheKey).Result(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).SendString(cached)
		}
	}

	filter := services.AnalyticsFilter{
		ArchdeaconryID: utils.ValidUUIDOrEmpty(filters["archdeaconry"]),
		ParishID:       utils.ValidUUIDOrEmpty(filters["parish"]),
		CongregationID: utils.ValidUUIDOrEmpty(filters["congregation"]),
	}
	if startDate := filters["start_date"]; startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid start_date, expected YYYY-MM-DD"})
		}
		filter.StartDate = parsed
	}
	if endDate := filters["end_date"]; endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid end_date, expected YYYY-MM-DD"})
		}
		filter.EndDate = parsed
	}

	response, err := ac.Analytics.GetAnalytics(filter)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No attendance records found for the given filters"})
		}
		config.Logger.Error("Analytics query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to compute analytics"})
	}

	if ac.RedisClient != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := ac.RedisClient.Set(ac.Ctx, cacheKey, payload, analyticsCacheTTL).Err(); err != nil {
				config.Logger.Warn("Failed to cache analytics response", zap.Error(err))
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

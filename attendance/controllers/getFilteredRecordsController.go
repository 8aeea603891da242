package controllers

import (
	"strings"

	"diocese-attendance-backend/attendance/repositories"
	"diocese-attendance-backend/config"
	"diocese-attendance-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AttendanceController struct {
	AttendanceRepo repositories.AttendanceRepository
	DB             *gorm.DB
}

// GetFilteredRecordsController lists attendance records filtered by hierarchy
// id and date range, paginated by page/pageSize.
func (ac *AttendanceController) GetFilteredRecordsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	cleanQueryParam := func(param string) string {
		param = strings.TrimSpace(param)
		if param == "" || strings.ToLower(param) == "null" {
			return ""
		}
		return param
	}

	filters := make(map[string]string)
	for _, key := range []string{"archdeaconry", "parish", "congregation", "start_date", "end_date", "active"} {
		if value := cleanQueryParam(c.Query(key)); value != "" {
			filters[key] = value
		}
	}

	records, total, err := ac.AttendanceRepo.GetFilteredRecords(filters, params.PageSize, params.Offset())
	if err != nil {
		config.Logger.Error("Failed to list attendance records", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve attendance records"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(records, total, params))
}

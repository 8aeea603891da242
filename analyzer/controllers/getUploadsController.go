package controllers

import (
	"diocese-attendance-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetUploadsController lists the upload history: every tracked workbook with
// its processed state and error message, newest sheet date first.
func (ac *AnalyzerController) GetUploadsController(c *fiber.Ctx) error {
	uploads, err := ac.WorkbookRepo.GetAllUploads()
	if err != nil {
		config.Logger.Error("Failed to list workbook uploads", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve uploads"})
	}
	return c.Status(fiber.StatusOK).JSON(uploads)
}

package controllers

import (
	"errors"
	"io"

	"diocese-attendance-backend/analyzer/services"
	"diocese-attendance-backend/config"
	"diocese-attendance-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadWorkbookController handles the bulk upload of attendance workbooks.
// It accepts a multipart list of .xlsx files under the 'files' field and
// answers 200 with one summary per file; per-file errors are reported in the
// payload, never as a failure status. Only request-level validation (bad
// extension, empty list) rejects the whole request.
func (ac *AnalyzerController) UploadWorkbookController(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to parse multipart form"})
	}

	fileHeaders := form.File["files"]
	files := make([]services.UploadedFile, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		src, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to read uploaded file: " + fileHeader.Filename})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to read uploaded file: " + fileHeader.Filename})
		}
		files = append(files, services.UploadedFile{Name: fileHeader.Filename, Data: data})
	}

	summaries, err := ac.Orchestrator.ProcessUploads(files)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": validationErr.Message})
		}
		config.Logger.Error("Workbook upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to process uploaded workbooks"})
	}

	// Ingestion changed the dataset; cached analytics answers are stale.
	if ac.RedisClient != nil {
		utils.InvalidateCacheAsync(ac.RedisClient, "analytics")
	}

	return c.Status(fiber.StatusOK).JSON(summaries)
}

package controllers

import (
	"diocese-attendance-backend/config"
	"diocese-attendance-backend/hierarchy/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HierarchyController struct {
	HierarchyRepo repositories.HierarchyRepository
	DB            *gorm.DB
}

// GetArchdeaconriesController returns all archdeaconries.
func (hc *HierarchyController) GetArchdeaconriesController(c *fiber.Ctx) error {
	archdeaconries, err := hc.HierarchyRepo.GetAllArchdeaconries()
	if err != nil {
		config.Logger.Error("Failed to list archdeaconries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve archdeaconries"})
	}
	return c.Status(fiber.StatusOK).JSON(archdeaconries)
}

// GetParishesController returns parishes, optionally filtered by archdeaconry id.
func (hc *HierarchyController) GetParishesController(c *fiber.Ctx) error {
	archdeaconryID := c.Query("archdeaconry")
	parishes, err := hc.HierarchyRepo.GetParishes(archdeaconryID)
	if err != nil {
		config.Logger.Error("Failed to list parishes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve parishes"})
	}
	return c.Status(fiber.StatusOK).JSON(parishes)
}

// GetCongregationsController returns congregations, optionally filtered by parish id.
func (hc *HierarchyController) GetCongregationsController(c *fiber.Ctx) error {
	parishID := c.Query("parish")
	congregations, err := hc.HierarchyRepo.GetCongregations(parishID)
	if err != nil {
		config.Logger.Error("Failed to list congregations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve congregations"})
	}
	return c.Status(fiber.StatusOK).JSON(congregations)
}

package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamnest/models"
	"teamnest/utils"
)

type MaterialController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewMaterialController(db *gorm.DB, logger *log.Logger) *MaterialController {
	return &MaterialController{DB: db, Logger: logger}
}

type UploadMaterialRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	File        string `json:"file" validate:"required,url"`
	Type        string `json:"type" validate:"required,max=50"`
}

// UploadMaterial publishes a study material to the team. Runs behind
// RequireTeamLeader.
func (mc *MaterialController) UploadMaterial(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	team := c.Locals("team").(*models.Team)

	var req UploadMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	material := models.Material{
		OwnerID:     user.ID,
		TeamID:      team.ID,
		Name:        req.Name,
		Description: req.Description,
		File:        req.File,
		Type:        req.Type,
	}

	if err := mc.DB.Create(&material).Error; err != nil {
		mc.Logger.Printf("failed to upload material for team %d: %v", team.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload material")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, material, "Material uploaded successfully")
}

// DeleteMaterial removes a material and its feedback. Only the leader of
// the owning team may delete.
func (mc *MaterialController) DeleteMaterial(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	materialID := utils.ParseUint(c.Query("materialId"))

	var material models.Material
	if err := mc.DB.First(&material, materialID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Material"))
	}

	var team models.Team
	if err := mc.DB.First(&team, material.TeamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}
	if team.LeaderID != user.ID {
		return utils.HandleError(c, utils.NewAuthorizationError("Only the team leader can delete materials"))
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("for_material_id = ?", material.ID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Delete(&material).Error
	})
	if err != nil {
		mc.Logger.Printf("failed to delete material %d: %v", material.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete material")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil, "Material deleted successfully")
}

// GetAllMaterials lists the team's materials, newest first.
func (mc *MaterialController) GetAllMaterials(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	if _, err := teamAccess(mc.DB, teamID, user); err != nil {
		return utils.HandleError(c, err)
	}

	var materials []models.Material
	if err := mc.DB.Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&materials).Error; err != nil {
		mc.Logger.Printf("failed to list materials for team %d: %v", teamID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch materials")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, materials, "Materials fetched successfully")
}

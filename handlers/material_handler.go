package handlers

import (
	"errors"

	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MaterialRequest struct {
	Title       string  `json:"title" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	URL         string  `json:"url" validate:"required"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration" validate:"gte=0"`
}

type AddMaterialsRequest struct {
	Materials []MaterialRequest `json:"materials" validate:"required,min=1,dive"`
}

func AddMaterials(c *fiber.Ctx) error {
	var course models.Course
	if status, msg := loadOwnedCourse(c, &course); status != 0 {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}

	var req AddMaterialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	for _, m := range req.Materials {
		if !models.ValidMaterialType(m.Type) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Material type must be one of: video, document, link, quiz",
			})
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range req.Materials {
			row := models.Material{
				CourseID:    course.ID,
				Title:       m.Title,
				Type:        m.Type,
				URL:         m.URL,
				Description: m.Description,
				Duration:    m.Duration,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to add materials"})
	}

	var materials []models.Material
	database.DB.Where("course_id = ?", course.ID).Find(&materials)

	return c.JSON(fiber.Map{
		"message":   "Materials added successfully",
		"materials": materials,
	})
}

func GetMaterials(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var materials []models.Material
	database.DB.Where("course_id = ?", course.ID).Find(&materials)
	return c.JSON(materials)
}

type UpdateMaterialRequest struct {
	Title       *string  `json:"title"`
	Type        *string  `json:"type"`
	URL         *string  `json:"url"`
	Description *string  `json:"description"`
	Duration    *float64 `json:"duration" validate:"omitempty,gte=0"`
}

// Materials are addressed by their own id, not by array position, so a
// concurrent delete cannot redirect an update to a different row.
func UpdateMaterial(c *fiber.Ctx) error {
	var course models.Course
	if status, msg := loadOwnedCourse(c, &course); status != 0 {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}

	var material models.Material
	err := database.DB.Where("id = ? AND course_id = ?", c.Params("materialId"), course.ID).
		First(&material).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Material not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	var req UpdateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if req.Type != nil {
		if !models.ValidMaterialType(*req.Type) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Material type must be one of: video, document, link, quiz",
			})
		}
		material.Type = *req.Type
	}
	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.URL != nil {
		material.URL = *req.URL
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.Duration != nil {
		material.Duration = *req.Duration
	}

	if err := database.DB.Save(&material).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update material"})
	}

	return c.JSON(fiber.Map{
		"message":  "Material updated successfully",
		"material": material,
	})
}

func DeleteMaterial(c *fiber.Ctx) error {
	var course models.Course
	if status, msg := loadOwnedCourse(c, &course); status != 0 {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}

	result := database.DB.Where("id = ? AND course_id = ?", c.Params("materialId"), course.ID).
		Delete(&models.Material{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete material"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Material not found"})
	}

	return c.JSON(fiber.Map{"message": "Material deleted successfully"})
}

package handlers

import (
	"errors"

	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
	"github.com/edumart/course_market/services"
	"github.com/edumart/course_market/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CreateCourseRequest struct {
	Title            string   `json:"title" validate:"required,min=3"`
	Description      string   `json:"description" validate:"required"`
	Subject          string   `json:"subject" validate:"required"`
	Level            string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price            float64  `json:"price" validate:"gte=0"`
	Duration         float64  `json:"duration" validate:"gte=0"`
	MaxStudents      int      `json:"max_students" validate:"omitempty,gt=0"`
	Requirements     []string `json:"requirements"`
	LearningOutcomes []string `json:"learning_outcomes"`
	Tags             []string `json:"tags"`
	Thumbnail        string   `json:"thumbnail"`
}

func CreateCourse(c *fiber.Ctx) error {
	teacherID := requestUserID(c)

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil || teacher.Role != models.RoleTeacher {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid teacher ID"})
	}

	level := req.Level
	if level == "" {
		level = "beginner"
	}
	maxStudents := req.MaxStudents
	if maxStudents == 0 {
		maxStudents = 50
	}

	course := models.Course{
		Title:            req.Title,
		Description:      req.Description,
		TeacherID:        teacherID,
		Subject:          req.Subject,
		Level:            level,
		Price:            req.Price,
		Duration:         req.Duration,
		Thumbnail:        req.Thumbnail,
		MaxStudents:      maxStudents,
		Requirements:     pq.StringArray(req.Requirements),
		LearningOutcomes: pq.StringArray(req.LearningOutcomes),
		Tags:             pq.StringArray(req.Tags),
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"course":  course,
	})
}

func ListCourses(c *fiber.Ctx) error {
	params := ParseCourseSearchParams(c)
	page := utils.ParsePagination(c)

	query := params.Apply(database.DB.Model(&models.Course{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	var courses []models.Course
	if err := params.ApplySort(query).
		Preload("Teacher").
		Offset(page.Offset).Limit(page.Limit).
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	return c.JSON(fiber.Map{
		"courses":    courses,
		"pagination": page.Envelope(total),
	})
}

func GetCourse(c *fiber.Ctx) error {
	var course models.Course
	err := database.DB.
		Preload("Teacher").
		Preload("Materials").
		Preload("Syllabus").
		Preload("EnrolledStudents.Student").
		Preload("Reviews.Student").
		First(&course, "id = ?", c.Params("id")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}
	return c.JSON(course)
}

type SyllabusItemRequest struct {
	Week        int    `json:"week" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateCourseRequest struct {
	Title            *string                `json:"title"`
	Description      *string                `json:"description"`
	Subject          *string                `json:"subject"`
	Level            *string                `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price            *float64               `json:"price" validate:"omitempty,gte=0"`
	Duration         *float64               `json:"duration" validate:"omitempty,gte=0"`
	MaxStudents      *int                   `json:"max_students" validate:"omitempty,gt=0"`
	Requirements     *[]string              `json:"requirements"`
	LearningOutcomes *[]string              `json:"learning_outcomes"`
	Tags             *[]string              `json:"tags"`
	Thumbnail        *string                `json:"thumbnail"`
	Syllabus         *[]SyllabusItemRequest `json:"syllabus" validate:"omitempty,dive"`
}

// loadOwnedCourse fetches the course and enforces that the authenticated
// teacher owns it. The returned status is 0 on success.
func loadOwnedCourse(c *fiber.Ctx, course *models.Course) (int, string) {
	if err := database.DB.First(course, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.StatusNotFound, "Course not found"
	}
	if course.TeacherID != requestUserID(c) {
		return fiber.StatusForbidden, "Not authorized to modify this course"
	}
	return 0, ""
}

func UpdateCourse(c *fiber.Ctx) error {
	var course models.Course
	if status, msg := loadOwnedCourse(c, &course); status != 0 {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Subject != nil {
		course.Subject = *req.Subject
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}
	if req.Requirements != nil {
		course.Requirements = *req.Requirements
	}
	if req.LearningOutcomes != nil {
		course.LearningOutcomes = *req.LearningOutcomes
	}
	if req.Tags != nil {
		course.Tags = *req.Tags
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		if req.Syllabus != nil {
			if err := tx.Where("course_id = ?", course.ID).Delete(&models.SyllabusItem{}).Error; err != nil {
				return err
			}
			for _, item := range *req.Syllabus {
				row := models.SyllabusItem{
					CourseID:    course.ID,
					Week:        item.Week,
					Title:       item.Title,
					Description: item.Description,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update course"})
	}

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"course":  course,
	})
}

type PublishRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}

// No minimum-content gate: a course with zero materials can be published.
func PublishCourse(c *fiber.Ctx) error {
	var course models.Course
	if status, msg := loadOwnedCourse(c, &course); status != 0 {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}

	var req PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	course.IsPublished = *req.IsPublished
	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update course"})
	}

	verb := "unpublished"
	if course.IsPublished {
		verb = "published"
	}
	return c.JSON(fiber.Map{
		"message": "Course " + verb + " successfully",
		"course":  course,
	})
}

func DeleteCourse(c *fiber.Ctx) error {
	var course models.Course
	if status, msg := loadOwnedCourse(c, &course); status != 0 {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}

	var enrolled int64
	database.DB.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrolled)
	if enrolled > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot delete course with enrolled students. Please contact support.",
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.SyllabusItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.CourseReview{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete course"})
	}

	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

type ProgressRequest struct {
	Progress *int `json:"progress" validate:"required"`
}

func UpdateCourseProgress(c *fiber.Ctx) error {
	studentID := requestUserID(c)

	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var req ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	entry, err := services.UpdateProgress(database.DB, course.ID, studentID, *req.Progress)
	if err != nil {
		if errors.Is(err, services.ErrNotEnrolled) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Not enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update progress"})
	}

	if entry.Completed {
		go services.CheckAndGenerateCertificate(course.ID, studentID)
	}

	return c.JSON(fiber.Map{
		"message":    "Progress updated successfully",
		"enrollment": entry,
	})
}

func GetTeacherCourses(c *fiber.Ctx) error {
	var courses []models.Course
	database.DB.Preload("Teacher").
		Where("teacher_id = ?", c.Params("teacherId")).
		Find(&courses)
	return c.JSON(courses)
}

func GetStudentCourses(c *fiber.Ctx) error {
	var courses []models.Course
	database.DB.Preload("Teacher").
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", c.Params("studentId")).
		Find(&courses)
	return c.JSON(courses)
}

package handlers

import (
	"errors"

	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
	"github.com/edumart/course_market/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// AddCourseReview adds or replaces the student's review of a course and
// recomputes the course aggregate in the same transaction.
func AddCourseReview(c *fiber.Ctx) error {
	studentID := requestUserID(c)

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var review models.CourseReview
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		review, err = services.AddOrReplaceCourseReview(tx, &course, studentID, req.Rating, req.Comment)
		return err
	})
	if err != nil {
		if errors.Is(err, services.ErrNotEnrolled) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Must be enrolled to review this course"})
		}
		if errors.Is(err, services.ErrRatingOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Rating must be between 1 and 5"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to add review"})
	}

	return c.JSON(fiber.Map{
		"message": "Review added successfully",
		"review":  review,
		"rating":  course.Rating,
	})
}

func GetTeacherReviews(c *fiber.Ctx) error {
	var teacher models.User
	err := database.DB.
		Preload("TeacherReviews.Student").
		Preload("TeacherReviews.Course").
		First(&teacher, "id = ?", c.Params("teacherId")).Error
	if err != nil || teacher.Role != models.RoleTeacher {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Teacher not found"})
	}

	return c.JSON(fiber.Map{
		"rating":  teacher.TeacherRating,
		"reviews": teacher.TeacherReviews,
	})
}

type TeacherReviewRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// AddTeacherReview verifies the course belongs to the teacher and that the
// reviewing student took it, then delegates the replace-and-recompute to the
// rating aggregator.
func AddTeacherReview(c *fiber.Ctx) error {
	studentID := requestUserID(c)

	var req TeacherReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ?", c.Params("teacherId")).Error; err != nil || teacher.Role != models.RoleTeacher {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Teacher not found"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", req.CourseID).Error; err != nil || course.TeacherID != teacher.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found for this teacher"})
	}

	var enrolled int64
	database.DB.Model(&models.Enrollment{}).
		Where("course_id = ? AND student_id = ?", course.ID, studentID).
		Count(&enrolled)
	if enrolled == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Must be enrolled in the course to review this teacher"})
	}

	var review models.TeacherReview
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		review, err = services.AddOrReplaceTeacherReview(tx, teacher.ID, studentID, course.ID, req.Rating, req.Comment)
		return err
	})
	if err != nil {
		if errors.Is(err, services.ErrRatingOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Rating must be between 1 and 5"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to add review"})
	}

	return c.JSON(fiber.Map{
		"message": "Review added successfully",
		"review":  review,
	})
}

func GetTeacherStats(c *fiber.Ctx) error {
	var teacher models.User
	if err := database.DB.First(&teacher, "id = ?", c.Params("teacherId")).Error; err != nil || teacher.Role != models.RoleTeacher {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Teacher not found"})
	}

	var activeCourses int64
	database.DB.Model(&models.Course{}).
		Where("teacher_id = ? AND is_active = ?", teacher.ID, true).
		Count(&activeCourses)

	var totalStudents int64
	database.DB.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.teacher_id = ? AND courses.is_active = ?", teacher.ID, true).
		Distinct("enrollments.student_id").
		Count(&totalStudents)

	return c.JSON(fiber.Map{
		"teacher": fiber.Map{
			"id":            teacher.ID,
			"name":          teacher.Name,
			"email":         teacher.Email,
			"profile_image": teacher.ProfileImage,
			"bio":           teacher.Bio,
			"subjects":      teacher.Subjects,
			"experience":    teacher.Experience,
		},
		"stats": fiber.Map{
			"totalStudents": totalStudents,
			"activeCourses": activeCourses,
			"averageRating": teacher.TeacherRating.Average,
			"reviewCount":   teacher.TeacherRating.Count,
		},
	})
}

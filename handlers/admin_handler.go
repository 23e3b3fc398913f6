package handlers

import (
	"errors"

	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
	"github.com/edumart/course_market/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetPlatformStats(c *fiber.Ctx) error {
	count := func(model interface{}, query string, args ...interface{}) int64 {
		var n int64
		db := database.DB.Model(model)
		if query != "" {
			db = db.Where(query, args...)
		}
		db.Count(&n)
		return n
	}

	var totalRevenue float64
	database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&totalRevenue)

	return c.JSON(fiber.Map{
		"totalUsers":       count(&models.User{}, ""),
		"totalTeachers":    count(&models.User{}, "role = ?", models.RoleTeacher),
		"totalStudents":    count(&models.User{}, "role = ?", models.RoleStudent),
		"totalCourses":     count(&models.Course{}, ""),
		"publishedCourses": count(&models.Course{}, "is_published = ?", true),
		"totalOrders":      count(&models.Order{}, ""),
		"completedOrders":  count(&models.Order{}, "status = ?", models.OrderCompleted),
		"totalRevenue":     totalRevenue,
	})
}

func AdminListUsers(c *fiber.Ctx) error {
	page := utils.ParsePagination(c)

	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if isActive := c.Query("isActive"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Order("created_at desc").Offset(page.Offset).Limit(page.Limit).Find(&users)

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": page.Envelope(total),
	})
}

type UserStatusRequest struct {
	IsActive   *bool `json:"is_active"`
	IsVerified *bool `json:"is_verified"`
}

func AdminUpdateUserStatus(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	var req UserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update user status"})
	}

	return c.JSON(fiber.Map{
		"message": "User status updated successfully",
		"user":    user,
	})
}

func AdminListCourses(c *fiber.Ctx) error {
	page := utils.ParsePagination(c)

	query := database.DB.Model(&models.Course{})
	if isPublished := c.Query("isPublished"); isPublished != "" {
		query = query.Where("is_published = ?", isPublished == "true")
	}
	if isActive := c.Query("isActive"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var total int64
	query.Count(&total)

	var courses []models.Course
	query.Preload("Teacher").Order("created_at desc").Offset(page.Offset).Limit(page.Limit).Find(&courses)

	return c.JSON(fiber.Map{
		"courses":    courses,
		"pagination": page.Envelope(total),
	})
}

type CourseStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func AdminUpdateCourseStatus(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var req CourseStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	course.IsActive = *req.IsActive
	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update course status"})
	}

	return c.JSON(fiber.Map{
		"message": "Course status updated successfully",
		"course":  course,
	})
}

var (
	errSelfDeletion       = errors.New("cannot delete your own account")
	errPublishedCourses   = errors.New("teacher has published courses")
	errActiveOrders       = errors.New("user has active orders")
	errDeleteUserNotFound = errors.New("user not found")
)

// AdminDeleteUser removes a user after the deletion guards pass: no
// self-deletion, no published courses, no pending or completed orders on
// either side. A teacher's unpublished courses are cascaded away in the same
// transaction.
func AdminDeleteUser(c *fiber.Ctx) error {
	actorID := requestUserID(c)
	targetID := c.Params("id")

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", targetID).Error; err != nil {
			return errDeleteUserNotFound
		}

		if user.ID == actorID {
			return errSelfDeletion
		}

		if user.Role == models.RoleTeacher {
			var published int64
			if err := tx.Model(&models.Course{}).
				Where("teacher_id = ? AND is_published = ?", user.ID, true).
				Count(&published).Error; err != nil {
				return err
			}
			if published > 0 {
				return errPublishedCourses
			}
		}

		var activeOrders int64
		if err := tx.Model(&models.Order{}).
			Where("(student_id = ? OR teacher_id = ?) AND status IN ?",
				user.ID, user.ID, []string{models.OrderPending, models.OrderCompleted}).
			Count(&activeOrders).Error; err != nil {
			return err
		}
		if activeOrders > 0 {
			return errActiveOrders
		}

		if user.Role == models.RoleTeacher {
			var courseIDs []string
			if err := tx.Model(&models.Course{}).
				Where("teacher_id = ? AND is_published = ?", user.ID, false).
				Pluck("id", &courseIDs).Error; err != nil {
				return err
			}
			if len(courseIDs) > 0 {
				for _, child := range []interface{}{
					&models.Material{}, &models.SyllabusItem{}, &models.Enrollment{}, &models.CourseReview{},
				} {
					if err := tx.Where("course_id IN ?", courseIDs).Delete(child).Error; err != nil {
						return err
					}
				}
				if err := tx.Where("id IN ?", courseIDs).Delete(&models.Course{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("teacher_id = ?", user.ID).Delete(&models.TeacherReview{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errDeleteUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		case errors.Is(err, errSelfDeletion):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot delete your own account"})
		case errors.Is(err, errPublishedCourses):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot delete teacher with published courses. Please unpublish or transfer courses first."})
		case errors.Is(err, errActiveOrders):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot delete user with active orders. Please contact support."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
		"deletedUser": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

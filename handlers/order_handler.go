package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
	"github.com/edumart/course_market/notifications"
	"github.com/edumart/course_market/services"
	"github.com/edumart/course_market/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateOrderRequest struct {
	CourseID      string `json:"course_id" validate:"required,uuid"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=stripe paypal bank_transfer cash"`
}

func CreateOrder(c *fiber.Ctx) error {
	studentID := requestUserID(c)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil || student.Role != models.RoleStudent {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid student ID"})
	}

	var course models.Course
	if err := database.DB.Preload("EnrolledStudents").First(&course, "id = ?", req.CourseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}
	if !course.IsPublished {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Course is not available for purchase"})
	}

	if models.FindEnrollment(course.EnrolledStudents, studentID) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Already enrolled in this course"})
	}
	if len(course.EnrolledStudents) >= course.MaxStudents {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Course is full"})
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	// Amount is fixed at this instant; later price edits do not follow.
	order := models.Order{
		StudentID:     studentID,
		CourseID:      course.ID,
		TeacherID:     course.TeacherID,
		Amount:        course.Price,
		PaymentMethod: paymentMethod,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

type CompleteOrderRequest struct {
	TransactionID string `json:"transaction_id"`
}

// canActOnOrder reports whether the requester may mutate the order: the
// student who placed it, or an admin.
func canActOnOrder(userID uuid.UUID, role string, order models.Order) bool {
	return role == models.RoleAdmin || order.StudentID == userID
}

// CompleteOrder marks the order paid and inserts the student into the course
// roster as one transaction. The course row is locked FOR UPDATE so two
// concurrent completions cannot both pass the capacity check.
func CompleteOrder(c *fiber.Ctx) error {
	var req CompleteOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	if !canActOnOrder(requestUserID(c), requestUserRole(c), order) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You do not have permission to modify this order"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&course, "id = ?", order.CourseID).Error; err != nil {
			return err
		}
		if err := tx.First(&order, "id = ?", order.ID).Error; err != nil {
			return err
		}

		if err := order.Complete(req.TransactionID); err != nil {
			return err
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return services.Enroll(tx, &course, order.StudentID)
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyCompleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Order is already completed"})
		case errors.Is(err, models.ErrOrderTerminal):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Order cannot be completed from its current status"})
		case errors.Is(err, services.ErrCourseFull):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Course is full"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to complete order"})
	}

	go sendEnrollmentEmail(order)

	return c.JSON(fiber.Map{
		"message": "Order completed successfully",
		"order":   order,
	})
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

func CancelOrder(c *fiber.Ctx) error {
	var req CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	if !canActOnOrder(requestUserID(c), requestUserRole(c), order) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You do not have permission to modify this order"})
	}

	if err := order.Cancel(req.Reason); err != nil {
		if errors.Is(err, models.ErrCannotCancelCompleted) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot cancel completed order"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Order cannot be cancelled from its current status"})
	}
	if err := database.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to cancel order"})
	}

	return c.JSON(fiber.Map{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

type RefundOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RefundOrder reverses a completed purchase: the status flip and the roster
// removal commit together or not at all.
func RefundOrder(c *fiber.Ctx) error {
	var req RefundOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	if !canActOnOrder(requestUserID(c), requestUserRole(c), order) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You do not have permission to modify this order"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&course, "id = ?", order.CourseID).Error; err != nil {
			return err
		}
		if err := tx.First(&order, "id = ?", order.ID).Error; err != nil {
			return err
		}

		if err := order.Refund(req.Reason, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return services.Unenroll(tx, order.CourseID, order.StudentID)
	})
	if err != nil {
		if errors.Is(err, models.ErrOnlyCompletedRefundable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Can only refund completed orders"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to refund order"})
	}

	go sendRefundEmail(order)

	return c.JSON(fiber.Map{
		"message": "Order refunded successfully",
		"order":   order,
	})
}

func GetOrder(c *fiber.Ctx) error {
	var order models.Order
	err := database.DB.
		Preload("Student").
		Preload("Teacher").
		Preload("Course").
		First(&order, "id = ?", c.Params("id")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	return c.JSON(order)
}

func GetStudentOrders(c *fiber.Ctx) error {
	var orders []models.Order
	database.DB.
		Preload("Teacher").
		Preload("Course").
		Where("student_id = ?", c.Params("studentId")).
		Order("created_at desc").
		Find(&orders)
	return c.JSON(orders)
}

func GetTeacherOrders(c *fiber.Ctx) error {
	var orders []models.Order
	database.DB.
		Preload("Student").
		Preload("Course").
		Where("teacher_id = ?", c.Params("teacherId")).
		Order("created_at desc").
		Find(&orders)
	return c.JSON(orders)
}

func ListOrders(c *fiber.Ctx) error {
	page := utils.ParsePagination(c)

	query := database.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.
		Preload("Student").
		Preload("Teacher").
		Preload("Course").
		Order("created_at desc").
		Offset(page.Offset).Limit(page.Limit).
		Find(&orders)

	return c.JSON(fiber.Map{
		"orders":     orders,
		"pagination": page.Envelope(total),
	})
}

func GetOrderStats(c *fiber.Ctx) error {
	countByStatus := func(status string) int64 {
		var n int64
		database.DB.Model(&models.Order{}).Where("status = ?", status).Count(&n)
		return n
	}

	var totalOrders int64
	database.DB.Model(&models.Order{}).Count(&totalOrders)

	var totalRevenue float64
	database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&totalRevenue)

	return c.JSON(fiber.Map{
		"totalOrders":     totalOrders,
		"completedOrders": countByStatus(models.OrderCompleted),
		"pendingOrders":   countByStatus(models.OrderPending),
		"cancelledOrders": countByStatus(models.OrderCancelled),
		"refundedOrders":  countByStatus(models.OrderRefunded),
		"totalRevenue":    totalRevenue,
	})
}

func sendEnrollmentEmail(order models.Order) {
	var full models.Order
	if err := database.DB.Preload("Student").Preload("Course").First(&full, "id = ?", order.ID).Error; err != nil {
		return
	}
	notifications.SendEmail(
		full.Student.Name,
		full.Student.Email,
		"Enrollment Confirmed",
		fmt.Sprintf("<h1>You're in!</h1><p>Your enrollment in <b>%s</b> is confirmed. Happy learning!</p>", full.Course.Title),
	)
}

func sendRefundEmail(order models.Order) {
	var full models.Order
	if err := database.DB.Preload("Student").Preload("Course").First(&full, "id = ?", order.ID).Error; err != nil {
		return
	}
	notifications.SendEmail(
		full.Student.Name,
		full.Student.Email,
		"Your Refund Has Been Processed",
		fmt.Sprintf("<h1>Refund Processed</h1><p>Your order for <b>%s</b> (%.2f) has been refunded and you have been removed from the course roster.</p>", full.Course.Title, full.Amount),
	)
}

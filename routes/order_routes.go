package routes

import (
	"github.com/edumart/course_market/handlers"
	"github.com/edumart/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	orders := api.Group("/orders", middleware.Protected())
	orders.Post("", middleware.StudentRequired(), handlers.CreateOrder)
	orders.Get("/student/:studentId", handlers.GetStudentOrders)
	orders.Get("/teacher/:teacherId", handlers.GetTeacherOrders)
	orders.Get("/stats/overview", middleware.AdminRequired(), handlers.GetOrderStats)
	orders.Get("/:id", handlers.GetOrder)
	orders.Patch("/:id/complete", handlers.CompleteOrder)
	orders.Patch("/:id/cancel", handlers.CancelOrder)
	orders.Patch("/:id/refund", handlers.RefundOrder)
}

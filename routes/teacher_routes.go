package routes

import (
	"github.com/edumart/course_market/handlers"
	"github.com/edumart/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	teachers := api.Group("/teachers")
	teachers.Get("/:teacherId/stats", handlers.GetTeacherStats)
	teachers.Get("/:teacherId/reviews", handlers.GetTeacherReviews)
	teachers.Post("/:teacherId/reviews", middleware.Protected(), middleware.StudentRequired(), handlers.AddTeacherReview)
}

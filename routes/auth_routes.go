package routes

import (
	"github.com/edumart/course_market/handlers"
	"github.com/edumart/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/teachers", handlers.ListTeachers)
	auth.Get("/students", handlers.ListStudents)
	auth.Get("/profile/:id", handlers.GetProfile)

	auth.Put("/profile", middleware.Protected(), handlers.UpdateProfile)
	auth.Put("/teacher-profile", middleware.Protected(), handlers.UpdateTeacherProfile)
	auth.Put("/student-profile", middleware.Protected(), handlers.UpdateStudentProfile)
}

package routes

import (
	"github.com/edumart/course_market/handlers"
	"github.com/edumart/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	courses := api.Group("/courses")

	// Literal segments before ":id" so search and tag paths are not
	// swallowed by the id wildcard.
	courses.Get("/search/tags", handlers.SearchCourses)
	courses.Get("/search/text", handlers.SearchCoursesByText)
	courses.Get("/search/advanced", handlers.SearchCourses)
	courses.Get("/search/suggestions", handlers.GetSearchSuggestions)
	courses.Get("/tags/all", handlers.GetAllTags)
	courses.Get("/tags/popular", handlers.GetPopularTags)
	courses.Get("/teacher/:teacherId", handlers.GetTeacherCourses)
	courses.Get("/student/:studentId", handlers.GetStudentCourses)

	courses.Get("", handlers.ListCourses)
	courses.Get("/:id", handlers.GetCourse)
	courses.Get("/:id/materials", handlers.GetMaterials)

	teacher := courses.Group("", middleware.Protected(), middleware.TeacherRequired())
	teacher.Post("", handlers.CreateCourse)
	teacher.Put("/:id", handlers.UpdateCourse)
	teacher.Patch("/:id/publish", handlers.PublishCourse)
	teacher.Delete("/:id", handlers.DeleteCourse)
	teacher.Post("/:id/materials", handlers.AddMaterials)
	teacher.Put("/:id/materials/:materialId", handlers.UpdateMaterial)
	teacher.Delete("/:id/materials/:materialId", handlers.DeleteMaterial)

	student := courses.Group("", middleware.Protected(), middleware.StudentRequired())
	student.Patch("/:id/progress", handlers.UpdateCourseProgress)
	student.Post("/:id/reviews", handlers.AddCourseReview)
}

package routes

import (
	"github.com/edumart/course_market/handlers"
	"github.com/edumart/course_market/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/stats", handlers.GetPlatformStats)

	users := admin.Group("/users")
	users.Get("", handlers.AdminListUsers)
	users.Patch("/:id/status", handlers.AdminUpdateUserStatus)
	users.Delete("/:id", handlers.AdminDeleteUser)

	courses := admin.Group("/courses")
	courses.Get("", handlers.AdminListCourses)
	courses.Patch("/:id/status", handlers.AdminUpdateCourseStatus)

	admin.Get("/orders", handlers.ListOrders)
}

package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all instructor/admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminPublishCourse)

	// Lesson Management
	adminGroup.Post("/:id/lesson", middleware.JWTMiddleware, validators.CreateLessonAdmin(), controllers.AdminCreateLesson)
	adminGroup.Get("/:id/lessons", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminListLessons)
	adminGroup.Post("/:course_id/lesson/:lesson_id/publish", middleware.JWTMiddleware, validators.LessonIDParams(), controllers.AdminPublishLesson)
	adminGroup.Delete("/:course_id/lesson/:lesson_id", middleware.JWTMiddleware, validators.LessonIDParams(), controllers.AdminDeleteLesson)

	// Quiz Management
	adminGroup.Post("/:id/quiz", middleware.JWTMiddleware, validators.CreateQuizAdmin(), controllers.AdminCreateQuiz)

	quizGroup := app.Group("/admin/quiz")
	quizGroup.Get("/:quiz_id", middleware.JWTMiddleware, validators.QuizIDParam(), controllers.AdminGetQuiz)
	quizGroup.Put("/:quiz_id", middleware.JWTMiddleware, validators.UpdateQuizAdmin(), controllers.AdminUpdateQuiz)
	quizGroup.Delete("/:quiz_id", middleware.JWTMiddleware, validators.QuizIDParam(), controllers.AdminDeleteQuiz)
}

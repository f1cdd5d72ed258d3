package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Progress tracking
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetCourseProgress)
	userGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.CompleteLesson(), controllers.CompleteLesson)

	// Reviews
	userGroup.Post("/:course_id/review", middleware.JWTMiddleware, validators.SubmitReview(), controllers.SubmitReview)
	userGroup.Get("/:course_id/reviews", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetCourseReviews)

	// Quiz submission and attempt history
	quizGroup := app.Group("/quiz")
	quizGroup.Post("/:quiz_id/submit", middleware.JWTMiddleware, validators.SubmitQuizAttempt(), controllers.SubmitQuizAttempt)
	quizGroup.Get("/:quiz_id/attempts", middleware.JWTMiddleware, validators.GetQuizAttempts(), controllers.GetMyQuizAttempts)
}

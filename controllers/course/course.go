package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// LessonWithQuiz pairs a lesson with its quiz definition (answer flags stripped)
type LessonWithQuiz struct {
	courseModels.Lesson
	Quiz        *courseModels.Quiz `json:"quiz,omitempty"`
	IsCompleted bool               `json:"is_completed"`
}

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a published course with its lessons and quizzes.
// Correct-option flags are stripped before anything reaches a learner.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []courseModels.Lesson
	database.Database.Db.
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").Find(&lessons)

	result := make([]LessonWithQuiz, len(lessons))
	for i, lesson := range lessons {
		result[i] = LessonWithQuiz{Lesson: lesson}

		var completion courseModels.LessonCompletion
		if err := database.Database.Db.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&completion).Error; err == nil {
			result[i].IsCompleted = true
		}

		if lesson.ContentType == "QUIZ" {
			var quiz courseModels.Quiz
			err := database.Database.Db.
				Preload("Questions", "is_deleted = ?", false).
				Preload("Questions.Options", "is_deleted = ?", false).
				Where("lesson_id = ? AND is_deleted = ? AND is_published = ?", lesson.ID, false, true).
				First(&quiz).Error
			if err == nil {
				// Hide the answer key from learners
				for qi := range quiz.Questions {
					for oi := range quiz.Questions[qi].Options {
						quiz.Questions[qi].Options[oi].IsCorrect = false
					}
				}
				result[i].Quiz = &quiz
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":  course,
		"lessons": result,
	})
}

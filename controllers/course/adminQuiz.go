package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateQuiz creates a quiz with nested questions and options in one payload
func AdminCreateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" && user.Role != "INSTRUCTOR" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title               string `json:"title"`
		LessonID            *uint  `json:"lesson_id"`
		FirstAttemptPoints  *int   `json:"first_attempt_points"`
		SecondAttemptPoints *int   `json:"second_attempt_points"`
		ThirdAttemptPoints  *int   `json:"third_attempt_points"`
		MoreAttemptsPoints  *int   `json:"more_attempts_points"`
		Questions           []struct {
			Text    string `json:"text"`
			Points  int    `json:"points"`
			Options []struct {
				Text      string `json:"text"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"options"`
		} `json:"questions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.LessonID != nil {
		var lesson courseModels.Lesson
		if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", *reqData.LessonID, courseID, false).First(&lesson).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
	}

	quiz := courseModels.Quiz{
		CourseID: uint(courseID),
		LessonID: reqData.LessonID,
		Title:    reqData.Title,
		// Reward schedule defaults: 10/5/2/0
		FirstAttemptPoints:  10,
		SecondAttemptPoints: 5,
		ThirdAttemptPoints:  2,
		MoreAttemptsPoints:  0,
	}
	if reqData.FirstAttemptPoints != nil {
		quiz.FirstAttemptPoints = *reqData.FirstAttemptPoints
	}
	if reqData.SecondAttemptPoints != nil {
		quiz.SecondAttemptPoints = *reqData.SecondAttemptPoints
	}
	if reqData.ThirdAttemptPoints != nil {
		quiz.ThirdAttemptPoints = *reqData.ThirdAttemptPoints
	}
	if reqData.MoreAttemptsPoints != nil {
		quiz.MoreAttemptsPoints = *reqData.MoreAttemptsPoints
	}

	for _, q := range reqData.Questions {
		points := q.Points
		if points == 0 {
			points = 1
		}
		question := courseModels.Question{
			Text:   q.Text,
			Points: points,
		}
		for _, opt := range q.Options {
			question.Options = append(question.Options, courseModels.Option{
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	// Creates the quiz with its questions and options in one transaction
	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// AdminGetQuiz returns the full quiz definition including correct-option flags
func AdminGetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" && user.Role != "INSTRUCTOR" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	err := database.Database.Db.
		Preload("Questions", "is_deleted = ?", false).
		Preload("Questions.Options", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// AdminUpdateQuiz updates quiz metadata, reward schedule and publish state
func AdminUpdateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" && user.Role != "INSTRUCTOR" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuizUpdate").(*struct {
		Title               string `json:"title"`
		FirstAttemptPoints  *int   `json:"first_attempt_points"`
		SecondAttemptPoints *int   `json:"second_attempt_points"`
		ThirdAttemptPoints  *int   `json:"third_attempt_points"`
		MoreAttemptsPoints  *int   `json:"more_attempts_points"`
		IsPublished         *bool  `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		quiz.Title = reqData.Title
	}
	if reqData.FirstAttemptPoints != nil {
		quiz.FirstAttemptPoints = *reqData.FirstAttemptPoints
	}
	if reqData.SecondAttemptPoints != nil {
		quiz.SecondAttemptPoints = *reqData.SecondAttemptPoints
	}
	if reqData.ThirdAttemptPoints != nil {
		quiz.ThirdAttemptPoints = *reqData.ThirdAttemptPoints
	}
	if reqData.MoreAttemptsPoints != nil {
		quiz.MoreAttemptsPoints = *reqData.MoreAttemptsPoints
	}
	if reqData.IsPublished != nil {
		quiz.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// AdminDeleteQuiz soft-deletes a quiz. Existing attempt records stay untouched.
func AdminDeleteQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	quiz.IsDeleted = true
	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

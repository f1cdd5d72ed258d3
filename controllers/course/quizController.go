package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	assessmentService "elearn/services/assessment"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizAttempt grades a quiz submission through the assessment engine
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)
	answers, ok := c.Locals("validatedAnswers").([]assessmentService.Answer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := assessmentService.NewService(database.Database.Db)
	result, err := svc.SubmitAttempt(userID, uint(quizID), answers)
	if err != nil {
		switch {
		case errors.Is(err, assessmentService.ErrQuizNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		case errors.Is(err, assessmentService.ErrInvalidAnswers):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		case errors.Is(err, assessmentService.ErrUserNotFound):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz attempt!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted!", fiber.Map{
		"attempt":       result.Attempt,
		"points_earned": result.PointsEarned,
		"badge":         result.Badge,
	})
}

// GetMyQuizAttempts lists the caller's attempts for a quiz, oldest first
func GetMyQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	svc := assessmentService.NewService(database.Database.Db)
	attempts, err := svc.ListAttempts(userID, uint(quizID))
	if err != nil {
		if errors.Is(err, assessmentService.ErrQuizNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}

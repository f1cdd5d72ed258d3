package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	assessmentService "elearn/services/assessment"
	"elearn/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetCourseProgress returns the caller's progress record, creating it on first read
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	svc := assessmentService.NewService(database.Database.Db)
	progress, err := svc.GetOrCreateProgress(userID, uint(courseID))
	if err != nil {
		if errors.Is(err, assessmentService.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// CompleteLesson marks a lesson as completed and returns the updated progress
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	svc := assessmentService.NewService(database.Database.Db)
	progress, justCompleted, err := svc.CompleteLesson(userID, uint(courseID), uint(lessonID))
	if err != nil {
		switch {
		case errors.Is(err, assessmentService.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, assessmentService.ErrLessonNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete lesson!", nil)
		}
	}

	// Completion side effects stay out of the engine transaction
	if justCompleted {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err == nil {
			go func(email, name, title string) {
				if err := utils.SendCourseCompletionEmail(email, name, title); err != nil {
					log.Printf("Error sending completion email to %s: %v", email, err)
				}
			}(user.Email, user.Name, course.Title)
			go utils.NotifyCourseCompletion(userID, uint(courseID), course.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", progress)
}

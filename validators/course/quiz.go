package courseValidator

import (
	"elearn/middleware"
	assessmentService "elearn/services/assessment"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizAttempt validates the quiz submission payload. Answers reference
// questions and options by ID; deep validation against the quiz definition
// happens in the assessment service.
func SubmitQuizAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := strconv.Atoi(c.Params("quiz_id"))
		if err != nil || quizID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
		}

		reqData := new(struct {
			Answers []assessmentService.Answer `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "Please answer at least one question!"
		}
		for i, a := range reqData.Answers {
			if a.QuestionID < 1 || a.OptionID < 1 {
				errors["answers"] = "Answer " + strconv.Itoa(i+1) + " must reference a question and an option!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("quizID", quizID)
		c.Locals("validatedAnswers", reqData.Answers)
		return c.Next()
	}
}

// GetQuizAttempts validates the :quiz_id param for the attempt listing
func GetQuizAttempts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := strconv.Atoi(c.Params("quiz_id"))
		if err != nil || quizID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
		}

		c.Locals("quizID", quizID)
		return c.Next()
	}
}

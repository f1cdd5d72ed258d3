package controllers

import (
	"bytes"
	"elearn/database"
	"elearn/models"
	courseModels "elearn/models/course"
	validators "elearn/validators/course"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupQuizTest wires an in-memory database into the global handle, seeds a
// learner and a single-question quiz, and builds a fiber app with the quiz
// routes behind a stub that injects the learner's identity.
func setupQuizTest(t *testing.T) (*fiber.App, models.User, courseModels.Quiz) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.Option{},
		&courseModels.QuizAttempt{},
	))
	database.Database = database.DbInstance{Db: db}

	user := models.User{Name: "Learner", Email: "learner@example.com", Password: "hashed", Badge: "NEWBIE"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Title: "Course", Status: "ACTIVE", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	quiz := courseModels.Quiz{
		CourseID:            course.ID,
		Title:               "Quiz",
		FirstAttemptPoints:  10,
		SecondAttemptPoints: 5,
		ThirdAttemptPoints:  2,
		IsPublished:         true,
		Questions: []courseModels.Question{{
			Text:   "Question 1",
			Points: 1,
			Options: []courseModels.Option{
				{Text: "right", IsCorrect: true},
				{Text: "wrong"},
			},
		}},
	}
	require.NoError(t, db.Create(&quiz).Error)
	require.NoError(t, db.Preload("Questions.Options").First(&quiz, quiz.ID).Error)

	app := fiber.New()
	injectUser := func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		return c.Next()
	}
	app.Post("/quiz/:quiz_id/submit", injectUser, validators.SubmitQuizAttempt(), SubmitQuizAttempt)
	app.Get("/quiz/:quiz_id/attempts", injectUser, validators.GetQuizAttempts(), GetMyQuizAttempts)

	return app, user, quiz
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func TestSubmitQuizAttemptRoute(t *testing.T) {
	app, _, quiz := setupQuizTest(t)

	correct := quiz.Questions[0].Options[0]
	status, envelope := postJSON(t, app, fmt.Sprintf("/quiz/%d/submit", quiz.ID), fiber.Map{
		"answers": []fiber.Map{{
			"question_id": quiz.Questions[0].ID,
			"option_id":   correct.ID,
		}},
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, envelope["status"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["points_earned"])
	assert.Equal(t, "NEWBIE", data["badge"])

	attempt := data["attempt"].(map[string]interface{})
	assert.Equal(t, float64(1), attempt["attempt_number"])
	assert.Equal(t, true, attempt["passed"])
}

func TestSubmitQuizAttemptRouteRejectsEmptyAnswers(t *testing.T) {
	app, _, quiz := setupQuizTest(t)

	status, envelope := postJSON(t, app, fmt.Sprintf("/quiz/%d/submit", quiz.ID), fiber.Map{
		"answers": []fiber.Map{},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, false, envelope["status"])
}

func TestSubmitQuizAttemptRouteQuizNotFound(t *testing.T) {
	app, _, quiz := setupQuizTest(t)

	status, _ := postJSON(t, app, "/quiz/9999/submit", fiber.Map{
		"answers": []fiber.Map{{
			"question_id": quiz.Questions[0].ID,
			"option_id":   quiz.Questions[0].Options[0].ID,
		}},
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGetMyQuizAttemptsRoute(t *testing.T) {
	app, _, quiz := setupQuizTest(t)

	for i := 0; i < 2; i++ {
		status, _ := postJSON(t, app, fmt.Sprintf("/quiz/%d/submit", quiz.ID), fiber.Map{
			"answers": []fiber.Map{{
				"question_id": quiz.Questions[0].ID,
				"option_id":   quiz.Questions[0].Options[0].ID,
			}},
		})
		require.Equal(t, fiber.StatusOK, status)
	}

	req := httptest.NewRequest("GET", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data := envelope["data"].(map[string]interface{})
	attempts := data["attempts"].([]interface{})
	require.Len(t, attempts, 2)

	first := attempts[0].(map[string]interface{})
	second := attempts[1].(map[string]interface{})
	assert.Equal(t, float64(1), first["attempt_number"])
	assert.Equal(t, float64(2), second["attempt_number"])
	assert.Equal(t, float64(5), second["points_earned"])
}

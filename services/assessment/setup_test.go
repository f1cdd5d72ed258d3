package assessment

import (
	"elearn/models"
	courseModels "elearn/models/course"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database migrated with the full schema.
// sqlite ignores FOR UPDATE clauses, so the pool is pinned to one connection
// to keep transactions serialized the way postgres row locks would.
func newTestDB(t *testing.T) *gorm.DB {
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
		&models.Review{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.Option{},
		&courseModels.QuizAttempt{},
		&courseModels.CourseProgress{},
		&courseModels.LessonCompletion{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test Learner",
		Email:    fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "."))),
		Password: "hashed",
		Badge:    BadgeNewbie,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestUser2(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Name:     "Second Learner",
		Email:    fmt.Sprintf("%s.second@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "."))),
		Password: "hashed",
		Badge:    BadgeNewbie,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB) courseModels.Course {
	t.Helper()
	course := courseModels.Course{
		Title:       "Test Course",
		Description: "Course used in tests",
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createTestLessons(t *testing.T, db *gorm.DB, courseID uint, count int, published bool) []courseModels.Lesson {
	t.Helper()
	lessons := make([]courseModels.Lesson, 0, count)
	for i := 0; i < count; i++ {
		lesson := courseModels.Lesson{
			CourseID:    courseID,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			ContentType: "TEXT",
			TextContent: "lorem",
			OrderIndex:  i,
			IsPublished: published,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return lessons
}

// createTestQuiz builds a quiz with questionCount questions of two options
// each, the first option being the correct one, and reloads it with its
// questions and options so tests can reference option IDs.
func createTestQuiz(t *testing.T, db *gorm.DB, courseID uint, questionCount int) courseModels.Quiz {
	t.Helper()

	quiz := courseModels.Quiz{
		CourseID:            courseID,
		Title:               "Test Quiz",
		FirstAttemptPoints:  10,
		SecondAttemptPoints: 5,
		ThirdAttemptPoints:  2,
		MoreAttemptsPoints:  0,
		IsPublished:         true,
	}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, courseModels.Question{
			Text:   fmt.Sprintf("Question %d", i+1),
			Points: 1,
			Options: []courseModels.Option{
				{Text: "right", IsCorrect: true},
				{Text: "wrong", IsCorrect: false},
			},
		})
	}
	require.NoError(t, db.Create(&quiz).Error)

	var reloaded courseModels.Quiz
	require.NoError(t, db.
		Preload("Questions", "is_deleted = ?", false).
		Preload("Questions.Options", "is_deleted = ?", false).
		First(&reloaded, quiz.ID).Error)
	return reloaded
}

// correctAnswer / wrongAnswer pick the option of a question by correctness
func correctAnswer(q courseModels.Question) Answer {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return Answer{QuestionID: q.ID, OptionID: opt.ID}
		}
	}
	return Answer{QuestionID: q.ID}
}

func wrongAnswer(q courseModels.Question) Answer {
	for _, opt := range q.Options {
		if !opt.IsCorrect {
			return Answer{QuestionID: q.ID, OptionID: opt.ID}
		}
	}
	return Answer{QuestionID: q.ID}
}

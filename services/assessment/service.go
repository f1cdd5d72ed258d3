// Package assessment implements the scoring, reward, and progress engine:
// quiz attempt grading with escalating rewards per attempt number, the
// learner's cumulative points/badge ledger, and per-course lesson progress.
package assessment

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidAnswers = errors.New("invalid answers")
)

// Service runs all assessment operations against a single gorm DB.
// All mutating operations are transactional; nothing is cached in memory.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

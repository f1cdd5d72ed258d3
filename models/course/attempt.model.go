package course

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is an immutable record of one graded submission. The composite
// unique index keeps attempt numbers gapless per learner and quiz even if two
// submissions race past the serialized counter.
type QuizAttempt struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_quiz_attempt_ordinal,priority:1"`
	QuizID        uint      `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_attempt_ordinal,priority:2"`
	AttemptNumber int       `json:"attempt_number" gorm:"not null;uniqueIndex:idx_quiz_attempt_ordinal,priority:3"`
	Score         int       `json:"score"`             // Sum of point weights of correctly answered questions
	MaxScore      int       `json:"max_score"`         // Sum of point weights of all questions
	Percentage    float64   `json:"percentage"`        // correct answers / total questions * 100
	Passed        bool      `json:"passed" gorm:"default:false"`
	PointsEarned  int       `json:"points_earned" gorm:"default:0"`
	Answers       string    `json:"answers"` // JSON array of {question_id, option_id}
	CompletedAt   time.Time `json:"completed_at"`
}

package course

import "gorm.io/gorm"

// Quiz represents a quiz definition attached to a course (and optionally a lesson).
// The reward fields form the per-quiz schedule: points awarded for a passing
// attempt, keyed by how many attempts the learner needed.
type Quiz struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	LessonID *uint  `json:"lesson_id" gorm:"index"` // Optional owning lesson
	Title    string `json:"title"`

	FirstAttemptPoints  int `json:"first_attempt_points" gorm:"default:10"`
	SecondAttemptPoints int `json:"second_attempt_points" gorm:"default:5"`
	ThirdAttemptPoints  int `json:"third_attempt_points" gorm:"default:2"`
	MoreAttemptsPoints  int `json:"more_attempts_points" gorm:"default:0"` // 4th attempt and beyond

	IsPublished bool `json:"is_published" gorm:"default:false"`
	IsDeleted   bool `json:"-" gorm:"default:false"`

	Questions []Question `json:"questions,omitempty"`
}

// Question represents a single question within a quiz.
// Authoring responsibility: each question should have exactly one correct option.
type Question struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text"`
	Points     int    `json:"points" gorm:"default:1"` // Point weight of the question
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`

	Options []Option `json:"options,omitempty"`
}

// Option represents an answer option for a question
type Option struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

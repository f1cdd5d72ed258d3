package course

import (
	"time"

	"gorm.io/gorm"
)

// CourseProgress tracks a user's progress through a course. One record per
// (user, course) pair, created lazily on first read or lesson completion.
type CourseProgress struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_progress,priority:1"`
	CourseID         uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_progress,priority:2"`
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`
	PercentCompleted float64    `json:"percent_completed" gorm:"default:0"` // 0–100
	Completed        bool       `json:"completed" gorm:"default:false"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"` // Set once, never overwritten
	IsDeleted        bool       `json:"-" gorm:"default:false"`
}

// LessonCompletion marks a single lesson as completed by a user. The unique
// index gives the completed set its membership semantics: re-completing a
// lesson is a no-op.
type LessonCompletion struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_lesson_completion,priority:1"`
	CourseID uint `json:"course_id" gorm:"index;not null;uniqueIndex:idx_lesson_completion,priority:2"`
	LessonID uint `json:"lesson_id" gorm:"not null;uniqueIndex:idx_lesson_completion,priority:3"`
}

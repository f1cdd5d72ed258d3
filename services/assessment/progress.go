package assessment

import (
	courseModels "elearn/models/course"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// progressRetryLimit bounds retries of the progress read-modify-write when a
// concurrent writer wins the lazy-create race. Only the read-modify-write is
// retried; completed lesson inserts are idempotent and points are never
// involved here.
const progressRetryLimit = 3

// GetOrCreateProgress fetches the progress record for (user, course),
// creating an empty one on first access.
func (s *Service) GetOrCreateProgress(userID, courseID uint) (*courseModels.CourseProgress, error) {
	if err := s.courseExists(courseID); err != nil {
		return nil, err
	}

	var progress courseModels.CourseProgress
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = courseModels.CourseProgress{
		UserID:    userID,
		CourseID:  courseID,
		StartedAt: time.Now(),
	}
	if err := s.db.Create(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the creation race; the winner's record is the one.
			err = s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &progress, nil
}

// CompleteLesson marks a lesson completed for the user and recomputes the
// course progress. Idempotent: completing the same lesson again changes
// nothing. The returned bool reports whether this call completed the course.
func (s *Service) CompleteLesson(userID, courseID, lessonID uint) (*courseModels.CourseProgress, bool, error) {
	if err := s.courseExists(courseID); err != nil {
		return nil, false, err
	}

	var lessonCount int64
	if err := s.db.Model(&courseModels.Lesson{}).
		Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		Count(&lessonCount).Error; err != nil {
		return nil, false, err
	}
	if lessonCount == 0 {
		return nil, false, ErrLessonNotFound
	}

	var (
		progress      *courseModels.CourseProgress
		justCompleted bool
		err           error
	)
	for attempt := 0; attempt < progressRetryLimit; attempt++ {
		progress, justCompleted, err = s.completeLessonOnce(userID, courseID, lessonID)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		// Another request created the progress record first; re-read and redo.
	}
	return progress, justCompleted, err
}

func (s *Service) completeLessonOnce(userID, courseID, lessonID uint) (*courseModels.CourseProgress, bool, error) {
	var progress courseModels.CourseProgress
	justCompleted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the progress row for the whole read-modify-write.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = courseModels.CourseProgress{
				UserID:    userID,
				CourseID:  courseID,
				StartedAt: time.Now(),
			}
			err = tx.Create(&progress).Error
		}
		if err != nil {
			return err
		}

		// Membership insert; the unique index makes repeats a no-op.
		completion := courseModels.LessonCompletion{
			UserID:   userID,
			CourseID: courseID,
			LessonID: lessonID,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
			return err
		}

		// Both sides of the ratio use the same lesson filter, so completions
		// of unpublished or deleted lessons never push the percent past 100.
		var completed int64
		if err := tx.Model(&courseModels.LessonCompletion{}).
			Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
			Where("lesson_completions.user_id = ? AND lesson_completions.course_id = ?", userID, courseID).
			Where("lessons.is_deleted = ? AND lessons.is_published = ?", false, true).
			Count(&completed).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
			Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			total = 1 // A course without published lessons must not divide by zero.
		}

		progress.CompletedLessons = int(completed)
		progress.TotalLessons = int(total)
		progress.PercentCompleted = float64(completed) / float64(total) * 100
		if progress.PercentCompleted > 100 {
			progress.PercentCompleted = 100
		}

		if progress.PercentCompleted >= 100 && !progress.Completed {
			progress.Completed = true
			now := time.Now()
			progress.CompletedAt = &now // Set once; repeated calls keep the original stamp.
			justCompleted = true
		}

		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &progress, justCompleted, nil
}

func (s *Service) courseExists(courseID uint) error {
	var count int64
	if err := s.db.Model(&courseModels.Course{}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCourseNotFound
	}
	return nil
}

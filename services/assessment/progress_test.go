package assessment

import (
	courseModels "elearn/models/course"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateProgressLazyCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	createTestLessons(t, db, course.ID, 3, true)

	progress, err := svc.GetOrCreateProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.CompletedLessons)
	assert.Equal(t, 0.0, progress.PercentCompleted)
	assert.False(t, progress.Completed)
	assert.Nil(t, progress.CompletedAt)
	assert.False(t, progress.StartedAt.IsZero())

	// The second read returns the same record, not a new one.
	again, err := svc.GetOrCreateProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&courseModels.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateProgressCourseNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	_, err := svc.GetOrCreateProgress(user.ID, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCompleteLessonProgression(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	lessons := createTestLessons(t, db, course.ID, 5, true)

	wantPercent := []float64{20, 40, 60, 80, 100}
	for i, lesson := range lessons {
		progress, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, progress.CompletedLessons)
		assert.Equal(t, 5, progress.TotalLessons)
		assert.InDelta(t, wantPercent[i], progress.PercentCompleted, 0.001)

		if i < len(lessons)-1 {
			assert.False(t, progress.Completed)
			assert.False(t, justCompleted)
			assert.Nil(t, progress.CompletedAt)
		} else {
			assert.True(t, progress.Completed)
			assert.True(t, justCompleted)
			require.NotNil(t, progress.CompletedAt)
		}
	}
}

func TestCompleteLessonIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	lessons := createTestLessons(t, db, course.ID, 3, true)

	first, _, err := svc.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CompletedLessons)

	repeat, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repeat.CompletedLessons)
	assert.InDelta(t, first.PercentCompleted, repeat.PercentCompleted, 0.001)
	assert.False(t, justCompleted)

	var count int64
	require.NoError(t, db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteLessonCompletionStampSetOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	lessons := createTestLessons(t, db, course.ID, 1, true)

	first, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, justCompleted)
	require.NotNil(t, first.CompletedAt)

	time.Sleep(50 * time.Millisecond)

	repeat, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, justCompleted)
	require.NotNil(t, repeat.CompletedAt)
	// The original stamp survives the repeat call.
	assert.WithinDuration(t, *first.CompletedAt, *repeat.CompletedAt, 10*time.Millisecond)
}

func TestCompleteLessonOnlyPublishedLessonsCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	published := createTestLessons(t, db, course.ID, 2, true)
	createTestLessons(t, db, course.ID, 2, false)

	progress, _, err := svc.CompleteLesson(user.ID, course.ID, published[0].ID)
	require.NoError(t, err)
	// Unpublished lessons stay out of the denominator.
	assert.Equal(t, 2, progress.TotalLessons)
	assert.InDelta(t, 50.0, progress.PercentCompleted, 0.001)
}

func TestCompleteLessonUnpublishedNeverInflatesPercent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	published := createTestLessons(t, db, course.ID, 1, true)
	unpublished := createTestLessons(t, db, course.ID, 2, false)

	// Completing every lesson, published or not, must cap at 100%.
	for _, lesson := range unpublished {
		_, _, err := svc.CompleteLesson(user.ID, course.ID, lesson.ID)
		require.NoError(t, err)
	}
	progress, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, published[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedLessons)
	assert.Equal(t, 1, progress.TotalLessons)
	assert.InDelta(t, 100.0, progress.PercentCompleted, 0.001)
	assert.True(t, justCompleted)
}

func TestCompleteLessonUnpublishedDoesNotCompleteCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	createTestLessons(t, db, course.ID, 1, true)
	unpublished := createTestLessons(t, db, course.ID, 1, false)

	progress, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, unpublished[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.CompletedLessons)
	assert.InDelta(t, 0.0, progress.PercentCompleted, 0.001)
	assert.False(t, progress.Completed)
	assert.False(t, justCompleted)
	assert.Nil(t, progress.CompletedAt)
}

func TestCompleteLessonNoPublishedLessonsFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	lessons := createTestLessons(t, db, course.ID, 1, false)

	// The completion is recorded, but with nothing published the denominator
	// falls back to one and the course stays at zero percent.
	progress, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.CompletedLessons)
	assert.Equal(t, 1, progress.TotalLessons)
	assert.InDelta(t, 0.0, progress.PercentCompleted, 0.001)
	assert.False(t, progress.Completed)
	assert.False(t, justCompleted)

	var count int64
	require.NoError(t, db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND lesson_id = ?", user.ID, course.ID, lessons[0].ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteLessonCountsOncePublished(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	published := createTestLessons(t, db, course.ID, 1, true)
	unpublished := createTestLessons(t, db, course.ID, 1, false)

	_, _, err := svc.CompleteLesson(user.ID, course.ID, unpublished[0].ID)
	require.NoError(t, err)

	// Publishing the lesson retroactively counts the recorded completion.
	require.NoError(t, db.Model(&unpublished[0]).UpdateColumn("is_published", true).Error)

	progress, justCompleted, err := svc.CompleteLesson(user.ID, course.ID, published[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.CompletedLessons)
	assert.Equal(t, 2, progress.TotalLessons)
	assert.InDelta(t, 100.0, progress.PercentCompleted, 0.001)
	assert.True(t, justCompleted)
}

func TestCompleteLessonCourseNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	_, _, err := svc.CompleteLesson(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCompleteLessonLessonNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	course := createTestCourse(t, db)
	other := createTestCourse(t, db)
	otherLessons := createTestLessons(t, db, other.ID, 1, true)

	_, _, err := svc.CompleteLesson(user.ID, course.ID, 9999)
	assert.ErrorIs(t, err, ErrLessonNotFound)

	// A lesson of another course is not completable through this course.
	_, _, err = svc.CompleteLesson(user.ID, course.ID, otherLessons[0].ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

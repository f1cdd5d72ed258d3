package utils

import (
	"elearn/database"
	"elearn/models"
	courseModels "elearn/models/course"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeCourseStatsScheduler sets up the nightly refresh of the cached
// per-course counters (lesson count, average review rating). The assessment
// engine never reads these caches; they only feed catalog listings.
func InitializeCourseStatsScheduler() {
	log.Println("[STATS-SCHEDULER] Initializing course stats scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[STATS-SCHEDULER] Running daily course stats refresh...")
		RefreshCourseStats()
	})

	c.Start()
	log.Println("[STATS-SCHEDULER] Course stats scheduler started - runs daily at 3 AM")
}

// RefreshCourseStats recomputes the denormalized lesson count and average
// rating for every live course.
func RefreshCourseStats() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		log.Printf("[STATS-SCHEDULER] Failed to list courses: %v", err)
		return
	}

	for _, course := range courses {
		var lessonCount int64
		db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).
			Count(&lessonCount)

		var avgRating float64
		row := db.Model(&models.Review{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Select("COALESCE(AVG(rating), 0)").Row()
		if err := row.Scan(&avgRating); err != nil {
			log.Printf("[STATS-SCHEDULER] Failed to average ratings for course %d: %v", course.ID, err)
			continue
		}

		if err := db.Model(&courseModels.Course{}).Where("id = ?", course.ID).
			Updates(map[string]interface{}{
				"lesson_count": lessonCount,
				"rating":       avgRating,
			}).Error; err != nil {
			log.Printf("[STATS-SCHEDULER] Failed to update stats for course %d: %v", course.ID, err)
		}
	}

	log.Printf("[STATS-SCHEDULER] Refreshed stats for %d courses", len(courses))
}

package utils

import (
	"elearn/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyCourseCompletion posts a course-completion event to the configured
// webhook. No-op when COMPLETION_WEBHOOK_URL is unset; failures are logged
// and never propagated to the request path.
func NotifyCourseCompletion(userID, courseID uint, courseTitle string) {
	webhookURL := config.AppConfig.CompletionWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New()
	client.SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":        "course.completed",
			"user_id":      userID,
			"course_id":    courseID,
			"course_title": courseTitle,
			"completed_at": time.Now().UTC().Format(time.RFC3339),
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("[NOTIFY] Failed to call completion webhook: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("[NOTIFY] Completion webhook responded with status %d", resp.StatusCode())
	}
}

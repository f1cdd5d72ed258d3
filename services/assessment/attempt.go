package assessment

import (
	"elearn/models"
	courseModels "elearn/models/course"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PassThresholdPercent is the fixed correctness cutoff below which no points
// are awarded regardless of attempt number.
const PassThresholdPercent = 50.0

// Answer is one (question, selected option) pair of a submission. Options are
// referenced by ID only; matching on display text is ambiguous.
type Answer struct {
	QuestionID uint `json:"question_id"`
	OptionID   uint `json:"option_id"`
}

// AttemptResult is what a submission returns: the persisted attempt, the
// points it earned, and the badge as it stands after the credit.
type AttemptResult struct {
	Attempt      courseModels.QuizAttempt `json:"attempt"`
	PointsEarned int                      `json:"points_earned"`
	Badge        string                   `json:"badge"`
}

// SubmitAttempt grades a submission against the quiz definition, assigns the
// attempt number, credits reward points on a pass, and persists the attempt.
// The attempt insert and the points credit commit together or not at all.
func (s *Service) SubmitAttempt(userID, quizID uint, answers []Answer) (*AttemptResult, error) {
	var quiz courseModels.Quiz
	err := s.db.
		Preload("Questions", "is_deleted = ?", false).
		Preload("Questions.Options", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	score, maxScore, correct, err := gradeAnswers(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}

	total := len(quiz.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(correct) / float64(total) * 100
	}
	// A quiz without questions always fails: percentage stays 0 instead of
	// dividing by zero, so no reward is ever paid out for it.
	passed := total > 0 && percentage >= PassThresholdPercent

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	var result AttemptResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the learner row first. This serializes submissions per
		// learner, so the prior-attempt count and the insert below act as
		// one atomic step and attempt numbers stay gapless.
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_deleted = ?", userID, false).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var priorAttempts int64
		if err := tx.Model(&courseModels.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ?", userID, quizID).
			Count(&priorAttempts).Error; err != nil {
			return err
		}
		attemptNumber := int(priorAttempts) + 1

		points := 0
		if passed {
			points = rewardForAttempt(quiz, attemptNumber)
		}

		attempt := courseModels.QuizAttempt{
			UserID:        userID,
			QuizID:        quizID,
			AttemptNumber: attemptNumber,
			Score:         score,
			MaxScore:      maxScore,
			Percentage:    percentage,
			Passed:        passed,
			PointsEarned:  points,
			Answers:       string(answersJSON),
			CompletedAt:   time.Now(),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		// The returned badge must reflect the post-credit state, not the
		// value read before the update.
		badge := user.Badge
		if badge == "" {
			badge = BadgeForPoints(user.Points)
		}
		if points > 0 {
			b, err := applyPoints(tx, userID, uint(points))
			if err != nil {
				return err
			}
			badge = b
		}

		result = AttemptResult{Attempt: attempt, PointsEarned: points, Badge: badge}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAttempts returns the learner's attempts for a quiz in attempt order.
func (s *Service) ListAttempts(userID, quizID uint) ([]courseModels.QuizAttempt, error) {
	var exists int64
	if err := s.db.Model(&courseModels.Quiz{}).
		Where("id = ? AND is_deleted = ?", quizID, false).
		Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrQuizNotFound
	}

	var attempts []courseModels.QuizAttempt
	if err := s.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number asc").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// rewardForAttempt looks up the quiz's reward schedule by attempt number.
func rewardForAttempt(quiz courseModels.Quiz, attemptNumber int) int {
	switch attemptNumber {
	case 1:
		return quiz.FirstAttemptPoints
	case 2:
		return quiz.SecondAttemptPoints
	case 3:
		return quiz.ThirdAttemptPoints
	default:
		return quiz.MoreAttemptsPoints
	}
}

// gradeAnswers validates a submission against the quiz questions and returns
// the weighted score, the maximum score, and the count of correct answers.
// Answers may cover a subset of the questions, but every answer must
// reference a question of this quiz (at most once) and an option belonging to
// that question.
func gradeAnswers(questions []courseModels.Question, answers []Answer) (score, maxScore, correct int, err error) {
	type optionInfo struct {
		belongs   map[uint]bool
		correctID uint
		points    int
	}

	byQuestion := make(map[uint]optionInfo, len(questions))
	for _, q := range questions {
		info := optionInfo{belongs: make(map[uint]bool, len(q.Options)), points: q.Points}
		for _, opt := range q.Options {
			info.belongs[opt.ID] = true
			if opt.IsCorrect {
				info.correctID = opt.ID
			}
		}
		byQuestion[q.ID] = info
		maxScore += q.Points
	}

	answered := make(map[uint]bool, len(answers))
	for _, a := range answers {
		info, ok := byQuestion[a.QuestionID]
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: question %d is not part of this quiz", ErrInvalidAnswers, a.QuestionID)
		}
		if answered[a.QuestionID] {
			return 0, 0, 0, fmt.Errorf("%w: question %d answered more than once", ErrInvalidAnswers, a.QuestionID)
		}
		answered[a.QuestionID] = true

		if !info.belongs[a.OptionID] {
			return 0, 0, 0, fmt.Errorf("%w: option %d does not belong to question %d", ErrInvalidAnswers, a.OptionID, a.QuestionID)
		}
		if info.correctID != 0 && a.OptionID == info.correctID {
			correct++
			score += info.points
		}
	}
	return score, maxScore, correct, nil
}

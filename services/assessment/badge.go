package assessment

import (
	"elearn/models"

	"gorm.io/gorm"
)

const (
	BadgeNewbie     = "NEWBIE"
	BadgeExplorer   = "EXPLORER"
	BadgeAchiever   = "ACHIEVER"
	BadgeSpecialist = "SPECIALIST"
	BadgeExpert     = "EXPERT"
	BadgeMaster     = "MASTER"
)

// badgeThresholds maps cumulative points to a badge, highest satisfied
// threshold first.
var badgeThresholds = []struct {
	MinPoints uint
	Badge     string
}{
	{120, BadgeMaster},
	{100, BadgeExpert},
	{80, BadgeSpecialist},
	{60, BadgeAchiever},
	{40, BadgeExplorer},
	{0, BadgeNewbie},
}

// BadgeForPoints returns the badge for a cumulative point total.
func BadgeForPoints(points uint) string {
	for _, t := range badgeThresholds {
		if points >= t.MinPoints {
			return t.Badge
		}
	}
	return BadgeNewbie
}

// ApplyPoints credits delta points to the user and returns the recomputed
// badge. The credit is a single atomic column update, not a read-add-write.
func (s *Service) ApplyPoints(userID uint, delta uint) (string, error) {
	var badge string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		b, err := applyPoints(tx, userID, delta)
		if err != nil {
			return err
		}
		badge = b
		return nil
	})
	if err != nil {
		return "", err
	}
	return badge, nil
}

// applyPoints adds delta to the user's point total inside tx and persists the
// badge derived from the new total.
func applyPoints(tx *gorm.DB, userID uint, delta uint) (string, error) {
	res := tx.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", ErrUserNotFound
	}

	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}

	badge := BadgeForPoints(user.Points)
	if badge != user.Badge {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("badge", badge).Error; err != nil {
			return "", err
		}
	}
	return badge, nil
}

package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeForPoints(t *testing.T) {
	cases := []struct {
		points uint
		want   string
	}{
		{0, BadgeNewbie},
		{39, BadgeNewbie},
		{40, BadgeExplorer},
		{59, BadgeExplorer},
		{60, BadgeAchiever},
		{79, BadgeAchiever},
		{80, BadgeSpecialist},
		{99, BadgeSpecialist},
		{100, BadgeExpert},
		{119, BadgeExpert},
		{120, BadgeMaster},
		{500, BadgeMaster},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BadgeForPoints(tc.points), "points=%d", tc.points)
	}
}

func TestBadgeForPointsNeverRegresses(t *testing.T) {
	rank := map[string]int{
		BadgeNewbie:     0,
		BadgeExplorer:   1,
		BadgeAchiever:   2,
		BadgeSpecialist: 3,
		BadgeExpert:     4,
		BadgeMaster:     5,
	}
	prev := rank[BadgeForPoints(0)]
	for p := uint(1); p <= 200; p++ {
		cur := rank[BadgeForPoints(p)]
		require.GreaterOrEqual(t, cur, prev, "badge dropped at %d points", p)
		prev = cur
	}
}

func TestApplyPointsCreditsAndUpgradesBadge(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	badge, err := svc.ApplyPoints(user.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, BadgeNewbie, badge)

	badge, err = svc.ApplyPoints(user.ID, 35)
	require.NoError(t, err)
	assert.Equal(t, BadgeExplorer, badge)

	reloaded := reloadUser(t, db, user.ID)
	assert.Equal(t, uint(45), reloaded.Points)
	assert.Equal(t, BadgeExplorer, reloaded.Badge)
}

func TestApplyPointsUserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.ApplyPoints(9999, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

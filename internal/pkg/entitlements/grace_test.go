package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewGracePolicy(t *testing.T) {
	assert.Equal(t, 7, NewGracePolicy(7).Days)
	assert.Equal(t, 14, NewGracePolicy(14).Days)
	assert.Equal(t, DefaultGracePeriodDays, NewGracePolicy(0).Days)
	assert.Equal(t, DefaultGracePeriodDays, NewGracePolicy(-3).Days)
}

func TestGracePolicyIsInGrace(t *testing.T) {
	policy := NewGracePolicy(7)
	expiresAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		inGrace bool
	}{
		{"before expiry", expiresAt.Add(-48 * time.Hour), false},
		{"exactly at expiry", expiresAt, true},
		{"three days after expiry", expiresAt.AddDate(0, 0, 3), true},
		{"last grace day", expiresAt.AddDate(0, 0, 7), true},
		{"eight days after expiry", expiresAt.AddDate(0, 0, 8), false},
		{"ten days after expiry", expiresAt.AddDate(0, 0, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inGrace, policy.IsInGrace(expiresAt, tt.now))
		})
	}
}

func TestGracePolicyDaysSinceExpiry(t *testing.T) {
	policy := NewGracePolicy(7)
	expiresAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, policy.DaysSinceExpiry(expiresAt, expiresAt.Add(-time.Hour)))
	assert.Equal(t, 0, policy.DaysSinceExpiry(expiresAt, expiresAt))
	// Partial days floor down.
	assert.Equal(t, 0, policy.DaysSinceExpiry(expiresAt, expiresAt.Add(23*time.Hour)))
	assert.Equal(t, 1, policy.DaysSinceExpiry(expiresAt, expiresAt.Add(25*time.Hour)))
	assert.Equal(t, 3, policy.DaysSinceExpiry(expiresAt, expiresAt.AddDate(0, 0, 3)))
}

func TestGracePolicyGraceDaysLeft(t *testing.T) {
	policy := NewGracePolicy(7)
	expiresAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, policy.GraceDaysLeft(expiresAt, expiresAt.Add(-time.Hour)))
	assert.Equal(t, 7, policy.GraceDaysLeft(expiresAt, expiresAt))
	assert.Equal(t, 4, policy.GraceDaysLeft(expiresAt, expiresAt.AddDate(0, 0, 3)))
	assert.Equal(t, 0, policy.GraceDaysLeft(expiresAt, expiresAt.AddDate(0, 0, 7)))
	assert.Equal(t, 0, policy.GraceDaysLeft(expiresAt, expiresAt.AddDate(0, 0, 12)))
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)
	from, to := MonthWindow(now)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, now, to)

	// First instant of a month yields an empty window, not last month's.
	first := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	from, to = MonthWindow(first)
	assert.Equal(t, first, from)
	assert.Equal(t, first, to)
}

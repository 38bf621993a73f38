package entitlements

import (
	"strconv"
	"time"

	"github.com/FanSeatApp/FanSeat/internal/pkg/env"
)

// DefaultGracePeriodDays is the post-expiry window during which prior-plan
// entitlements remain in force to avoid an abrupt lockout.
const DefaultGracePeriodDays = 7

// GracePolicy computes grace-window membership purely from expires_at and
// now. It never reads the stored subscription status: the status column lags
// reality until the sweeper runs, so keying grace off it would grant or deny
// entitlement incorrectly for up to a full sweep interval.
type GracePolicy struct {
	Days int
}

// NewGracePolicy returns a policy with the given grace length in days.
// Non-positive values fall back to the default.
func NewGracePolicy(days int) GracePolicy {
	if days <= 0 {
		days = DefaultGracePeriodDays
	}
	return GracePolicy{Days: days}
}

// NewGracePolicyFromEnv builds the policy from GRACE_PERIOD_DAYS.
func NewGracePolicyFromEnv() GracePolicy {
	days, err := strconv.Atoi(env.GetEnv("GRACE_PERIOD_DAYS", strconv.Itoa(DefaultGracePeriodDays)))
	if err != nil {
		days = DefaultGracePeriodDays
	}
	return NewGracePolicy(days)
}

// DaysSinceExpiry returns the number of whole days elapsed since expires_at,
// or 0 when the subscription has not expired yet.
func (g GracePolicy) DaysSinceExpiry(expiresAt, now time.Time) int {
	if now.Before(expiresAt) {
		return 0
	}
	return int(now.Sub(expiresAt).Hours() / 24)
}

// IsInGrace reports whether now falls inside the grace window. A
// subscription that has not expired yet is "current", never "in grace".
func (g GracePolicy) IsInGrace(expiresAt, now time.Time) bool {
	if now.Before(expiresAt) {
		return false
	}
	return g.DaysSinceExpiry(expiresAt, now) <= g.Days
}

// GraceDaysLeft returns the remaining grace days, or 0 when the window does
// not apply (not expired, or already past the window).
func (g GracePolicy) GraceDaysLeft(expiresAt, now time.Time) int {
	if !g.IsInGrace(expiresAt, now) {
		return 0
	}
	left := g.Days - g.DaysSinceExpiry(expiresAt, now)
	if left < 0 {
		return 0
	}
	return left
}

// MonthWindow returns the half-open interval [start of the calendar month
// containing now, now) used for monthly quota counting. Scoping counts to
// this window on the resource's creation timestamp is what resets monthly
// counters implicitly at the month boundary.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, now
}

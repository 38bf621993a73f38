package entitlements

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FanSeatApp/FanSeat/app/models"
)

var testNow = time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

type fakeSubs struct {
	sub *models.Subscription
	err error
}

func (f *fakeSubs) GetCurrentByVenue(venueID uint) (*models.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.sub == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.sub, nil
}

type fakePlans struct {
	plans map[uint]*models.Plan
	err   error
}

func (f *fakePlans) GetByID(id uint) (*models.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	plan, ok := f.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

type fakeUsage struct {
	branches int64
	matches  int64
	bookings int64
	staff    int64
	offers   int64
	err      error

	matchWindow   [2]time.Time
	bookingWindow [2]time.Time
}

func (f *fakeUsage) CountBranches(venueID uint) (int64, error) {
	return f.branches, f.err
}

func (f *fakeUsage) CountMatchesInWindow(venueID uint, from, to time.Time) (int64, error) {
	f.matchWindow = [2]time.Time{from, to}
	return f.matches, f.err
}

func (f *fakeUsage) CountBookingsInWindow(venueID uint, from, to time.Time) (int64, error) {
	f.bookingWindow = [2]time.Time{from, to}
	return f.bookings, f.err
}

func (f *fakeUsage) CountAcceptedStaff(venueID uint) (int64, error) {
	return f.staff, f.err
}

func (f *fakeUsage) CountActiveOffers(venueID uint) (int64, error) {
	return f.offers, f.err
}

func intPtr(n int) *int { return &n }

func starterPlan() *models.Plan {
	return &models.Plan{
		ID:                 2,
		Slug:               "starter",
		Name:               "Starter",
		IsActive:           true,
		MaxBranches:        intPtr(3),
		MaxMatchesPerMonth: intPtr(50),
		MaxStaffMembers:    intPtr(10),
		MaxOffers:          intPtr(5),
		HasAnalytics:       true,
		HasChat:            true,
	}
}

func activeSubscription(planID uint) *models.Subscription {
	return &models.Subscription{
		ID:        1,
		VenueID:   1,
		PlanID:    planID,
		Status:    models.SubscriptionStatusActive,
		StartsAt:  testNow.AddDate(0, -1, 0),
		ExpiresAt: testNow.AddDate(0, 1, 0),
	}
}

func newTestEvaluator(sub *models.Subscription, plan *models.Plan, usage *fakeUsage) *Evaluator {
	plans := map[uint]*models.Plan{}
	if plan != nil {
		plans[plan.ID] = plan
	}
	ev := NewEvaluator(&fakeSubs{sub: sub}, &fakePlans{plans: plans}, usage, NewGracePolicy(7))
	ev.Now = func() time.Time { return testNow }
	return ev
}

func TestResolveStates(t *testing.T) {
	plan := starterPlan()

	t.Run("no subscription", func(t *testing.T) {
		ev := newTestEvaluator(nil, plan, &fakeUsage{})
		res, err := ev.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, StateNone, res.State)
		assert.Nil(t, res.Subscription)
		assert.Nil(t, res.Plan)
	})

	t.Run("cancelled overrides future expiry", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.Status = models.SubscriptionStatusCancelled
		ev := newTestEvaluator(sub, plan, &fakeUsage{})
		res, err := ev.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, StateNone, res.State)
		assert.NotNil(t, res.Subscription)
	})

	t.Run("current loads plan", func(t *testing.T) {
		ev := newTestEvaluator(activeSubscription(plan.ID), plan, &fakeUsage{})
		res, err := ev.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, StateCurrent, res.State)
		require.NotNil(t, res.Plan)
		assert.Equal(t, "starter", res.Plan.Slug)
	})

	t.Run("expired three days sits in grace", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.ExpiresAt = testNow.AddDate(0, 0, -3)
		ev := newTestEvaluator(sub, plan, &fakeUsage{})
		res, err := ev.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, StateGrace, res.State)
		require.NotNil(t, res.Plan)
	})

	t.Run("stored status expired still resolves grace", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.ExpiresAt = testNow.AddDate(0, 0, -3)
		sub.Status = models.SubscriptionStatusExpired
		ev := newTestEvaluator(sub, plan, &fakeUsage{})
		res, err := ev.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, StateGrace, res.State)
	})

	t.Run("expired ten days is lapsed", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.ExpiresAt = testNow.AddDate(0, 0, -10)
		ev := newTestEvaluator(sub, plan, &fakeUsage{})
		res, err := ev.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, StateLapsed, res.State)
		assert.Nil(t, res.Plan)
	})

	t.Run("missing plan is an engine fault", func(t *testing.T) {
		sub := activeSubscription(99)
		ev := newTestEvaluator(sub, plan, &fakeUsage{})
		_, err := ev.Resolve(1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPlanMissing)
	})

	t.Run("store error propagates", func(t *testing.T) {
		ev := NewEvaluator(&fakeSubs{err: errors.New("connection refused")}, &fakePlans{}, &fakeUsage{}, NewGracePolicy(7))
		ev.Now = func() time.Time { return testNow }
		_, err := ev.Resolve(1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestEvaluateLimits(t *testing.T) {
	plan := starterPlan()

	t.Run("under limit allows", func(t *testing.T) {
		ev := newTestEvaluator(activeSubscription(plan.ID), plan, &fakeUsage{branches: 1})
		dec, err := ev.CanCreateBranch(1)
		require.NoError(t, err)
		assert.True(t, dec.Allowed)
		assert.Empty(t, dec.Reason)
		require.NotNil(t, dec.Limit)
		assert.Equal(t, 3, *dec.Limit)
		assert.Equal(t, 1, dec.Current)
	})

	t.Run("at limit denies", func(t *testing.T) {
		ev := newTestEvaluator(activeSubscription(plan.ID), plan, &fakeUsage{branches: 3})
		dec, err := ev.CanCreateBranch(1)
		require.NoError(t, err)
		assert.False(t, dec.Allowed)
		assert.Equal(t, ReasonBranchLimitReached, dec.Reason)
		assert.Equal(t, 3, dec.Current)
	})

	t.Run("over limit denies", func(t *testing.T) {
		ev := newTestEvaluator(activeSubscription(plan.ID), plan, &fakeUsage{staff: 12})
		dec, err := ev.CanAddStaff(1)
		require.NoError(t, err)
		assert.False(t, dec.Allowed)
		assert.Equal(t, ReasonStaffLimitReached, dec.Reason)
	})

	t.Run("booking limit at cap denies", func(t *testing.T) {
		capped := starterPlan()
		capped.MaxBookingsPerMonth = intPtr(100)
		ev := newTestEvaluator(activeSubscription(capped.ID), capped, &fakeUsage{bookings: 100})
		dec, err := ev.CanCreateBooking(1)
		require.NoError(t, err)
		assert.False(t, dec.Allowed)
		assert.Equal(t, ReasonBookingLimitReached, dec.Reason)
	})

	t.Run("nil limit means unlimited", func(t *testing.T) {
		unlimited := &models.Plan{ID: 4, Slug: "unlimited", IsActive: true}
		ev := newTestEvaluator(activeSubscription(unlimited.ID), unlimited, &fakeUsage{branches: 100000})
		dec, err := ev.CanCreateBranch(1)
		require.NoError(t, err)
		assert.True(t, dec.Allowed)
		assert.Nil(t, dec.Limit)
		assert.Equal(t, 100000, dec.Current)
	})

	t.Run("no subscription denial carries usage", func(t *testing.T) {
		ev := newTestEvaluator(nil, plan, &fakeUsage{offers: 2})
		dec, err := ev.CanCreateOffer(1)
		require.NoError(t, err)
		assert.False(t, dec.Allowed)
		assert.Equal(t, ReasonNoSubscription, dec.Reason)
		assert.Nil(t, dec.Limit)
		assert.Equal(t, 2, dec.Current)
	})

	t.Run("lapsed denial", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.ExpiresAt = testNow.AddDate(0, 0, -10)
		ev := newTestEvaluator(sub, plan, &fakeUsage{matches: 1})
		dec, err := ev.CanCreateMatch(1)
		require.NoError(t, err)
		assert.False(t, dec.Allowed)
		assert.Equal(t, ReasonSubscriptionExpired, dec.Reason)
	})

	t.Run("grace keeps limits enforced", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.ExpiresAt = testNow.AddDate(0, 0, -3)

		ev := newTestEvaluator(sub, plan, &fakeUsage{matches: 10})
		dec, err := ev.CanCreateMatch(1)
		require.NoError(t, err)
		assert.True(t, dec.Allowed)

		ev = newTestEvaluator(sub, plan, &fakeUsage{matches: 50})
		dec, err = ev.CanCreateMatch(1)
		require.NoError(t, err)
		assert.False(t, dec.Allowed)
		assert.Equal(t, ReasonMatchLimitReached, dec.Reason)
	})

	t.Run("monthly counts use the calendar month window", func(t *testing.T) {
		usage := &fakeUsage{matches: 5}
		ev := newTestEvaluator(activeSubscription(plan.ID), plan, usage)
		_, err := ev.CanCreateMatch(1)
		require.NoError(t, err)

		wantFrom, wantTo := MonthWindow(testNow)
		assert.Equal(t, wantFrom, usage.matchWindow[0])
		assert.Equal(t, wantTo, usage.matchWindow[1])
	})

	t.Run("usage source error propagates", func(t *testing.T) {
		ev := newTestEvaluator(activeSubscription(plan.ID), plan, &fakeUsage{err: errors.New("timeout")})
		_, err := ev.CanCreateBranch(1)
		require.Error(t, err)
	})
}

func TestBranchLimitWalkthrough(t *testing.T) {
	// A single-branch plan allows the first creation and denies the second.
	plan := &models.Plan{ID: 1, Slug: "free", IsActive: true, MaxBranches: intPtr(1)}
	usage := &fakeUsage{}

	ev := newTestEvaluator(activeSubscription(plan.ID), plan, usage)
	dec, err := ev.CanCreateBranch(1)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Equal(t, 0, dec.Current)

	usage.branches = 1
	dec, err = ev.CanCreateBranch(1)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, ReasonBranchLimitReached, dec.Reason)
	assert.Equal(t, 1, dec.Current)
}

func TestEvaluateDispatch(t *testing.T) {
	plan := starterPlan()
	ev := newTestEvaluator(activeSubscription(plan.ID), plan, &fakeUsage{})

	for _, action := range []Action{ActionCreateBranch, ActionCreateMatch, ActionCreateBooking, ActionAddStaff, ActionCreateOffer} {
		dec, err := ev.Evaluate(1, action)
		require.NoError(t, err, "action %s", action)
		assert.True(t, dec.Allowed, "action %s", action)
	}

	_, err := ev.Evaluate(1, Action("delete_everything"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestHasFeature(t *testing.T) {
	plan := starterPlan()

	t.Run("current plan grants its flags", func(t *testing.T) {
		ev := newTestEvaluator(activeSubscription(plan.ID), plan, &fakeUsage{})
		got, err := ev.HasFeature(1, models.FeatureAnalytics)
		require.NoError(t, err)
		assert.True(t, got)

		got, err = ev.HasFeature(1, models.FeatureBranding)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("grace keeps features", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.ExpiresAt = testNow.AddDate(0, 0, -2)
		ev := newTestEvaluator(sub, plan, &fakeUsage{})
		got, err := ev.HasFeature(1, models.FeatureAnalytics)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("lapsed loses every feature", func(t *testing.T) {
		sub := activeSubscription(plan.ID)
		sub.ExpiresAt = testNow.AddDate(0, 0, -10)
		ev := newTestEvaluator(sub, plan, &fakeUsage{})
		got, err := ev.HasFeature(1, models.FeatureAnalytics)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("no subscription has no features", func(t *testing.T) {
		ev := newTestEvaluator(nil, plan, &fakeUsage{})
		got, err := ev.HasFeature(1, models.FeatureChat)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

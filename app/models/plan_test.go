package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limit(n int) *int { return &n }

func TestPlanLimitFor(t *testing.T) {
	plan := &Plan{
		MaxBranches:         limit(3),
		MaxMatchesPerMonth:  limit(50),
		MaxBookingsPerMonth: nil,
		MaxStaffMembers:     limit(10),
		MaxOffers:           limit(5),
	}

	require.NotNil(t, plan.LimitFor(ResourceBranches))
	assert.Equal(t, 3, *plan.LimitFor(ResourceBranches))
	assert.Equal(t, 50, *plan.LimitFor(ResourceMatches))
	assert.Nil(t, plan.LimitFor(ResourceBookings))
	assert.Equal(t, 10, *plan.LimitFor(ResourceStaff))
	assert.Equal(t, 5, *plan.LimitFor(ResourceOffers))
	assert.Nil(t, plan.LimitFor(Resource("widgets")))
}

func TestPlanHasFeature(t *testing.T) {
	plan := &Plan{
		HasAnalytics: true,
		HasChat:      true,
	}

	assert.True(t, plan.HasFeature(FeatureAnalytics))
	assert.True(t, plan.HasFeature(FeatureChat))
	assert.False(t, plan.HasFeature(FeatureBranding))
	assert.False(t, plan.HasFeature(FeaturePrioritySupport))
	assert.False(t, plan.HasFeature(FeatureQRScanner))
	assert.False(t, plan.HasFeature(FeatureOccupancyTracking))
	assert.False(t, plan.HasFeature(Feature("time_travel")))
}

func TestPlanFeatureMap(t *testing.T) {
	plan := &Plan{HasAnalytics: true, HasQRScanner: true}

	m := plan.FeatureMap()
	assert.Len(t, m, len(AllFeatures))
	assert.True(t, m[FeatureAnalytics])
	assert.True(t, m[FeatureQRScanner])
	assert.False(t, m[FeatureBranding])
	assert.False(t, m[FeatureChat])
}

package entitlements

import (
	"fmt"

	"github.com/FanSeatApp/FanSeat/app/models"
)

// UsagePair is a current/limit pair for one resource. Limit nil means the
// plan places no cap on the resource.
type UsagePair struct {
	Current int  `json:"current"`
	Limit   *int `json:"limit"`
}

// SummaryUsage groups the usage pairs of every limited resource.
type SummaryUsage struct {
	Branches          UsagePair `json:"branches"`
	MatchesThisMonth  UsagePair `json:"matches_this_month"`
	BookingsThisMonth UsagePair `json:"bookings_this_month"`
	StaffMembers      UsagePair `json:"staff_members"`
	Offers            UsagePair `json:"offers"`
}

// GraceInfo reports grace-window membership for the dashboard banner.
type GraceInfo struct {
	InGrace  bool `json:"in_grace"`
	DaysLeft int  `json:"days_left"`
}

// Summary is the full usage/limits/features report for a venue, consumed by
// the operator dashboard.
type Summary struct {
	Plan        *models.Plan            `json:"plan"`
	State       State                   `json:"state"`
	Usage       SummaryUsage            `json:"usage"`
	Features    map[models.Feature]bool `json:"features"`
	GracePeriod GraceInfo               `json:"grace_period"`
}

// BuildSummary assembles the usage report for a venue. With no subscription
// at all the plan is nil and usage is zeroed; a lapsed subscription keeps its
// plan visible for reporting but grants no features.
func (e *Evaluator) BuildSummary(venueID uint) (*Summary, error) {
	res, err := e.Resolve(venueID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		State:    res.State,
		Features: map[models.Feature]bool{},
	}

	if res.State == StateNone {
		return summary, nil
	}

	if res.State == StateLapsed {
		// Plan is re-read for reporting only; entitlement stays off.
		plan, err := e.plans.GetByID(res.Subscription.PlanID)
		if err == nil {
			summary.Plan = plan
		}
		for _, f := range models.AllFeatures {
			summary.Features[f] = false
		}
	} else {
		summary.Plan = res.Plan
		summary.Features = res.Plan.FeatureMap()
	}

	usage, err := e.collectUsage(venueID, summary.Plan)
	if err != nil {
		return nil, fmt.Errorf("build usage summary for venue %d: %w", venueID, err)
	}
	summary.Usage = usage

	now := e.Now()
	expiresAt := res.Subscription.ExpiresAt
	summary.GracePeriod = GraceInfo{
		InGrace:  res.State == StateGrace,
		DaysLeft: e.grace.GraceDaysLeft(expiresAt, now),
	}
	return summary, nil
}

func (e *Evaluator) collectUsage(venueID uint, plan *models.Plan) (SummaryUsage, error) {
	var usage SummaryUsage

	pairs := []struct {
		resource models.Resource
		dst      *UsagePair
	}{
		{models.ResourceBranches, &usage.Branches},
		{models.ResourceMatches, &usage.MatchesThisMonth},
		{models.ResourceBookings, &usage.BookingsThisMonth},
		{models.ResourceStaff, &usage.StaffMembers},
		{models.ResourceOffers, &usage.Offers},
	}
	for _, p := range pairs {
		current, err := e.currentUsage(venueID, p.resource)
		if err != nil {
			return SummaryUsage{}, err
		}
		p.dst.Current = current
		if plan != nil {
			p.dst.Limit = plan.LimitFor(p.resource)
		}
	}
	return usage, nil
}

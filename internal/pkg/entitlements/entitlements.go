package entitlements

import (
	"errors"
	"fmt"
	"time"

	"github.com/FanSeatApp/FanSeat/app/models"
	"gorm.io/gorm"
)

// State is the effective subscription state resolved for gating purposes.
// It is computed from (subscription, now) alone; the persisted status column
// only matters for the cancelled override.
type State string

const (
	StateNone    State = "none"
	StateCurrent State = "current"
	StateGrace   State = "grace"
	StateLapsed  State = "lapsed"
)

// Entitled reports whether the state grants plan-level entitlements. Grace
// evaluates exactly like current: it postpones the hard lockout without
// relaxing or tightening the plan's own numbers.
func (s State) Entitled() bool {
	return s == StateCurrent || s == StateGrace
}

// Action is a gated operation a venue may attempt.
type Action string

const (
	ActionCreateBranch  Action = "create_branch"
	ActionCreateMatch   Action = "create_match"
	ActionCreateBooking Action = "create_booking"
	ActionAddStaff      Action = "add_staff"
	ActionCreateOffer   Action = "create_offer"
)

// Machine-readable denial reasons. These strings are part of the API
// contract with the dashboard and mobile clients.
const (
	ReasonNoSubscription      = "No active subscription"
	ReasonSubscriptionExpired = "Subscription expired"
	ReasonBranchLimitReached  = "Branch limit reached"
	ReasonMatchLimitReached   = "Monthly match limit reached"
	ReasonBookingLimitReached = "Monthly booking limit reached"
	ReasonStaffLimitReached   = "Staff limit reached"
	ReasonOfferLimitReached   = "Offer limit reached"
)

// ErrPlanMissing flags a data-integrity fault: a subscription references a
// plan the catalog does not know. This is an engine error, never a denial.
var ErrPlanMissing = errors.New("subscription references a missing plan")

// ErrUnknownAction flags an Evaluate call with an action the engine does not gate.
var ErrUnknownAction = errors.New("unknown gated action")

// Decision is the outcome of a gating check. Denial is a normal, typed
// return value, not an error. Limit nil means unlimited; Current is always
// populated for observability, even when the check passes.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Limit   *int   `json:"limit"`
	Current int    `json:"current"`
}

// SubscriptionSource supplies the current subscription record per venue.
type SubscriptionSource interface {
	GetCurrentByVenue(venueID uint) (*models.Subscription, error)
}

// PlanSource supplies plan definitions by id.
type PlanSource interface {
	GetByID(id uint) (*models.Plan, error)
}

// UsageSource supplies live resource counts per venue. Monthly counts are
// window-scoped on the resource's creation timestamp.
type UsageSource interface {
	CountBranches(venueID uint) (int64, error)
	CountMatchesInWindow(venueID uint, from, to time.Time) (int64, error)
	CountBookingsInWindow(venueID uint, from, to time.Time) (int64, error)
	CountAcceptedStaff(venueID uint) (int64, error)
	CountActiveOffers(venueID uint) (int64, error)
}

// Evaluator answers "may venue X do Y" and "does venue X have feature F".
// It is stateless and side-effect-free, safe for concurrent use from any
// number of request handlers without synchronization.
//
// Caller contract: a passing check is a read-only decision separate from the
// caller's insert. Two concurrent requests can both pass and both create,
// momentarily exceeding the limit. Callers needing strict enforcement must
// wrap check+insert in one transaction with a row lock on the counted table;
// otherwise enforcement is best-effort.
type Evaluator struct {
	subs  SubscriptionSource
	plans PlanSource
	usage UsageSource
	grace GracePolicy

	// Now is the clock used for all temporal decisions; tests override it.
	Now func() time.Time
}

// NewEvaluator creates an evaluator over the given sources.
func NewEvaluator(subs SubscriptionSource, plans PlanSource, usage UsageSource, grace GracePolicy) *Evaluator {
	return &Evaluator{
		subs:  subs,
		plans: plans,
		usage: usage,
		grace: grace,
		Now:   time.Now,
	}
}

// Resolution carries the resolved effective state together with the records
// it was derived from. Subscription and Plan are nil when not applicable.
type Resolution struct {
	State        State
	Subscription *models.Subscription
	Plan         *models.Plan
}

// Resolve computes the effective state of a venue's subscription.
//
// The stored status is deliberately ignored except for the cancelled
// override: between expiry and the next sweep the column may still read
// "active", and after a sweep a subscription can be "expired" yet still
// inside its grace window. Only expires_at vs now decides.
func (e *Evaluator) Resolve(venueID uint) (Resolution, error) {
	sub, err := e.subs.GetCurrentByVenue(venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolution{State: StateNone}, nil
		}
		return Resolution{}, fmt.Errorf("load subscription for venue %d: %w", venueID, err)
	}

	if sub.IsCancelled() {
		return Resolution{State: StateNone, Subscription: sub}, nil
	}

	now := e.Now()
	state := StateCurrent
	if !now.Before(sub.ExpiresAt) {
		if e.grace.IsInGrace(sub.ExpiresAt, now) {
			state = StateGrace
		} else {
			state = StateLapsed
		}
	}

	res := Resolution{State: state, Subscription: sub}
	if !state.Entitled() {
		return res, nil
	}

	plan, err := e.plans.GetByID(sub.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolution{}, fmt.Errorf("venue %d plan %d: %w", venueID, sub.PlanID, ErrPlanMissing)
		}
		return Resolution{}, fmt.Errorf("load plan %d: %w", sub.PlanID, err)
	}
	res.Plan = plan
	return res, nil
}

// Evaluate runs the gating check for a named action.
func (e *Evaluator) Evaluate(venueID uint, action Action) (Decision, error) {
	switch action {
	case ActionCreateBranch:
		return e.CanCreateBranch(venueID)
	case ActionCreateMatch:
		return e.CanCreateMatch(venueID)
	case ActionCreateBooking:
		return e.CanCreateBooking(venueID)
	case ActionAddStaff:
		return e.CanAddStaff(venueID)
	case ActionCreateOffer:
		return e.CanCreateOffer(venueID)
	default:
		return Decision{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// CanCreateBranch gates sub-location creation against max_branches.
func (e *Evaluator) CanCreateBranch(venueID uint) (Decision, error) {
	return e.evaluateLimit(venueID, models.ResourceBranches, ReasonBranchLimitReached)
}

// CanCreateMatch gates scheduled-event creation against max_matches_per_month.
func (e *Evaluator) CanCreateMatch(venueID uint) (Decision, error) {
	return e.evaluateLimit(venueID, models.ResourceMatches, ReasonMatchLimitReached)
}

// CanCreateBooking gates reservation intake against max_bookings_per_month.
func (e *Evaluator) CanCreateBooking(venueID uint) (Decision, error) {
	return e.evaluateLimit(venueID, models.ResourceBookings, ReasonBookingLimitReached)
}

// CanAddStaff gates staff invitations against max_staff_members.
func (e *Evaluator) CanAddStaff(venueID uint) (Decision, error) {
	return e.evaluateLimit(venueID, models.ResourceStaff, ReasonStaffLimitReached)
}

// CanCreateOffer gates promotional-offer creation against max_offers.
func (e *Evaluator) CanCreateOffer(venueID uint) (Decision, error) {
	return e.evaluateLimit(venueID, models.ResourceOffers, ReasonOfferLimitReached)
}

// HasFeature resolves a plan feature flag for a venue. Venues without an
// entitled subscription have no features, regardless of the underlying plan.
func (e *Evaluator) HasFeature(venueID uint, flag models.Feature) (bool, error) {
	res, err := e.Resolve(venueID)
	if err != nil {
		return false, err
	}
	if !res.State.Entitled() {
		return false, nil
	}
	return res.Plan.HasFeature(flag), nil
}

func (e *Evaluator) evaluateLimit(venueID uint, resource models.Resource, limitReason string) (Decision, error) {
	res, err := e.Resolve(venueID)
	if err != nil {
		return Decision{}, err
	}

	current, err := e.currentUsage(venueID, resource)
	if err != nil {
		return Decision{}, fmt.Errorf("count %s for venue %d: %w", resource, venueID, err)
	}

	switch res.State {
	case StateNone:
		return Decision{Allowed: false, Reason: ReasonNoSubscription, Current: current}, nil
	case StateLapsed:
		return Decision{Allowed: false, Reason: ReasonSubscriptionExpired, Current: current}, nil
	}

	limit := res.Plan.LimitFor(resource)
	if limit == nil {
		return Decision{Allowed: true, Current: current}, nil
	}
	// Strict comparison: an at-limit venue is denied the next creation.
	if current < *limit {
		return Decision{Allowed: true, Limit: limit, Current: current}, nil
	}
	return Decision{Allowed: false, Reason: limitReason, Limit: limit, Current: current}, nil
}

func (e *Evaluator) currentUsage(venueID uint, resource models.Resource) (int, error) {
	var (
		count int64
		err   error
	)
	switch resource {
	case models.ResourceBranches:
		count, err = e.usage.CountBranches(venueID)
	case models.ResourceMatches:
		from, to := MonthWindow(e.Now())
		count, err = e.usage.CountMatchesInWindow(venueID, from, to)
	case models.ResourceBookings:
		from, to := MonthWindow(e.Now())
		count, err = e.usage.CountBookingsInWindow(venueID, from, to)
	case models.ResourceStaff:
		count, err = e.usage.CountAcceptedStaff(venueID)
	case models.ResourceOffers:
		count, err = e.usage.CountActiveOffers(venueID)
	default:
		return 0, fmt.Errorf("unknown resource %q", resource)
	}
	return int(count), err
}

package subscription

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("subscription: not found")
	ErrInvalidPlan = errors.New("subscription: unsupported plan")
)

type Plan string

const (
	PlanMonthly Plan = "monthly"
	PlanYearly  Plan = "yearly"
)

// Duration returns the access window a single renewal of the plan grants.
func (p Plan) Duration() (time.Duration, error) {
	switch p {
	case PlanMonthly:
		return 30 * 24 * time.Hour, nil
	case PlanYearly:
		return 365 * 24 * time.Hour, nil
	default:
		return 0, ErrInvalidPlan
	}
}

type Status string

const (
	StatusActive         Status = "ACTIVE"
	StatusExpired        Status = "EXPIRED"
	StatusNoSubscription Status = "NO_SUBSCRIPTION"
)

// Subscription is the single access record a tenant holds. Renewal
// overwrites it; no history is kept.
type Subscription struct {
	TenantID int64
	Plan     Plan
	StartAt  time.Time
	EndAt    time.Time
	Status   Status
}

// Renew computes the next access window. A renewal before expiry extends
// from the previous end rather than from now, so no paid time is lost.
// prev may be nil when the tenant has no record yet.
func Renew(prev *Subscription, tenantID int64, plan Plan, now time.Time) (*Subscription, error) {
	d, err := plan.Duration()
	if err != nil {
		return nil, err
	}

	start := now
	if prev != nil && prev.EndAt.After(now) {
		start = prev.EndAt
	}

	return &Subscription{
		TenantID: tenantID,
		Plan:     plan,
		StartAt:  start,
		EndAt:    start.Add(d),
		Status:   StatusActive,
	}, nil
}

// StatusAt evaluates the subscription against the given instant.
func (s *Subscription) StatusAt(now time.Time) Status {
	if now.After(s.EndAt) {
		return StatusExpired
	}
	return StatusActive
}

func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

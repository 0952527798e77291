package subscription

import "time"

// Tier identifies a pricing level. Every user has a tier even without a
// subscription row; free is the implicit default.
type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierElite Tier = "elite"
)

// ParseTier normalizes a tier string, defaulting unknown values to free.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierPro:
		return TierPro
	case TierElite:
		return TierElite
	default:
		return TierFree
	}
}

// Status represents the current state of a subscription.
type Status string

const (
	StatusTrialing Status = "trialing"
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
)

const (
	// Unlimited indicates no limit for a metric (-1 chosen for SQL compatibility)
	Unlimited int64 = -1
)

// Money represents a monetary amount in the smallest currency unit.
type Money struct {
	Amount   int64  `yaml:"amount"`   // cents for USD
	Currency string `yaml:"currency"` // ISO 4217 code
}

// BillingInterval represents the billing frequency for a plan.
type BillingInterval string

const (
	BillingIntervalNone    BillingInterval = "none" // free plan, no billing
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalAnnual  BillingInterval = "annual"
)

// Subscription is a user's billing state. Each user has at most one row;
// UserID is the primary key.
type Subscription struct {
	UserID             string
	Tier               Tier
	Status             Status
	ProviderCustomerID string // billing provider's customer ID (ctm_xxx)
	ProviderSubID      string // billing provider's subscription ID (sub_xxx)
	PriceID            string
	CurrentPeriodEnd   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsActive reports whether the subscription grants paid access.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive || s.Status == StatusTrialing
}

// EffectiveTier returns the tier the user is entitled to right now.
// Canceled and past-due subscriptions fall back to free.
func (s *Subscription) EffectiveTier() Tier {
	if !s.IsActive() {
		return TierFree
	}
	return s.Tier
}

// FreeSubscription is the implicit record for users who never paid.
func FreeSubscription(userID string) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		UserID:    userID,
		Tier:      TierFree,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

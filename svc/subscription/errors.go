package subscription

import "errors"

var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrFailedToLoadPlans    = errors.New("failed to load subscription plans")

	// Provider errors
	ErrMissingAPIKey              = errors.New("billing provider API key is required")
	ErrMissingWebhookSecret       = errors.New("billing provider webhook secret is required")
	ErrInvalidProviderEnvironment = errors.New("invalid billing provider environment")
	ErrWebhookVerificationFailed  = errors.New("webhook signature verification failed")
	ErrNoCheckoutURL              = errors.New("no checkout URL returned from provider")
	ErrNoPortalURL                = errors.New("no portal URL returned from provider")
	ErrMissingPriceID             = errors.New("price ID is required")
	ErrMissingUserID              = errors.New("user ID is required")
	ErrNotSubscribed              = errors.New("no paid subscription on record")
)

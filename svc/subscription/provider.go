package subscription

import (
	"context"
	"time"
)

// BillingProvider abstracts the payment provider. The provider hosts
// checkout and the customer portal; this service only tracks the
// resulting subscription state from webhooks.
type BillingProvider interface {
	// CreateCheckoutLink creates a hosted checkout session.
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)

	// GetCustomerPortalLink returns a temporary pre-authenticated link to
	// the provider's customer portal.
	GetCustomerPortalLink(ctx context.Context, sub *Subscription) (*PortalLink, error)

	// ParseWebhook validates the signature and normalizes the event.
	// Implementations must reject unverifiable payloads with
	// ErrWebhookVerificationFailed.
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

// CheckoutRequest contains data needed to create a checkout session.
type CheckoutRequest struct {
	PriceID    string
	UserID     string // carried through provider custom data, back on webhooks
	Email      string
	SuccessURL string
}

// CheckoutLink represents a hosted checkout session.
type CheckoutLink struct {
	URL       string
	SessionID string
	ExpiresAt time.Time
}

// PortalLink represents a customer portal session.
type PortalLink struct {
	URL       string
	CancelURL string
	ExpiresAt time.Time
}

// WebhookEvent is a provider event normalized to provider-independent
// fields.
type WebhookEvent struct {
	Type             EventType
	ProviderEvent    string // original provider event name
	SubscriptionID   string
	CustomerID       string // provider's customer ID
	UserID           string // our user ID, from checkout custom data
	Status           string
	PriceID          string
	CurrentPeriodEnd *time.Time
	Raw              map[string]any
}

// EventType represents the normalized billing event type.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionResumed   EventType = "subscription_resumed"

	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
)

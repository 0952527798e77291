package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle billing provider.
// Paddle is optional: when the API key is absent the server runs without
// billing and every user stays on the free tier.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
	SuccessURL    string `env:"PADDLE_CHECKOUT_SUCCESS_URL"`
}

// Enabled reports whether Paddle credentials are configured.
func (c PaddleConfig) Enabled() bool {
	return c.APIKey != "" && c.WebhookSecret != ""
}

// PaddleProvider implements BillingProvider for Paddle.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
	config   PaddleConfig
}

// NewPaddleProvider creates a new Paddle billing provider.
func NewPaddleProvider(config PaddleConfig) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProviderEnvironment, config.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleProvider{
		client:   client,
		verifier: paddle.NewWebhookVerifier(config.WebhookSecret),
		config:   config,
	}, nil
}

// CreateCheckoutLink creates a hosted checkout transaction in Paddle. The
// user ID travels in custom data and comes back on every webhook, which
// is how events are attributed to accounts.
func (p *PaddleProvider) CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error) {
	if req.PriceID == "" {
		return nil, ErrMissingPriceID
	}
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.PriceID,
		Quantity: 1,
	})

	txReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"user_id": req.UserID,
		},
	}
	if req.Email != "" {
		txReq.CustomData["email"] = req.Email
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = p.config.SuccessURL
	}
	if successURL != "" {
		txReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(successURL),
		}
	}

	tx, err := p.client.TransactionsClient.CreateTransaction(ctx, txReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle transaction: %w", err)
	}

	if tx.Checkout == nil || tx.Checkout.URL == nil || *tx.Checkout.URL == "" {
		return nil, ErrNoCheckoutURL
	}

	return &CheckoutLink{
		URL:       *tx.Checkout.URL,
		SessionID: tx.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

// GetCustomerPortalLink returns a link to Paddle's customer portal for an
// existing paid subscription.
func (p *PaddleProvider) GetCustomerPortalLink(ctx context.Context, sub *Subscription) (*PortalLink, error) {
	if sub == nil || sub.ProviderSubID == "" || sub.ProviderCustomerID == "" {
		return nil, ErrNotSubscribed
	}

	session, err := p.client.CustomerPortalSessionsClient.CreateCustomerPortalSession(ctx, &paddle.CreateCustomerPortalSessionRequest{
		CustomerID:      sub.ProviderCustomerID,
		SubscriptionIDs: []string{sub.ProviderSubID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle customer portal session: %w", err)
	}

	link := &PortalLink{
		URL:       session.URLs.General.Overview,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	for _, subURL := range session.URLs.Subscriptions {
		if subURL.ID == sub.ProviderSubID {
			link.CancelURL = subURL.CancelSubscription
			break
		}
	}

	if link.URL == "" {
		return nil, ErrNoPortalURL
	}
	return link, nil
}

// ParseWebhook verifies the Paddle-Signature header against the raw
// payload and normalizes the event.
func (p *PaddleProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	// The SDK verifier works on an http.Request, so reconstruct one.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for verification: %w", err)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWebhookVerificationFailed, err)
	}
	if !valid {
		return nil, ErrWebhookVerificationFailed
	}

	var paddleEvent struct {
		EventID   string         `json:"event_id"`
		EventType string         `json:"event_type"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &paddleEvent); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	event := &WebhookEvent{
		Type:          mapPaddleEventType(paddleEvent.EventType),
		ProviderEvent: paddleEvent.EventType,
		Raw:           paddleEvent.Data,
	}

	if id, ok := paddleEvent.Data["id"].(string); ok {
		event.SubscriptionID = id
	}
	if strings.HasPrefix(paddleEvent.EventType, "transaction.") {
		// Transactions reference their subscription separately.
		if subID, ok := paddleEvent.Data["subscription_id"].(string); ok {
			event.SubscriptionID = subID
		}
	}
	if customerID, ok := paddleEvent.Data["customer_id"].(string); ok {
		event.CustomerID = customerID
	}
	if status, ok := paddleEvent.Data["status"].(string); ok {
		event.Status = status
	}
	if customData, ok := paddleEvent.Data["custom_data"].(map[string]any); ok {
		if userID, ok := customData["user_id"].(string); ok {
			event.UserID = userID
		}
	}
	event.PriceID = extractPaddlePriceID(paddleEvent.Data)
	event.CurrentPeriodEnd = extractPaddlePeriodEnd(paddleEvent.Data)

	return event, nil
}

// extractPaddlePriceID digs the first item's price ID out of the event
// payload. Subscription events nest it under items[0].price.id,
// transaction events use items[0].price_id.
func extractPaddlePriceID(data map[string]any) string {
	items, ok := data["items"].([]any)
	if !ok || len(items) == 0 {
		return ""
	}
	item, ok := items[0].(map[string]any)
	if !ok {
		return ""
	}
	if priceID, ok := item["price_id"].(string); ok {
		return priceID
	}
	if price, ok := item["price"].(map[string]any); ok {
		if priceID, ok := price["id"].(string); ok {
			return priceID
		}
	}
	return ""
}

func extractPaddlePeriodEnd(data map[string]any) *time.Time {
	period, ok := data["current_billing_period"].(map[string]any)
	if !ok {
		return nil
	}
	endsAt, ok := period["ends_at"].(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339, endsAt)
	if err != nil {
		return nil
	}
	return &t
}

// mapPaddleEventType maps Paddle event types to internal EventType.
func mapPaddleEventType(paddleEvent string) EventType {
	switch paddleEvent {
	case "subscription.created":
		return EventSubscriptionCreated
	case "subscription.updated":
		return EventSubscriptionUpdated
	case "subscription.canceled":
		return EventSubscriptionCancelled
	case "subscription.resumed":
		return EventSubscriptionResumed
	case "transaction.completed", "transaction.payment_succeeded":
		return EventPaymentSucceeded
	case "transaction.payment_failed":
		return EventPaymentFailed
	default:
		return EventType(paddleEvent)
	}
}

// mapPaddleStatus maps Paddle subscription status strings to Status.
func mapPaddleStatus(paddleStatus string) Status {
	switch strings.ToLower(paddleStatus) {
	case "trialing":
		return StatusTrialing
	case "active":
		return StatusActive
	case "past_due":
		return StatusPastDue
	case "canceled", "cancelled":
		return StatusCanceled
	default:
		return Status(paddleStatus)
	}
}

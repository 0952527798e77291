package subscription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/careeros/backend/pkg/logger"
)

// Service tracks subscription state synchronized from billing provider
// webhooks and resolves the effective tier for limit enforcement.
type Service struct {
	plans    []Plan
	byPlanID map[string]Plan
	byPrice  map[string]Plan
	byTier   map[Tier]Plan
	provider BillingProvider
	store    Store
	logger   *slog.Logger
}

type Option func(*Service)

// WithLogger sets a custom logger for the service
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// WithProvider attaches a billing provider. Without one, webhook
// handling and link creation return ErrNotSubscribed.
func WithProvider(p BillingProvider) Option {
	return func(s *Service) {
		s.provider = p
	}
}

// NewService loads the plan catalog from src and builds the service.
// The store is required; the provider is optional so the server can run
// without billing credentials.
func NewService(ctx context.Context, src Source, store Store, opts ...Option) (*Service, error) {
	if src == nil {
		panic("subscription: Source is required")
	}
	if store == nil {
		panic("subscription: Store is required")
	}

	plans, err := src.Plans(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	s := &Service{
		plans:    plans,
		byPlanID: make(map[string]Plan, len(plans)),
		byPrice:  make(map[string]Plan, len(plans)),
		byTier:   make(map[Tier]Plan, len(plans)),
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, p := range plans {
		s.byPlanID[p.ID] = p
		s.byTier[p.Tier] = p
		if p.PriceID != "" {
			s.byPrice[p.PriceID] = p
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Plans returns the catalog.
func (s *Service) Plans() []Plan {
	return s.plans
}

// PlanByID looks up a plan by catalog ID.
func (s *Service) PlanByID(id string) (Plan, error) {
	plan, ok := s.byPlanID[id]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

// PlanForTier resolves the plan backing a tier. Unknown tiers fall back
// to the free plan.
func (s *Service) PlanForTier(tier Tier) Plan {
	if plan, ok := s.byTier[tier]; ok {
		return plan
	}
	return s.byTier[TierFree]
}

// GetSubscription returns the user's subscription, or the implicit free
// subscription when no row exists.
func (s *Service) GetSubscription(ctx context.Context, userID string) (*Subscription, error) {
	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return FreeSubscription(userID), nil
		}
		return nil, err
	}
	return sub, nil
}

// TierFor resolves the effective tier for limit checks. Any failure
// degrades to free: enforcement must never fail open to paid limits.
func (s *Service) TierFor(ctx context.Context, userID string) Tier {
	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSubscriptionNotFound) {
			s.logger.ErrorContext(ctx, "failed to resolve subscription tier",
				logger.UserID(userID),
				logger.Error(err),
				logger.Component("subscription"),
			)
		}
		return TierFree
	}
	return sub.EffectiveTier()
}

// LimitsFor returns the metric allowances for the user's effective tier.
func (s *Service) LimitsFor(ctx context.Context, userID string) map[string]int64 {
	return s.PlanForTier(s.TierFor(ctx, userID)).Limits
}

// HandleWebhook verifies and applies a billing provider event. Unknown
// event types and events without a user attribution are acknowledged and
// skipped; returning an error would make the provider retry forever.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.provider == nil {
		return ErrNotSubscribed
	}

	event, err := s.provider.ParseWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionResumed,
		EventPaymentSucceeded, EventPaymentFailed, EventSubscriptionCancelled:
	default:
		s.logger.DebugContext(ctx, "ignoring billing event",
			logger.EventType(string(event.Type)),
			slog.String("provider_event", event.ProviderEvent),
			logger.Component("subscription"),
		)
		return nil
	}

	if event.UserID == "" {
		s.logger.WarnContext(ctx, "billing event without user attribution",
			logger.EventType(string(event.Type)),
			slog.String("provider_subscription_id", event.SubscriptionID),
			logger.Component("subscription"),
		)
		return nil
	}

	return s.applyEvent(ctx, event)
}

func (s *Service) applyEvent(ctx context.Context, event *WebhookEvent) error {
	now := time.Now().UTC()

	sub, err := s.store.Get(ctx, event.UserID)
	if err != nil {
		if !errors.Is(err, ErrSubscriptionNotFound) {
			return err
		}
		sub = FreeSubscription(event.UserID)
		sub.CreatedAt = now
	}

	switch event.Type {
	case EventSubscriptionCancelled:
		sub.Status = StatusCanceled
		sub.Tier = TierFree
	case EventPaymentFailed:
		sub.Status = StatusPastDue
	default:
		if plan, ok := s.byPrice[event.PriceID]; ok {
			sub.Tier = plan.Tier
		} else if event.PriceID != "" {
			s.logger.WarnContext(ctx, "billing event references unknown price",
				slog.String("price_id", event.PriceID),
				logger.Component("subscription"),
			)
		}
		sub.Status = StatusActive
		if event.Status != "" {
			sub.Status = mapPaddleStatus(event.Status)
		}
	}

	if event.SubscriptionID != "" {
		sub.ProviderSubID = event.SubscriptionID
	}
	if event.CustomerID != "" {
		sub.ProviderCustomerID = event.CustomerID
	}
	if event.PriceID != "" {
		sub.PriceID = event.PriceID
	}
	if event.CurrentPeriodEnd != nil {
		sub.CurrentPeriodEnd = event.CurrentPeriodEnd
	}
	sub.UpdatedAt = now

	if err := s.store.Save(ctx, sub); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "subscription updated from billing event",
		logger.UserID(sub.UserID),
		logger.EventType(string(event.Type)),
		slog.String("tier", string(sub.Tier)),
		slog.String("status", string(sub.Status)),
		logger.Component("subscription"),
	)
	return nil
}

// CreateCheckoutLink starts a hosted checkout for the given catalog plan.
func (s *Service) CreateCheckoutLink(ctx context.Context, userID, email, planID string) (*CheckoutLink, error) {
	if s.provider == nil {
		return nil, ErrNotSubscribed
	}

	plan, err := s.PlanByID(planID)
	if err != nil {
		return nil, err
	}
	if plan.PriceID == "" {
		return nil, fmt.Errorf("%w: plan %s is not purchasable", ErrMissingPriceID, planID)
	}

	return s.provider.CreateCheckoutLink(ctx, CheckoutRequest{
		PriceID: plan.PriceID,
		UserID:  userID,
		Email:   email,
	})
}

// GetPortalLink returns a customer portal link for the user's paid
// subscription.
func (s *Service) GetPortalLink(ctx context.Context, userID string) (*PortalLink, error) {
	if s.provider == nil {
		return nil, ErrNotSubscribed
	}

	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return nil, ErrNotSubscribed
		}
		return nil, err
	}

	return s.provider.GetCustomerPortalLink(ctx, sub)
}

// Package billing exposes the billing HTTP surface: the provider webhook
// plus authenticated subscription, checkout, and portal endpoints.
package billing

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/careeros/backend/pkg/httpx"
	"github.com/careeros/backend/pkg/logger"
	authsvc "github.com/careeros/backend/svc/auth"
	"github.com/careeros/backend/svc/subscription"
)

// Webhook payloads are small JSON documents; anything bigger is abuse.
const maxWebhookBody = 256 << 10

// Deps holds the services the module mounts.
type Deps struct {
	Subscriptions *subscription.Service
	Tokens        *authsvc.TokenService
	Denylist      authsvc.Denylist
	Logger        *slog.Logger
}

// Router builds the /billing subtree. The webhook endpoint is public and
// authenticates through the provider signature instead of a bearer token.
func Router(deps Deps) chi.Router {
	h := &handlers{svc: deps.Subscriptions, log: deps.Logger}

	r := chi.NewRouter()
	r.Post("/webhook", h.webhook)

	r.Group(func(r chi.Router) {
		r.Use(authsvc.RequireAuth(deps.Tokens, deps.Denylist, deps.Logger))
		r.Get("/subscription", h.getSubscription)
		r.Post("/checkout", h.createCheckout)
		r.Get("/portal", h.getPortal)
	})

	return r
}

type handlers struct {
	svc *subscription.Service
	log *slog.Logger
}

type subscriptionResponse struct {
	Tier             string     `json:"tier"`
	Status           string     `json:"status"`
	PriceID          string     `json:"price_id,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
}

type checkoutRequest struct {
	PlanID string `json:"plan_id"`
}

type linkResponse struct {
	URL string `json:"url"`
}

func (h *handlers) webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httpx.Error(w, httpx.ErrBadRequest.WithMessage("failed to read request body"))
		return
	}

	signature := r.Header.Get("Paddle-Signature")
	if err := h.svc.HandleWebhook(r.Context(), payload, signature); err != nil {
		if errors.Is(err, subscription.ErrWebhookVerificationFailed) {
			h.log.WarnContext(r.Context(), "webhook rejected",
				logger.Error(err),
				logger.Component("billing"),
			)
			httpx.Error(w, httpx.ErrBadRequest.WithMessage("webhook verification failed"))
			return
		}
		h.log.ErrorContext(r.Context(), "webhook processing failed",
			logger.Error(err),
			logger.Component("billing"),
		)
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *handlers) getSubscription(w http.ResponseWriter, r *http.Request) {
	userID, err := authsvc.UserIDFromContext(r.Context())
	if err != nil {
		httpx.Error(w, httpx.ErrUnauthorized.WithMessage(err.Error()))
		return
	}

	sub, err := h.svc.GetSubscription(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, subscriptionResponse{
		Tier:             string(sub.EffectiveTier()),
		Status:           string(sub.Status),
		PriceID:          sub.PriceID,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
	})
}

func (h *handlers) createCheckout(w http.ResponseWriter, r *http.Request) {
	claims, err := authsvc.ClaimsFromContext(r.Context())
	if err != nil {
		httpx.Error(w, httpx.ErrUnauthorized.WithMessage(err.Error()))
		return
	}

	var req checkoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	link, err := h.svc.CreateCheckoutLink(r.Context(), claims.Subject, claims.Email, req.PlanID)
	if err != nil {
		httpx.Error(w, mapBillingError(err))
		return
	}

	httpx.JSON(w, http.StatusOK, linkResponse{URL: link.URL})
}

func (h *handlers) getPortal(w http.ResponseWriter, r *http.Request) {
	userID, err := authsvc.UserIDFromContext(r.Context())
	if err != nil {
		httpx.Error(w, httpx.ErrUnauthorized.WithMessage(err.Error()))
		return
	}

	link, err := h.svc.GetPortalLink(r.Context(), userID)
	if err != nil {
		httpx.Error(w, mapBillingError(err))
		return
	}

	httpx.JSON(w, http.StatusOK, linkResponse{URL: link.URL})
}

func mapBillingError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrPlanNotFound):
		return httpx.ErrNotFound.WithMessage("plan not found")
	case errors.Is(err, subscription.ErrMissingPriceID):
		return httpx.ErrBadRequest.WithMessage("plan is not purchasable")
	case errors.Is(err, subscription.ErrNotSubscribed):
		return httpx.ErrBadRequest.WithMessage("no paid subscription on record")
	default:
		return err
	}
}

// Package usage exposes the authenticated usage endpoint returning the
// current month's counters and tier limits.
package usage

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/careeros/backend/pkg/httpx"
	authsvc "github.com/careeros/backend/svc/auth"
	usagesvc "github.com/careeros/backend/svc/usage"
)

// Deps holds the services the module mounts.
type Deps struct {
	Usage    *usagesvc.Service
	Tokens   *authsvc.TokenService
	Denylist authsvc.Denylist
	Logger   *slog.Logger
}

// Router builds the /usage subtree.
func Router(deps Deps) chi.Router {
	h := &handlers{svc: deps.Usage}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authsvc.RequireAuth(deps.Tokens, deps.Denylist, deps.Logger))
		r.Get("/", h.snapshot)
		r.Post("/record", h.record)
	})

	return r
}

type handlers struct {
	svc *usagesvc.Service
}

type metricUsage struct {
	Used  int64 `json:"used"`
	Limit int64 `json:"limit"` // -1 means unlimited
}

type snapshotResponse struct {
	Month   string                 `json:"month"`
	Metrics map[string]metricUsage `json:"metrics"`
}

type recordRequest struct {
	Metric string `json:"metric"`
}

// record counts one unit of a metric for the authenticated user. Feature
// endpoints call the usage service directly; this route exists for
// clients that track activity happening outside the API.
func (h *handlers) record(w http.ResponseWriter, r *http.Request) {
	userID, err := authsvc.UserIDFromContext(r.Context())
	if err != nil {
		httpx.Error(w, httpx.ErrUnauthorized.WithMessage(err.Error()))
		return
	}

	var req recordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	if err := h.svc.Record(r.Context(), userID, usagesvc.Metric(req.Metric)); err != nil {
		switch {
		case errors.Is(err, usagesvc.ErrInvalidMetric):
			httpx.Error(w, httpx.ErrBadRequest.WithMessage("unknown usage metric"))
		case errors.Is(err, usagesvc.ErrLimitExceeded):
			httpx.Error(w, httpx.ErrPaymentRequired.WithMessage("usage limit reached for current plan"))
		default:
			httpx.Error(w, err)
		}
		return
	}

	httpx.NoContent(w)
}

func (h *handlers) snapshot(w http.ResponseWriter, r *http.Request) {
	userID, err := authsvc.UserIDFromContext(r.Context())
	if err != nil {
		httpx.Error(w, httpx.ErrUnauthorized.WithMessage(err.Error()))
		return
	}

	snap, err := h.svc.Snapshot(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	metrics := make(map[string]metricUsage, len(snap.Limits))
	for _, metric := range usagesvc.Metrics() {
		metrics[string(metric)] = metricUsage{
			Used:  snap.Counts.Of(metric),
			Limit: snap.Limits[metric],
		}
	}

	httpx.JSON(w, http.StatusOK, snapshotResponse{
		Month:   snap.Month,
		Metrics: metrics,
	})
}

// Package auth exposes the authentication HTTP surface: signup, login,
// logout, and the current-user endpoint.
package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/careeros/backend/pkg/httpx"
	"github.com/careeros/backend/pkg/logger"
	authsvc "github.com/careeros/backend/svc/auth"
)

// Deps holds the services the module mounts.
type Deps struct {
	Auth     *authsvc.Service
	Tokens   *authsvc.TokenService
	Denylist authsvc.Denylist // nil disables logout revocation
	Logger   *slog.Logger
}

// Router builds the /auth subtree. Signup and login are public; logout
// and /me require a valid bearer token.
func Router(deps Deps) chi.Router {
	h := &handlers{svc: deps.Auth, log: deps.Logger}

	r := chi.NewRouter()
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(authsvc.RequireAuth(deps.Tokens, deps.Denylist, deps.Logger))
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
	})

	return r
}

type handlers struct {
	svc *authsvc.Service
	log *slog.Logger
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u authsvc.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	result, err := h.svc.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		httpx.Error(w, mapAuthError(err))
		return
	}

	h.log.InfoContext(r.Context(), "user signed up",
		logger.UserID(result.User.ID),
		logger.Component("auth"),
	)
	httpx.JSON(w, http.StatusCreated, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, mapAuthError(err))
		return
	}

	httpx.JSON(w, http.StatusOK, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	token, err := authsvc.TokenFromContext(r.Context())
	if err != nil {
		httpx.Error(w, httpx.ErrUnauthorized.WithMessage(err.Error()))
		return
	}

	if err := h.svc.Logout(r.Context(), token); err != nil {
		h.log.ErrorContext(r.Context(), "logout failed", logger.Error(err), logger.Component("auth"))
		httpx.Error(w, err)
		return
	}

	httpx.NoContent(w)
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	userID, err := authsvc.UserIDFromContext(r.Context())
	if err != nil {
		httpx.Error(w, httpx.ErrUnauthorized.WithMessage(err.Error()))
		return
	}

	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		httpx.Error(w, mapAuthError(err))
		return
	}

	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

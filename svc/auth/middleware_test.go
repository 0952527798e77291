package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careeros/backend/svc/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.ClaimsFromContext(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-Subject", claims.Subject)
		w.WriteHeader(http.StatusOK)
	})
}

func errorMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error.Message
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	newRequest := func(authorization string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		if authorization != "" {
			r.Header.Set("Authorization", authorization)
		}
		return r
	}

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		mw := auth.RequireAuth(tokens, nil, discardLogger())
		rec := httptest.NewRecorder()
		mw(protectedHandler(t)).ServeHTTP(rec, newRequest(""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "missing authorization header", errorMessage(t, rec.Body))
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()

		token, err := tokens.Issue("user_abc", "user@example.com")
		require.NoError(t, err)

		for _, header := range []string{
			"bearer " + token,
			"Basic dXNlcjpwYXNz",
			"Bearer",
			"Bearer ",
			"Bearer  " + token,
			token,
		} {
			mw := auth.RequireAuth(tokens, nil, discardLogger())
			rec := httptest.NewRecorder()
			mw(protectedHandler(t)).ServeHTTP(rec, newRequest(header))

			assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
			assert.Equal(t, "invalid authorization format", errorMessage(t, rec.Body), header)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()

		mw := auth.RequireAuth(tokens, nil, discardLogger())
		rec := httptest.NewRecorder()
		mw(protectedHandler(t)).ServeHTTP(rec, newRequest("Bearer not.a.token"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid or expired token", errorMessage(t, rec.Body))
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		t.Parallel()

		token, err := tokens.Issue("user_abc", "user@example.com")
		require.NoError(t, err)

		mw := auth.RequireAuth(tokens, nil, discardLogger())
		rec := httptest.NewRecorder()
		mw(protectedHandler(t)).ServeHTTP(rec, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user_abc", rec.Header().Get("X-Subject"))
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		t.Parallel()

		token, err := tokens.Issue("user_abc", "user@example.com")
		require.NoError(t, err)

		denylist := &MockDenylist{}
		denylist.On("IsRevoked", mock.Anything, token).Return(true, nil)

		mw := auth.RequireAuth(tokens, denylist, discardLogger())
		rec := httptest.NewRecorder()
		mw(protectedHandler(t)).ServeHTTP(rec, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		denylist.AssertExpectations(t)
	})

	t.Run("denylist failure fails closed", func(t *testing.T) {
		t.Parallel()

		token, err := tokens.Issue("user_abc", "user@example.com")
		require.NoError(t, err)

		denylist := &MockDenylist{}
		denylist.On("IsRevoked", mock.Anything, token).Return(false, assert.AnError)

		mw := auth.RequireAuth(tokens, denylist, discardLogger())
		rec := httptest.NewRecorder()
		mw(protectedHandler(t)).ServeHTTP(rec, newRequest("Bearer "+token))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		denylist.AssertExpectations(t)
	})
}

func TestClaimsFromContext(t *testing.T) {
	t.Parallel()

	t.Run("without middleware", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := auth.ClaimsFromContext(r.Context())
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
		assert.EqualError(t, err, "user not authenticated")

		_, err = auth.UserIDFromContext(r.Context())
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

		_, err = auth.TokenFromContext(r.Context())
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})

	t.Run("with claims", func(t *testing.T) {
		t.Parallel()

		ctx := auth.WithClaims(t.Context(), auth.Claims{Subject: "user_abc"})
		id, err := auth.UserIDFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user_abc", id)
	})
}

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmod "github.com/careeros/backend/modules/auth"
	authsvc "github.com/careeros/backend/svc/auth"
)

// memStorage is an in-memory Storage for end-to-end router tests.
type memStorage struct {
	mu      sync.Mutex
	byEmail map[string]authsvc.User
}

func newMemStorage() *memStorage {
	return &memStorage{byEmail: make(map[string]authsvc.User)}
}

func (s *memStorage) CreateUser(_ context.Context, user authsvc.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[user.Email]; exists {
		return authsvc.ErrEmailAlreadyExists
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *memStorage) GetUserByID(_ context.Context, id string) (authsvc.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return authsvc.User{}, authsvc.ErrUserNotFound
}

func (s *memStorage) GetUserByEmail(_ context.Context, email string) (authsvc.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail[email]
	if !ok {
		return authsvc.User{}, authsvc.ErrUserNotFound
	}
	return u, nil
}

// memDenylist is an in-memory Denylist.
type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: make(map[string]bool)}
}

func (d *memDenylist) Revoke(_ context.Context, token string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = true
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[token], nil
}

func newTestServer(t *testing.T, denylist authsvc.Denylist) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := authsvc.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	opts := []authsvc.Option{authsvc.WithBcryptCost(4), authsvc.WithLogger(log)}
	if denylist != nil {
		opts = append(opts, authsvc.WithDenylist(denylist))
	}
	svc := authsvc.NewService(newMemStorage(), tokens, opts...)

	srv := httptest.NewServer(authmod.Router(authmod.Deps{
		Auth:     svc,
		Tokens:   tokens,
		Denylist: denylist,
		Logger:   log,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, resp *http.Response) (code, message string) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error.Code, envelope.Error.Message
}

type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

func TestSignup(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	t.Run("creates account", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/signup", map[string]string{
			"email":    "new@example.com",
			"password": "password123",
			"name":     "New User",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload authPayload
		decodeData(t, resp, &payload)
		assert.NotEmpty(t, payload.Token)
		assert.Contains(t, payload.User.ID, "user_")
		assert.Equal(t, "new@example.com", payload.User.Email)
		assert.Equal(t, "New User", payload.User.Name)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/signup", map[string]string{
			"email":    "new@example.com",
			"password": "password456",
		}, "")
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		code, message := decodeError(t, resp)
		assert.Equal(t, "conflict", code)
		assert.Equal(t, "email already registered", message)
	})

	t.Run("invalid input is unprocessable", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/signup", map[string]string{
			"email":    "not-an-email",
			"password": "short",
		}, "")
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		code, _ := decodeError(t, resp)
		assert.Equal(t, "validation_error", code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+"/signup", map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	t.Run("valid credentials", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/login", map[string]string{
			"email":    "user@example.com",
			"password": "password123",
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload authPayload
		decodeData(t, resp, &payload)
		assert.NotEmpty(t, payload.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPw := postJSON(t, srv.URL+"/login", map[string]string{
			"email":    "user@example.com",
			"password": "wrongpassword",
		}, "")
		unknown := postJSON(t, srv.URL+"/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		}, "")

		require.Equal(t, http.StatusUnauthorized, wrongPw.StatusCode)
		require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

		code1, msg1 := decodeError(t, wrongPw)
		code2, msg2 := decodeError(t, unknown)
		assert.Equal(t, code1, code2)
		assert.Equal(t, msg1, msg2)
		assert.Equal(t, "invalid email or password", msg1)
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+"/signup", map[string]string{
		"email":    "me@example.com",
		"password": "password123",
		"name":     "Me",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload authPayload
	decodeData(t, resp, &payload)

	t.Run("returns current user", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/me", payload.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		}
		decodeData(t, resp, &user)
		assert.Equal(t, payload.User.ID, user.ID)
		assert.Equal(t, "me@example.com", user.Email)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/me", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		_, message := decodeError(t, resp)
		assert.Equal(t, "missing authorization header", message)
	})

	t.Run("rejects forged token", func(t *testing.T) {
		other, err := authsvc.NewTokenService("other-secret", time.Hour)
		require.NoError(t, err)
		forged, err := other.Issue(payload.User.ID, "me@example.com")
		require.NoError(t, err)

		resp := getJSON(t, srv.URL+"/me", forged)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	denylist := newMemDenylist()
	srv := newTestServer(t, denylist)

	resp := postJSON(t, srv.URL+"/signup", map[string]string{
		"email":    "bye@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload authPayload
	decodeData(t, resp, &payload)

	// Token works before logout.
	meResp := getJSON(t, srv.URL+"/me", payload.Token)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	meResp.Body.Close()

	logoutResp := postJSON(t, srv.URL+"/logout", struct{}{}, payload.Token)
	require.Equal(t, http.StatusNoContent, logoutResp.StatusCode)
	logoutResp.Body.Close()

	// Same token is refused afterwards.
	meResp = getJSON(t, srv.URL+"/me", payload.Token)
	require.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
	meResp.Body.Close()
}

package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/auth"
	"taskdeck/internal/auth/store/revocation"
	jwttoken "taskdeck/internal/jwt_token"
	"taskdeck/pkg/requestcontext"
	"taskdeck/pkg/testutil"
)

func newAuthRouter(t *testing.T) (chi.Router, *revocation.InMemoryList) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := auth.NewInMemoryUserStore()
	orgs := auth.NewInMemoryOrgStore()
	require.NoError(t, auth.Bootstrap(context.Background(), orgs, users, logger))

	trl := revocation.NewInMemoryList()
	tokens := jwttoken.NewService("test-signing-key", "test-issuer")
	svc := auth.NewService(users, tokens, trl, logger)

	r := chi.NewRouter()
	h := New(svc, logger)
	h.RegisterPublic(r)
	h.RegisterProtected(r)
	return r, trl
}

func TestLogin(t *testing.T) {
	router, _ := newAuthRouter(t)

	t.Run("seeded owner can log in", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "owner@example.com",
			"password": "owner123",
		})
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		result := testutil.UnmarshalResponse[auth.LoginResult](t, rr)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "owner@example.com", result.User.Email)
		assert.Equal(t, "owner", result.User.Role.String())
	})

	t.Run("wrong password gets 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "owner@example.com",
			"password": "nope",
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertErrorResponse(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("malformed body gets 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", nil)
		req.Body = io.NopCloser(badReader{})
		rr := testutil.DoRequest(router, req)
		testutil.AssertErrorResponse(t, rr, http.StatusBadRequest, "validation")
	})

	t.Run("password hash never serializes", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "admin123",
		})
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "passwordHash")
		assert.NotContains(t, rr.Body.String(), "$2a$")
	})
}

func TestLogout(t *testing.T) {
	router, trl := newAuthRouter(t)

	t.Run("revokes the presented token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/logout", nil)
		req = req.WithContext(requestcontext.WithTokenID(req.Context(), "jti-logout"))
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusNoContent, rr.Code)

		revoked, err := trl.IsRevoked(req.Context(), "jti-logout")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("missing token context gets 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/logout", nil)
		rr := testutil.DoRequest(router, req)
		testutil.AssertErrorResponse(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("revocation TTL matches the token's remaining lifetime", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := &capturingService{}
		r := chi.NewRouter()
		New(svc, logger).RegisterProtected(r)

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/logout", nil)
		ctx := requestcontext.WithTokenID(req.Context(), "jti-ttl")
		ctx = requestcontext.WithTokenExpiry(ctx, now.Add(2*time.Hour))
		ctx = requestcontext.WithTime(ctx, now)
		rr := testutil.DoRequest(r, req.WithContext(ctx))

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "jti-ttl", svc.jti)
		assert.Equal(t, 2*time.Hour, svc.remaining, "revokes for the remainder, not the full TTL")
	})

	t.Run("token without an expiry claim falls back to the full TTL", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := &capturingService{}
		r := chi.NewRouter()
		New(svc, logger).RegisterProtected(r)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/logout", nil)
		req = req.WithContext(requestcontext.WithTokenID(req.Context(), "jti-no-exp"))
		rr := testutil.DoRequest(r, req)

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, auth.AccessTokenTTL, svc.remaining)
	})
}

type capturingService struct {
	jti       string
	remaining time.Duration
}

func (c *capturingService) Login(context.Context, string, string) (*auth.LoginResult, error) {
	return nil, nil
}

func (c *capturingService) Logout(_ context.Context, jti string, remaining time.Duration) error {
	c.jti = jti
	c.remaining = remaining
	return nil
}

type badReader struct{}

func (badReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

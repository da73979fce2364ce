package httptransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/audit"
	audithandler "taskdeck/internal/audit/handler"
	"taskdeck/internal/auth"
	authhandler "taskdeck/internal/auth/handler"
	"taskdeck/internal/auth/store/revocation"
	jwttoken "taskdeck/internal/jwt_token"
	taskhandler "taskdeck/internal/task/handler"
	"taskdeck/internal/task/models"
	taskservice "taskdeck/internal/task/service"
	taskstore "taskdeck/internal/task/store"
	"taskdeck/pkg/testutil"
)

// The router test runs the whole stack: seeded users, real JWTs through the
// auth middleware, and the feature services over in-memory stores.

func newStack(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := auth.NewInMemoryUserStore()
	orgs := auth.NewInMemoryOrgStore()
	require.NoError(t, auth.Bootstrap(context.Background(), orgs, users, logger))

	trl := revocation.NewInMemoryList()
	tokens := jwttoken.NewService("test-signing-key", "test-issuer")
	auditStore := audit.NewInMemoryStore()
	recorder := audit.NewRecorder(auditStore, logger)

	authSvc := auth.NewService(users, tokens, trl, logger)
	taskSvc := taskservice.New(taskstore.NewInMemory(), recorder)
	auditSvc := audit.NewService(recorder, auditStore)

	return NewRouter(Deps{
		Logger:       logger,
		JWTValidator: tokens,
		Revocation:   trl,
		Auth:         authhandler.New(authSvc, logger),
		Tasks:        taskhandler.New(taskSvc, logger),
		AuditLog:     audithandler.New(auditSvc, logger),
	})
}

func login(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := testutil.UnmarshalResponse[auth.LoginResult](t, rr)
	return result.AccessToken
}

func TestRouter_FullFlow(t *testing.T) {
	router := newStack(t)
	ownerToken := login(t, router, "owner@example.com", "owner123")
	viewerToken := login(t, router, "viewer@example.com", "viewer123")

	t.Run("protected route without token gets 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/tasks", nil)
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	var created *models.Task
	t.Run("owner creates a task through the full stack", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/tasks", map[string]string{
			"title":       "wired end to end",
			"description": "through middleware and service",
		})
		req.Header.Set("Authorization", "Bearer "+ownerToken)
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		created = testutil.UnmarshalResponse[models.Task](t, rr)
		assert.False(t, created.OrganizationID.IsNil(), "task lands in the seeded org")
	})

	t.Run("viewer sees the owner's task on the shared board", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+viewerToken)
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)
		tasks := testutil.UnmarshalResponse[[]models.Task](t, rr)
		require.Len(t, *tasks, 1)
		assert.Equal(t, created.ID, (*tasks)[0].ID)
	})

	t.Run("viewer cannot delete", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodDelete, "/tasks/"+created.ID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+viewerToken)
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("owner reads the audit log", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit-log", nil)
		req.Header.Set("Authorization", "Bearer "+ownerToken)
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)
		entries := testutil.UnmarshalResponse[[]audit.Entry](t, rr)
		assert.NotEmpty(t, *entries)
	})

	t.Run("viewer cannot read the audit log", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit-log", nil)
		req.Header.Set("Authorization", "Bearer "+viewerToken)
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+viewerToken)
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusNoContent, rr.Code)

		req = testutil.NewJSONRequest(t, http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+viewerToken)
		rr = testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("health and metrics stay public", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

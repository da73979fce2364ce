package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/auth"
	"taskdeck/internal/transport/http/shared"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/requestcontext"
)

// Service defines the auth operations the handler needs.
type Service interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	Logout(ctx context.Context, jti string, remaining time.Duration) error
}

// Handler wires the credential endpoints.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(authSvc Service, logger *slog.Logger) *Handler {
	return &Handler{auth: authSvc, logger: logger}
}

// RegisterPublic mounts the unauthenticated login route.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

// RegisterProtected mounts routes that require a valid token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/auth/logout", h.handleLogout)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	result, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			h.logger.WarnContext(ctx, "login rejected",
				"request_id", requestcontext.RequestID(ctx),
			)
		} else {
			h.logger.ErrorContext(ctx, "login failed",
				"error", err.Error(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Revoke for the token's remaining lifetime; the full TTL is only a
	// fallback for tokens without an expiry claim.
	remaining := auth.AccessTokenTTL
	if exp := requestcontext.TokenExpiry(ctx); !exp.IsZero() {
		remaining = exp.Sub(requestcontext.Now(ctx))
	}
	if err := h.auth.Logout(ctx, requestcontext.TokenID(ctx), remaining); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

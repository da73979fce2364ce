package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/audit"
	"taskdeck/internal/transport/http/shared"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/requestcontext"
)

// Service defines the audit read operations the handler needs.
type Service interface {
	ListAuditLog(ctx context.Context, caller requestcontext.Caller) ([]audit.Entry, error)
}

// Handler exposes the audit log to owners and admins.
type Handler struct {
	auditLog Service
	logger   *slog.Logger
}

func New(auditLog Service, logger *slog.Logger) *Handler {
	return &Handler{auditLog: auditLog, logger: logger}
}

// Register mounts the audit routes. The caller wraps them in the auth
// middleware chain.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit-log", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Identity(ctx)

	entries, err := h.auditLog.ListAuditLog(ctx, caller)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			h.logger.WarnContext(ctx, "audit log access denied",
				"role", caller.Role.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
		} else {
			h.logger.ErrorContext(ctx, "audit log listing failed",
				"error", err.Error(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		shared.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	shared.WriteJSON(w, http.StatusOK, entries)
}

// Package httptransport assembles the public HTTP surface from the feature
// handlers. Business logic stays in the services; this file only decides
// which middleware wraps which routes.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audithandler "taskdeck/internal/audit/handler"
	authhandler "taskdeck/internal/auth/handler"
	"taskdeck/internal/platform/middleware"
	taskhandler "taskdeck/internal/task/handler"
)

// Deps collects everything the router mounts.
type Deps struct {
	Logger       *slog.Logger
	JWTValidator middleware.JWTValidator
	Revocation   middleware.RevocationChecker
	Auth         *authhandler.Handler
	Tasks        *taskhandler.Handler
	AuditLog     *audithandler.Handler
}

// NewRouter wires all endpoints. Everything except login, health, and
// metrics sits behind the auth middleware.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	d.Auth.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.JWTValidator, d.Revocation, d.Logger))
		d.Auth.RegisterProtected(r)
		d.Tasks.Register(r)
		d.AuditLog.Register(r)
	})

	return r
}

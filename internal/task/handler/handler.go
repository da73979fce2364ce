// Package handler is the thin HTTP layer over the task orchestrator. It
// decodes requests and translates errors; every authorization decision lives
// in the service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/task/models"
	"taskdeck/internal/transport/http/shared"
	id "taskdeck/pkg/domain"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/requestcontext"
)

// Service defines the orchestrator operations the handler needs.
type Service interface {
	Create(ctx context.Context, caller requestcontext.Caller, dto models.CreateTask) (*models.Task, error)
	List(ctx context.Context, caller requestcontext.Caller) ([]*models.Task, error)
	Get(ctx context.Context, caller requestcontext.Caller, taskID id.TaskID) (*models.Task, error)
	Update(ctx context.Context, caller requestcontext.Caller, taskID id.TaskID, dto models.UpdateTask) (*models.Task, error)
	Remove(ctx context.Context, caller requestcontext.Caller, taskID id.TaskID) (*models.Task, error)
}

// Handler wires HTTP endpoints to the task service.
type Handler struct {
	tasks  Service
	logger *slog.Logger
}

func New(tasks Service, logger *slog.Logger) *Handler {
	return &Handler{tasks: tasks, logger: logger}
}

// Register mounts the task routes. The caller wraps them in the auth
// middleware chain.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleRemove)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Identity(ctx)

	var dto models.CreateTask
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	task, err := h.tasks.Create(ctx, caller, dto)
	if err != nil {
		h.logClientError(ctx, "create task failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, task)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Identity(ctx)

	tasks, err := h.tasks.List(ctx, caller)
	if err != nil {
		h.logClientError(ctx, "list tasks failed", err)
		shared.WriteError(w, err)
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	shared.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Identity(ctx)

	taskID, err := id.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	task, err := h.tasks.Get(ctx, caller, taskID)
	if err != nil {
		h.logClientError(ctx, "get task failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Identity(ctx)

	taskID, err := id.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var dto models.UpdateTask
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	task, err := h.tasks.Update(ctx, caller, taskID, dto)
	if err != nil {
		h.logClientError(ctx, "update task failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Identity(ctx)

	taskID, err := id.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	task, err := h.tasks.Remove(ctx, caller, taskID)
	if err != nil {
		h.logClientError(ctx, "remove task failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, task)
}

// logClientError keeps the noise level proportional: client-caused failures
// log at warn, internal ones at error.
func (h *Handler) logClientError(ctx context.Context, msg string, err error) {
	attrs := []any{
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	}
	if dErrors.HasCode(err, dErrors.CodeInternal) || dErrors.HasCode(err, dErrors.CodeConfig) {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}

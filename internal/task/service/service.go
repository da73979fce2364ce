// Package service implements the task orchestrator: every operation is a
// short deterministic pipeline of load, authorize, mutate, audit. The service
// holds no cross-request state; all state lives in the stores.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"taskdeck/internal/audit"
	"taskdeck/internal/policy"
	taskmetrics "taskdeck/internal/task/metrics"
	"taskdeck/internal/task/models"
	id "taskdeck/pkg/domain"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/platform/sentinel"
	"taskdeck/pkg/requestcontext"
)

// Store is the persistence port for tasks. All operations are per-row atomic.
// Implementations return sentinel.ErrNotFound for unknown IDs.
type Store interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, taskID id.TaskID) (*models.Task, error)
	// FindByOrg returns the organization's tasks ordered by UpdatedAt
	// descending. Tenant filtering happens in the query, never client-side.
	FindByOrg(ctx context.Context, orgID id.OrgID) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	DeleteByID(ctx context.Context, taskID id.TaskID) error
}

// AuditRecorder appends audit entries best-effort: a failed append is logged
// by the recorder but never fails the primary operation.
type AuditRecorder interface {
	Emit(ctx context.Context, entry audit.Entry)
}

// Service orchestrates task CRUD with role policy, tenant scoping, and audit.
type Service struct {
	store   Store
	auditor AuditRecorder
	metrics *taskmetrics.Metrics
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *taskmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, auditor AuditRecorder, opts ...Option) *Service {
	s := &Service{
		store:   store,
		auditor: auditor,
		tracer:  otel.Tracer("taskdeck/task"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create builds and persists a task in the caller's organization.
// Pipeline: role check, org check, validate+build, persist, audit.
func (s *Service) Create(ctx context.Context, caller requestcontext.Caller, dto models.CreateTask) (*models.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.create")
	defer span.End()
	start := time.Now()

	if !policy.CanPerform(caller.Role, policy.ActionCreate) {
		s.metrics.IncrementDenied("create")
		return nil, dErrors.New(dErrors.CodeForbidden, "Viewers cannot create tasks")
	}
	if caller.OrgID.IsNil() {
		s.metrics.IncrementDenied("create")
		return nil, dErrors.New(dErrors.CodeForbidden, "Organization scope required")
	}

	task, err := models.NewTask(id.NewTaskID(), dto, caller.UserID, caller.OrgID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, task); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create task")
	}

	s.auditor.Emit(ctx, audit.Entry{
		UserID:       caller.UserID,
		Action:       id.AuditActionCreateTask,
		ResourceType: audit.ResourceTask,
		ResourceID:   task.ID.String(),
		Details: detailsJSON(map[string]any{
			"title":  task.Title,
			"userId": caller.UserID.String(),
		}),
	})

	if s.metrics != nil {
		s.metrics.TasksCreated.Inc()
		s.metrics.ObserveWrite(start)
	}
	return task, nil
}

// List returns every task in the caller's organization, most recently touched
// first. All roles see the full organization board; there is no per-user
// narrowing.
func (s *Service) List(ctx context.Context, caller requestcontext.Caller) ([]*models.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.list")
	defer span.End()
	start := time.Now()

	if caller.OrgID.IsNil() {
		s.metrics.IncrementDenied("list")
		return nil, dErrors.New(dErrors.CodeForbidden, "Organization scope required")
	}

	tasks, err := s.store.FindByOrg(ctx, caller.OrgID)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}

	s.auditor.Emit(ctx, audit.Entry{
		UserID:       caller.UserID,
		Action:       id.AuditActionViewTasks,
		ResourceType: audit.ResourceTask,
		Details: detailsJSON(map[string]any{
			"count": len(tasks),
			"role":  caller.Role.String(),
		}),
	})

	s.metrics.ObserveList(start)
	return tasks, nil
}

// Get loads a single task after the tenant scope check and audits the view.
func (s *Service) Get(ctx context.Context, caller requestcontext.Caller, taskID id.TaskID) (*models.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.get")
	defer span.End()

	task, err := s.getScoped(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	s.auditor.Emit(ctx, audit.Entry{
		UserID:       caller.UserID,
		Action:       id.AuditActionViewTasks,
		ResourceType: audit.ResourceTask,
		ResourceID:   task.ID.String(),
		Details:      detailsJSON(map[string]any{"title": task.Title}),
	})
	return task, nil
}

// Update applies a partial update to a task in the caller's organization.
// Fields absent from the DTO are left untouched; UpdatedAt always advances.
func (s *Service) Update(ctx context.Context, caller requestcontext.Caller, taskID id.TaskID, dto models.UpdateTask) (*models.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.update")
	defer span.End()
	start := time.Now()

	task, err := s.getScoped(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.ActionUpdate) {
		s.metrics.IncrementDenied("update")
		return nil, dErrors.New(dErrors.CodeForbidden, "Viewers cannot update tasks")
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := dto.Apply(task, requestcontext.Now(ctx))
	if err := s.store.Update(ctx, task); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update task")
	}

	s.auditor.Emit(ctx, audit.Entry{
		UserID:       caller.UserID,
		Action:       id.AuditActionUpdateTask,
		ResourceType: audit.ResourceTask,
		ResourceID:   task.ID.String(),
		Details: detailsJSON(map[string]any{
			"fields":    fields,
			"updatedBy": caller.UserID.String(),
			"role":      caller.Role.String(),
		}),
	})

	if s.metrics != nil {
		s.metrics.TasksUpdated.Inc()
		s.metrics.ObserveWrite(start)
	}
	return task, nil
}

// Remove deletes a task and returns it as it existed prior to deletion.
func (s *Service) Remove(ctx context.Context, caller requestcontext.Caller, taskID id.TaskID) (*models.Task, error) {
	ctx, span := s.tracer.Start(ctx, "task.remove")
	defer span.End()
	start := time.Now()

	task, err := s.getScoped(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(caller.Role, policy.ActionDelete) {
		s.metrics.IncrementDenied("delete")
		return nil, dErrors.New(dErrors.CodeForbidden, "Only owners and admins can delete tasks")
	}

	if err := s.store.DeleteByID(ctx, task.ID); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete task")
	}

	s.auditor.Emit(ctx, audit.Entry{
		UserID:       caller.UserID,
		Action:       id.AuditActionDeleteTask,
		ResourceType: audit.ResourceTask,
		ResourceID:   task.ID.String(),
		Details: detailsJSON(map[string]any{
			"title":     task.Title,
			"deletedBy": caller.UserID.String(),
			"role":      caller.Role.String(),
		}),
	})

	if s.metrics != nil {
		s.metrics.TasksDeleted.Inc()
		s.metrics.ObserveWrite(start)
	}
	return task, nil
}

// getScoped is the shared load+scope step for single-resource operations. It
// emits no audit entry so callers control exactly one entry per operation.
// A cross-tenant ID yields forbidden, never a not-found that would leak
// existence across organizations.
func (s *Service) getScoped(ctx context.Context, caller requestcontext.Caller, taskID id.TaskID) (*models.Task, error) {
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Task not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load task")
	}
	if err := policy.RequireSameOrg(task.OrganizationID, caller.OrgID); err != nil {
		s.metrics.IncrementDenied("scope")
		return nil, err
	}
	return task, nil
}

// detailsJSON renders the audit details payload. Map keys marshal in sorted
// order, so payloads are deterministic.
func detailsJSON(kv map[string]any) string {
	b, _ := json.Marshal(kv)
	return string(b)
}

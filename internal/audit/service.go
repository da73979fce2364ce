package audit

import (
	"context"
	"encoding/json"

	"taskdeck/internal/policy"
	id "taskdeck/pkg/domain"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/requestcontext"
)

// Service exposes the audit log read path. Viewing the log is itself an
// audited action; a list is only served once its VIEW_AUDIT entry is
// recorded.
type Service struct {
	recorder *Recorder
	store    Store
}

func NewService(recorder *Recorder, store Store) *Service {
	return &Service{recorder: recorder, store: store}
}

// ListAuditLog returns the most recent DefaultListLimit entries newest-first.
// Only owners and admins may read the log.
func (s *Service) ListAuditLog(ctx context.Context, caller requestcontext.Caller) ([]Entry, error) {
	if !policy.CanPerform(caller.Role, policy.ActionViewAudit) {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only owners and admins can view the audit log")
	}

	details, _ := json.Marshal(map[string]any{
		"viewedBy": caller.UserID.String(),
		"role":     caller.Role.String(),
	})
	// Recording the view IS the primary operation here, so a failed append
	// fails the read instead of being swallowed like the task-side emits.
	if _, err := s.recorder.Record(ctx, Entry{
		UserID:       caller.UserID,
		Action:       id.AuditActionViewAudit,
		ResourceType: ResourceAudit,
		Details:      string(details),
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit log view")
	}

	entries, err := s.store.ListRecent(ctx, DefaultListLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit log")
	}
	return entries, nil
}

package audit

import (
	"time"

	"github.com/google/uuid"

	id "taskdeck/pkg/domain"
)

// Entry is an immutable record of a security/business-relevant action.
// Written once, read many; never mutated or deleted. Keep it
// transport-agnostic so stores and sinks can fan out.
type Entry struct {
	ID           uuid.UUID      `json:"id"`
	UserID       id.UserID      `json:"userId"`
	Action       id.AuditAction `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	Details      string         `json:"details"`
	Timestamp    time.Time      `json:"timestamp"`
}

// ResourceTask and ResourceAudit are the resource types written today.
const (
	ResourceTask  = "task"
	ResourceAudit = "audit"
)

// DefaultListLimit bounds ListRecent when callers pass no explicit limit.
const DefaultListLimit = 100

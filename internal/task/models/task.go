package models

import (
	"strings"
	"time"

	id "taskdeck/pkg/domain"
	dErrors "taskdeck/pkg/domain-errors"
)

// Task is the aggregate for a single board item.
//
// Invariants:
//   - Title and Description are non-empty
//   - Status and Category hold supported enum values
//   - OrganizationID is immutable after creation and equals the creating
//     user's organization (tenant isolation)
//   - UpdatedAt monotonically advances on every mutation
type Task struct {
	ID             id.TaskID       `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       id.TaskCategory `json:"category"`
	Status         id.TaskStatus   `json:"status"`
	UserID         id.UserID       `json:"userId"`
	OrganizationID id.OrgID        `json:"organizationId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreateTask carries the caller-supplied fields for a new task. Status is
// optional and defaults to todo; category is optional and defaults to
// personal, matching the entity defaults the dashboard relies on.
type CreateTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

// NewTask validates a CreateTask and builds the aggregate. The creator's
// organization becomes the task's organization; there is no way to create a
// task in a foreign tenant.
func NewTask(taskID id.TaskID, dto CreateTask, userID id.UserID, orgID id.OrgID, now time.Time) (*Task, error) {
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	description := strings.TrimSpace(dto.Description)
	if description == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "description is required")
	}

	status := id.TaskStatusTodo
	if dto.Status != "" {
		parsed, err := id.ParseTaskStatus(dto.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	category := id.TaskCategoryPersonal
	if dto.Category != "" {
		parsed, err := id.ParseTaskCategory(dto.Category)
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	return &Task{
		ID:             taskID,
		Title:          title,
		Description:    description,
		Category:       category,
		Status:         status,
		UserID:         userID,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// UpdateTask carries a partial update. Nil fields are left untouched.
type UpdateTask struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

// Validate checks the fields that are present without applying them.
func (u UpdateTask) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return dErrors.New(dErrors.CodeValidation, "description cannot be empty")
	}
	if u.Category != nil {
		if _, err := id.ParseTaskCategory(*u.Category); err != nil {
			return err
		}
	}
	if u.Status != nil {
		if _, err := id.ParseTaskStatus(*u.Status); err != nil {
			return err
		}
	}
	return nil
}

// Apply mutates the task with the fields present in the update and bumps
// UpdatedAt. Returns the names of the fields that changed, for the audit
// trail. Validate must have been called first.
func (u UpdateTask) Apply(t *Task, now time.Time) []string {
	var fields []string
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
		fields = append(fields, "title")
	}
	if u.Description != nil {
		t.Description = strings.TrimSpace(*u.Description)
		fields = append(fields, "description")
	}
	if u.Category != nil {
		t.Category = id.TaskCategory(*u.Category)
		fields = append(fields, "category")
	}
	if u.Status != nil {
		t.Status = id.TaskStatus(*u.Status)
		fields = append(fields, "status")
	}
	t.UpdatedAt = now
	return fields
}

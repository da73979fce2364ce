package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "taskdeck/pkg/domain-errors"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"owner", "admin", "viewer"} {
		role, err := ParseRole(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, role.String())
		assert.True(t, role.IsValid())
	}

	for _, raw := range []string{"", "superuser", "OWNER"} {
		_, err := ParseRole(raw)
		require.Error(t, err, raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func TestParseTaskStatus(t *testing.T) {
	for _, raw := range []string{"todo", "in_progress", "done"} {
		status, err := ParseTaskStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, status.String())
	}

	for _, raw := range []string{"", "blocked", "Done"} {
		_, err := ParseTaskStatus(raw)
		require.Error(t, err, raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func TestParseTaskCategory(t *testing.T) {
	for _, raw := range []string{"work", "personal"} {
		category, err := ParseTaskCategory(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, category.String())
	}

	for _, raw := range []string{"", "hobby"} {
		_, err := ParseTaskCategory(raw)
		require.Error(t, err, raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func TestAuditActionIsValid(t *testing.T) {
	for _, action := range []AuditAction{
		AuditActionCreateTask,
		AuditActionUpdateTask,
		AuditActionDeleteTask,
		AuditActionViewTasks,
		AuditActionViewAudit,
	} {
		assert.True(t, action.IsValid(), action.String())
	}
	assert.False(t, AuditAction("DROP_TABLES").IsValid())
}

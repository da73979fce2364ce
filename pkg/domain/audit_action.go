package domain

// AuditAction names the auditable actions. Values match the wire/storage form
// used by the dashboard, so they are SCREAMING_SNAKE rather than Go-style.
type AuditAction string

const (
	AuditActionCreateTask AuditAction = "CREATE_TASK"
	AuditActionUpdateTask AuditAction = "UPDATE_TASK"
	AuditActionDeleteTask AuditAction = "DELETE_TASK"
	AuditActionViewTasks  AuditAction = "VIEW_TASKS"
	AuditActionViewAudit  AuditAction = "VIEW_AUDIT"
)

var validAuditActions = map[AuditAction]bool{
	AuditActionCreateTask: true,
	AuditActionUpdateTask: true,
	AuditActionDeleteTask: true,
	AuditActionViewTasks:  true,
	AuditActionViewAudit:  true,
}

// IsValid checks if the action is one of the supported enum values.
func (a AuditAction) IsValid() bool { return validAuditActions[a] }

// String returns the string representation of the action.
func (a AuditAction) String() string { return string(a) }

// Package policy centralizes the role/action permission table and the tenant
// scope guard. Services consume it uniformly instead of scattering inline role
// conditionals per endpoint.
package policy

import id "taskdeck/pkg/domain"

// Action is an authorizable operation on the task board.
type Action string

const (
	ActionCreate    Action = "create"
	ActionRead      Action = "read"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionList      Action = "list"
	ActionViewAudit Action = "view_audit"
)

// permissions is the single source of truth for role capabilities.
// Viewers are read-only; owners and admins are currently equivalent, kept as
// distinct tiers so owner-only rules can be added without touching call sites.
var permissions = map[id.Role]map[Action]bool{
	id.RoleOwner: {
		ActionCreate:    true,
		ActionRead:      true,
		ActionUpdate:    true,
		ActionDelete:    true,
		ActionList:      true,
		ActionViewAudit: true,
	},
	id.RoleAdmin: {
		ActionCreate:    true,
		ActionRead:      true,
		ActionUpdate:    true,
		ActionDelete:    true,
		ActionList:      true,
		ActionViewAudit: true,
	},
	id.RoleViewer: {
		ActionRead: true,
		ActionList: true,
	},
}

// CanPerform reports whether the role may perform the action. Pure and total:
// unknown roles and unknown actions are denied.
func CanPerform(role id.Role, action Action) bool {
	return permissions[role][action]
}

package policy

import (
	id "taskdeck/pkg/domain"
	dErrors "taskdeck/pkg/domain-errors"
)

// RequireOrg verifies the caller carries an organization scope. A caller
// without one means identity resolution is broken upstream, so this is a
// config-class failure rather than a plain forbidden.
func RequireOrg(callerOrg id.OrgID) error {
	if callerOrg.IsNil() {
		return dErrors.New(dErrors.CodeConfig, "caller has no organization scope")
	}
	return nil
}

// RequireSameOrg verifies a resource belongs to the caller's organization.
// Mandatory before any single-resource read or mutation; list queries must
// filter by organization at the store instead of post-checking rows.
func RequireSameOrg(resourceOrg, callerOrg id.OrgID) error {
	if err := RequireOrg(callerOrg); err != nil {
		return err
	}
	if resourceOrg != callerOrg {
		return dErrors.New(dErrors.CodeForbidden, "not allowed (different organization)")
	}
	return nil
}

package auth

import (
	"time"

	id "taskdeck/pkg/domain"
)

// User is an account within one organization. Role and OrganizationID are
// immutable post-creation.
type User struct {
	ID             id.UserID `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           id.Role   `json:"role"`
	OrganizationID id.OrgID  `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Organization is the tenancy boundary; all tasks and users reference
// exactly one.
type Organization struct {
	ID        id.OrgID  `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResult is what a successful login returns to the dashboard.
type LoginResult struct {
	AccessToken string     `json:"accessToken"`
	User        PublicUser `json:"user"`
}

// PublicUser is the caller-visible projection of a User.
type PublicUser struct {
	ID             id.UserID `json:"id"`
	Email          string    `json:"email"`
	Role           id.Role   `json:"role"`
	OrganizationID id.OrgID  `json:"organizationId"`
}

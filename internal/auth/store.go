package auth

import (
	"context"

	id "taskdeck/pkg/domain"
)

// UserStore persists accounts. Implementations return sentinel.ErrNotFound
// for unknown lookups and sentinel.ErrConflict for duplicate emails.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, userID id.UserID) (*User, error)
}

// OrgStore persists organizations.
type OrgStore interface {
	Create(ctx context.Context, org *Organization) error
	FindByName(ctx context.Context, name string) (*Organization, error)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	id "taskdeck/pkg/domain"
	"taskdeck/pkg/platform/sentinel"
)

// seedAccount describes one bootstrap user.
type seedAccount struct {
	email    string
	password string
	role     id.Role
}

var seedAccounts = []seedAccount{
	{"owner@example.com", "owner123", id.RoleOwner},
	{"admin@example.com", "admin123", id.RoleAdmin},
	{"viewer@example.com", "viewer123", id.RoleViewer},
}

const seedOrgName = "Default Org"

// Bootstrap creates a default organization with one user per role. It is an
// explicit, idempotent check-then-create procedure invoked once at process
// start, never ambient package initialization: if the owner account already
// exists, nothing is written.
func Bootstrap(ctx context.Context, orgs OrgStore, users UserStore, logger *slog.Logger) error {
	if _, err := users.FindByEmail(ctx, seedAccounts[0].email); err == nil {
		logger.InfoContext(ctx, "bootstrap skipped, seed users already present")
		return nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("bootstrap existence check: %w", err)
	}

	now := time.Now()
	org := &Organization{ID: id.NewOrgID(), Name: seedOrgName, CreatedAt: now}
	if err := orgs.Create(ctx, org); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			existing, findErr := orgs.FindByName(ctx, seedOrgName)
			if findErr != nil {
				return fmt.Errorf("bootstrap find existing org: %w", findErr)
			}
			org = existing
		} else {
			return fmt.Errorf("bootstrap create org: %w", err)
		}
	}

	for _, acct := range seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acct.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("bootstrap hash password: %w", err)
		}
		user := &User{
			ID:             id.NewUserID(),
			Email:          acct.email,
			PasswordHash:   string(hash),
			Role:           acct.role,
			OrganizationID: org.ID,
			CreatedAt:      now,
		}
		if err := users.Create(ctx, user); err != nil {
			// A concurrent bootstrap already created this account.
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return fmt.Errorf("bootstrap create user %s: %w", acct.email, err)
		}
	}

	logger.InfoContext(ctx, "bootstrap seeded default organization",
		"org_id", org.ID.String(),
		"users", len(seedAccounts),
	)
	return nil
}

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "taskdeck/pkg/domain"
	"taskdeck/pkg/platform/sentinel"
)

// Schema is applied by deploy tooling and integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS organizations (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS organizations_name_idx ON organizations (LOWER(name));

CREATE TABLE IF NOT EXISTS users (
	id              UUID PRIMARY KEY,
	email           TEXT NOT NULL,
	password_hash   TEXT NOT NULL,
	role            TEXT NOT NULL,
	organization_id UUID NOT NULL REFERENCES organizations (id),
	created_at      TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (LOWER(email));
`

const uniqueViolation = "23505"

// PostgresUserStore persists users in PostgreSQL.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, organization_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(user.ID),
		user.Email,
		user.PasswordHash,
		user.Role.String(),
		uuid.UUID(user.OrganizationID),
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, password_hash, role, organization_id, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresUserStore) FindByID(ctx context.Context, userID id.UserID) (*User, error) {
	query := `
		SELECT id, email, password_hash, role, organization_id, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
}

func (s *PostgresUserStore) scanUser(row *sql.Row) (*User, error) {
	var (
		u      User
		userID uuid.UUID
		role   string
		orgID  uuid.UUID
	)
	err := row.Scan(&userID, &u.Email, &u.PasswordHash, &role, &orgID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(userID)
	u.Role = id.Role(role)
	u.OrganizationID = id.OrgID(orgID)
	return &u, nil
}

// PostgresOrgStore persists organizations in PostgreSQL.
type PostgresOrgStore struct {
	db *sql.DB
}

func NewPostgresOrgStore(db *sql.DB) *PostgresOrgStore {
	return &PostgresOrgStore{db: db}
}

func (s *PostgresOrgStore) Create(ctx context.Context, org *Organization) error {
	query := `INSERT INTO organizations (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := s.db.ExecContext(ctx, query, uuid.UUID(org.ID), org.Name, org.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (s *PostgresOrgStore) FindByName(ctx context.Context, name string) (*Organization, error) {
	query := `SELECT id, name, created_at FROM organizations WHERE LOWER(name) = LOWER($1)`
	var (
		o     Organization
		orgID uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, query, name).Scan(&orgID, &o.Name, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find organization by name: %w", err)
	}
	o.ID = id.OrgID(orgID)
	return &o, nil
}

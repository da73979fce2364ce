package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "taskdeck/pkg/domain"
)

// PostgresStore persists audit entries in PostgreSQL. The table is
// append-only; there is deliberately no update or delete path.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is applied by deploy tooling and integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id            UUID PRIMARY KEY,
	user_id       UUID NOT NULL,
	action        TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id   TEXT NOT NULL,
	details       TEXT NOT NULL DEFAULT '',
	ts            TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_log_ts_idx ON audit_log (ts DESC);
`

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO audit_log (id, user_id, action, resource_type, resource_id, details, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		uuid.UUID(entry.UserID),
		entry.Action.String(),
		entry.ResourceType,
		entry.ResourceID,
		entry.Details,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query := `
		SELECT id, user_id, action, resource_type, resource_id, details, ts
		FROM audit_log
		ORDER BY ts DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			userID uuid.UUID
			action string
			ts     time.Time
		)
		if err := rows.Scan(&e.ID, &userID, &action, &e.ResourceType, &e.ResourceID, &e.Details, &ts); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.UserID = id.UserID(userID)
		e.Action = id.AuditAction(action)
		e.Timestamp = ts
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"taskdeck/internal/task/models"
	id "taskdeck/pkg/domain"
	"taskdeck/pkg/platform/sentinel"
)

// Postgres persists tasks in PostgreSQL. Writes are single-row and rely on
// row-level atomicity; concurrent updates resolve last-write-wins on
// updated_at. A version column would be the extension point for optimistic
// concurrency.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema is applied by deploy tooling and integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id              UUID PRIMARY KEY,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL,
	category        TEXT NOT NULL,
	status          TEXT NOT NULL,
	user_id         UUID NOT NULL,
	organization_id UUID NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS tasks_org_updated_idx ON tasks (organization_id, updated_at DESC);
`

func (s *Postgres) Insert(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, category, status, user_id, organization_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(task.ID),
		task.Title,
		task.Description,
		task.Category.String(),
		task.Status.String(),
		uuid.UUID(task.UserID),
		uuid.UUID(task.OrganizationID),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, taskID id.TaskID) (*models.Task, error) {
	query := `
		SELECT id, title, description, category, status, user_id, organization_id, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, uuid.UUID(taskID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find task by id: %w", err)
	}
	return task, nil
}

func (s *Postgres) FindByOrg(ctx context.Context, orgID id.OrgID) ([]*models.Task, error) {
	query := `
		SELECT id, title, description, category, status, user_id, organization_id, created_at, updated_at
		FROM tasks
		WHERE organization_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(orgID))
	if err != nil {
		return nil, fmt.Errorf("find tasks by org: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Update never touches organization_id or user_id; tenant and creator are
// immutable after creation.
func (s *Postgres) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, category = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(task.ID),
		task.Title,
		task.Description,
		task.Category.String(),
		task.Status.String(),
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteByID(ctx context.Context, taskID id.TaskID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, uuid.UUID(taskID))
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t        models.Task
		taskID   uuid.UUID
		userID   uuid.UUID
		orgID    uuid.UUID
		category string
		status   string
	)
	err := row.Scan(&taskID, &t.Title, &t.Description, &category, &status, &userID, &orgID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.ID = id.TaskID(taskID)
	t.UserID = id.UserID(userID)
	t.OrganizationID = id.OrgID(orgID)
	t.Category = id.TaskCategory(category)
	t.Status = id.TaskStatus(status)
	return &t, nil
}

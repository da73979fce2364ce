//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taskdeck/internal/task/models"
	"taskdeck/internal/task/store"
	id "taskdeck/pkg/domain"
	"taskdeck/pkg/platform/sentinel"
	"taskdeck/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), store.Schema)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "tasks"))
}

func newTask(orgID id.OrgID, title string, updatedAt time.Time) *models.Task {
	return &models.Task{
		ID:             id.NewTaskID(),
		Title:          title,
		Description:    "integration test task",
		Category:       id.TaskCategoryWork,
		Status:         id.TaskStatusTodo,
		UserID:         id.NewUserID(),
		OrganizationID: orgID,
		CreatedAt:      updatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (s *PostgresStoreSuite) TestInsertAndFindByID() {
	ctx := context.Background()
	task := newTask(id.NewOrgID(), "round trip", time.Now().UTC())
	s.Require().NoError(s.store.Insert(ctx, task))

	got, err := s.store.FindByID(ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(task.Title, got.Title)
	s.Equal(task.Status, got.Status)
	s.Equal(task.OrganizationID, got.OrganizationID)
	s.WithinDuration(task.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func (s *PostgresStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(context.Background(), id.NewTaskID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestFindByOrgFiltersAndOrders() {
	ctx := context.Background()
	orgID := id.NewOrgID()
	base := time.Now().UTC()

	older := newTask(orgID, "older", base.Add(-time.Hour))
	newer := newTask(orgID, "newer", base)
	foreign := newTask(id.NewOrgID(), "foreign", base)
	s.Require().NoError(s.store.Insert(ctx, older))
	s.Require().NoError(s.store.Insert(ctx, newer))
	s.Require().NoError(s.store.Insert(ctx, foreign))

	tasks, err := s.store.FindByOrg(ctx, orgID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
	s.Equal(newer.ID, tasks[0].ID)
	s.Equal(older.ID, tasks[1].ID)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	task := newTask(id.NewOrgID(), "before", time.Now().UTC())
	s.Require().NoError(s.store.Insert(ctx, task))

	task.Title = "after"
	task.Status = id.TaskStatusDone
	task.UpdatedAt = task.UpdatedAt.Add(time.Minute)
	s.Require().NoError(s.store.Update(ctx, task))

	got, err := s.store.FindByID(ctx, task.ID)
	s.Require().NoError(err)
	s.Equal("after", got.Title)
	s.Equal(id.TaskStatusDone, got.Status)
}

func (s *PostgresStoreSuite) TestUpdateNotFound() {
	ghost := newTask(id.NewOrgID(), "ghost", time.Now().UTC())
	s.Require().ErrorIs(s.store.Update(context.Background(), ghost), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDeleteByID() {
	ctx := context.Background()
	task := newTask(id.NewOrgID(), "doomed", time.Now().UTC())
	s.Require().NoError(s.store.Insert(ctx, task))

	s.Require().NoError(s.store.DeleteByID(ctx, task.ID))
	_, err := s.store.FindByID(ctx, task.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.DeleteByID(ctx, task.ID), sentinel.ErrNotFound)
}

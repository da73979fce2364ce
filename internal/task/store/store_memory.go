// Package store provides task persistence: an in-memory implementation for
// tests and dev, and a PostgreSQL implementation for production.
package store

import (
	"context"
	"sort"
	"sync"

	"taskdeck/internal/task/models"
	id "taskdeck/pkg/domain"
	"taskdeck/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store. Copies on the way in and out so
// callers can't mutate stored state behind the lock.
type InMemory struct {
	mu    sync.RWMutex
	tasks map[id.TaskID]models.Task
}

func NewInMemory() *InMemory {
	return &InMemory{tasks: make(map[id.TaskID]models.Task)}
}

func (s *InMemory) Insert(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[task.ID]; exists {
		return sentinel.ErrConflict
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *InMemory) FindByID(_ context.Context, taskID id.TaskID) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &task, nil
}

func (s *InMemory) FindByOrg(_ context.Context, orgID id.OrgID) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Task
	for _, task := range s.tasks {
		if task.OrganizationID != orgID {
			continue
		}
		t := task
		out = append(out, &t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *InMemory) Update(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *InMemory) DeleteByID(_ context.Context, taskID id.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[taskID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

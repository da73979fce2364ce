package auth

import (
	"context"
	"strings"
	"sync"

	id "taskdeck/pkg/domain"
	"taskdeck/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in process memory, keyed case-insensitively
// by email.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[id.UserID]User
	byEmail map[string]id.UserID
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:    make(map[id.UserID]User),
		byEmail: make(map[string]id.UserID),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[user.ID] = *user
	s.byEmail[key] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	user := s.byID[userID]
	return &user, nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &user, nil
}

// InMemoryOrgStore keeps organizations in process memory with
// case-insensitive name uniqueness.
type InMemoryOrgStore struct {
	mu     sync.RWMutex
	byID   map[id.OrgID]Organization
	byName map[string]id.OrgID
}

func NewInMemoryOrgStore() *InMemoryOrgStore {
	return &InMemoryOrgStore{
		byID:   make(map[id.OrgID]Organization),
		byName: make(map[string]id.OrgID),
	}
}

func (s *InMemoryOrgStore) Create(_ context.Context, org *Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(org.Name)
	if _, exists := s.byName[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[org.ID] = *org
	s.byName[key] = org.ID
	return nil
}

func (s *InMemoryOrgStore) FindByName(_ context.Context, name string) (*Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orgID, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	org := s.byID[orgID]
	return &org, nil
}

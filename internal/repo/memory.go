package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/mhdreza10/quizauth/internal/models"
)

// ==========================
// MemoryStore
// ==========================
// MemoryStore is an in-memory CredentialStore used by tests and by the web
// server in dev mode (STORE_BACKEND=memory). The mutex spans the whole
// check-then-insert in Create, so two concurrent registrations for the same
// username can never both succeed.
type MemoryStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*models.User),
		nextID: 1,
	}
}

func (s *MemoryStore) Create(_ context.Context, name, email, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, ErrDuplicateUsername
	}

	user := &models.User{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	}
	s.nextID++ // ids are never reused, even after deletes
	s.users[username] = user

	out := *user
	return &out, nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (s *MemoryStore) Exists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

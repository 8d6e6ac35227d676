package authRepository

import (
	"FinanceTracker/internal/api/auth"
	"FinanceTracker/internal/entity"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type memoryRepository struct {
	store *memoryUserStore
}

// NewMemory returns a Repository kept in process memory with the same
// username and email uniqueness as the users table.
func NewMemory(log *logrus.Logger) Repository {
	return &memoryRepository{
		store: &memoryUserStore{
			rows: make(map[int64]entity.User),
			log:  log,
		},
	}
}

func (r *memoryRepository) NewClient(_ bool) (Client, error) {
	noop := func() error { return nil }
	return Client{
		Users:    r.store,
		Commit:   noop,
		Rollback: noop,
	}, nil
}

type memoryUserStore struct {
	mu     sync.RWMutex
	rows   map[int64]entity.User
	nextID int64
	log    *logrus.Logger
}

func (s *memoryUserStore) Create(_ context.Context, user entity.User) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conflict(user, 0); err != nil {
		return entity.User{}, err
	}

	s.nextID++
	now := time.Now().UTC()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.rows[user.ID] = user

	return user, nil
}

func (s *memoryUserStore) GetByID(_ context.Context, id int64) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.rows[id]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

func (s *memoryUserStore) GetByUsername(_ context.Context, username string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.rows {
		if user.Username == username {
			return user, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (s *memoryUserStore) GetAll(_ context.Context) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entity.User, 0, len(s.rows))
	for _, user := range s.rows {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memoryUserStore) Update(_ context.Context, user entity.User) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[user.ID]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	if err := s.conflict(user, user.ID); err != nil {
		return entity.User{}, err
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	s.rows[user.ID] = user

	return user, nil
}

func (s *memoryUserStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *memoryUserStore) conflict(user entity.User, excludeID int64) error {
	for id, existing := range s.rows {
		if id == excludeID {
			continue
		}
		if existing.Username == user.Username {
			return auth.ErrUsernameAlreadyExists
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return auth.ErrEmailAlreadyExists
		}
	}
	return nil
}

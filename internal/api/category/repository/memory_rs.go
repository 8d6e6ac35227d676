package categoryRepository

import (
	"FinanceTracker/internal/api/category"
	"FinanceTracker/internal/entity"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type memoryRepository struct {
	store *memoryCategoryStore
}

// NewMemory returns a Repository kept in process memory. Commit and Rollback
// are no-ops.
func NewMemory(log *logrus.Logger) Repository {
	return &memoryRepository{
		store: &memoryCategoryStore{
			rows: make(map[int64]entity.Category),
			log:  log,
		},
	}
}

func (r *memoryRepository) NewClient(_ bool) (Client, error) {
	noop := func() error { return nil }
	return Client{
		Categories: r.store,
		Commit:     noop,
		Rollback:   noop,
	}, nil
}

type memoryCategoryStore struct {
	mu     sync.RWMutex
	rows   map[int64]entity.Category
	nextID int64
	log    *logrus.Logger
}

func (s *memoryCategoryStore) GetAll(_ context.Context) ([]entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entity.Category, 0, len(s.rows))
	for _, c := range s.rows {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (s *memoryCategoryStore) GetByID(_ context.Context, id int64) (entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.rows[id]
	if !ok {
		return entity.Category{}, category.ErrCategoryNotFound
	}
	return c, nil
}

func (s *memoryCategoryStore) Create(_ context.Context, c entity.Category) (entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(c.Name, 0) {
		return entity.Category{}, category.ErrCategoryAlreadyExists
	}

	s.nextID++
	now := time.Now().UTC()
	c.ID = s.nextID
	c.CreatedAt = now
	c.UpdatedAt = now
	s.rows[c.ID] = c

	return c, nil
}

func (s *memoryCategoryStore) Update(_ context.Context, c entity.Category) (entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[c.ID]
	if !ok {
		return entity.Category{}, category.ErrCategoryNotFound
	}
	if s.nameTaken(c.Name, c.ID) {
		return entity.Category{}, category.ErrCategoryAlreadyExists
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.rows[c.ID] = c

	return c, nil
}

func (s *memoryCategoryStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *memoryCategoryStore) ExistsByNameIgnoreCase(_ context.Context, name string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nameTaken(name, excludeID), nil
}

func (s *memoryCategoryStore) nameTaken(name string, excludeID int64) bool {
	for id, c := range s.rows {
		if id != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

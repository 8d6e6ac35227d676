package goalRepository

import (
	"FinanceTracker/internal/api/goal"
	"FinanceTracker/internal/entity"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type memoryRepository struct {
	store *memoryGoalStore
}

// NewMemory returns a Repository kept in process memory. It enforces the
// single active goal per user and category like the partial unique index.
func NewMemory(log *logrus.Logger) Repository {
	return &memoryRepository{
		store: &memoryGoalStore{
			rows: make(map[int64]entity.Goal),
			log:  log,
		},
	}
}

func (r *memoryRepository) NewClient(_ bool) (Client, error) {
	noop := func() error { return nil }
	return Client{
		Goals:    r.store,
		Commit:   noop,
		Rollback: noop,
	}, nil
}

type memoryGoalStore struct {
	mu     sync.RWMutex
	rows   map[int64]entity.Goal
	nextID int64
	log    *logrus.Logger
}

func (s *memoryGoalStore) sorted(keep func(entity.Goal) bool) []entity.Goal {
	result := make([]entity.Goal, 0)
	for _, g := range s.rows {
		if keep(g) {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *memoryGoalStore) GetAll(_ context.Context) ([]entity.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(entity.Goal) bool { return true }), nil
}

func (s *memoryGoalStore) GetAllByUserID(_ context.Context, userID int64) ([]entity.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(g entity.Goal) bool { return g.UserID == userID }), nil
}

func (s *memoryGoalStore) GetByID(_ context.Context, id int64) (entity.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.rows[id]
	if !ok {
		return entity.Goal{}, goal.ErrGoalNotFound
	}
	return g, nil
}

func (s *memoryGoalStore) GetActiveByUserIDAndCategoryID(_ context.Context, userID int64, categoryID int64) (entity.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g, ok := s.active(userID, categoryID, 0); ok {
		return g, nil
	}
	return entity.Goal{}, goal.ErrNoActiveGoal
}

func (s *memoryGoalStore) Create(_ context.Context, g entity.Goal) (entity.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.Active {
		if _, ok := s.active(g.UserID, g.CategoryID, 0); ok {
			return entity.Goal{}, goal.ErrActiveGoalConflict
		}
	}

	s.nextID++
	now := time.Now().UTC()
	g.ID = s.nextID
	g.CreatedAt = now
	g.UpdatedAt = now
	s.rows[g.ID] = g

	return g, nil
}

func (s *memoryGoalStore) Update(_ context.Context, g entity.Goal) (entity.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[g.ID]
	if !ok {
		return entity.Goal{}, goal.ErrGoalNotFound
	}
	if g.Active {
		if _, ok := s.active(g.UserID, g.CategoryID, g.ID); ok {
			return entity.Goal{}, goal.ErrActiveGoalConflict
		}
	}

	g.UserID = existing.UserID
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now().UTC()
	s.rows[g.ID] = g

	return g, nil
}

func (s *memoryGoalStore) DeactivateByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.rows[id]
	if !ok {
		return false, nil
	}
	g.Active = false
	g.UpdatedAt = time.Now().UTC()
	s.rows[id] = g
	return true, nil
}

func (s *memoryGoalStore) DeactivateActiveByUserIDAndCategoryID(_ context.Context, userID int64, categoryID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for id, g := range s.rows {
		if g.Active && g.UserID == userID && g.CategoryID == categoryID {
			g.Active = false
			g.UpdatedAt = time.Now().UTC()
			s.rows[id] = g
			affected++
		}
	}
	return affected, nil
}

func (s *memoryGoalStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *memoryGoalStore) ExistsByCategoryID(_ context.Context, categoryID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.rows {
		if g.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryGoalStore) active(userID int64, categoryID int64, excludeID int64) (entity.Goal, bool) {
	for id, g := range s.rows {
		if id != excludeID && g.Active && g.UserID == userID && g.CategoryID == categoryID {
			return g, true
		}
	}
	return entity.Goal{}, false
}

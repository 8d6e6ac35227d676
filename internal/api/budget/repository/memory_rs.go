package budgetRepository

import (
	"FinanceTracker/internal/api/budget"
	"FinanceTracker/internal/entity"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type memoryRepository struct {
	store *memoryBudgetStore
}

// NewMemory returns a Repository kept in process memory. It enforces the
// single active budget per user and category like the partial unique index.
func NewMemory(log *logrus.Logger) Repository {
	return &memoryRepository{
		store: &memoryBudgetStore{
			rows: make(map[int64]entity.Budget),
			log:  log,
		},
	}
}

func (r *memoryRepository) NewClient(_ bool) (Client, error) {
	noop := func() error { return nil }
	return Client{
		Budgets:  r.store,
		Commit:   noop,
		Rollback: noop,
	}, nil
}

type memoryBudgetStore struct {
	mu     sync.RWMutex
	rows   map[int64]entity.Budget
	nextID int64
	log    *logrus.Logger
}

func (s *memoryBudgetStore) sorted(keep func(entity.Budget) bool) []entity.Budget {
	result := make([]entity.Budget, 0)
	for _, b := range s.rows {
		if keep(b) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *memoryBudgetStore) GetAll(_ context.Context) ([]entity.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(entity.Budget) bool { return true }), nil
}

func (s *memoryBudgetStore) GetAllByUserID(_ context.Context, userID int64) ([]entity.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(b entity.Budget) bool { return b.UserID == userID }), nil
}

func (s *memoryBudgetStore) GetByID(_ context.Context, id int64) (entity.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.rows[id]
	if !ok {
		return entity.Budget{}, budget.ErrBudgetNotFound
	}
	return b, nil
}

func (s *memoryBudgetStore) GetActiveByUserIDAndCategoryID(_ context.Context, userID int64, categoryID int64) (entity.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.active(userID, categoryID, 0); ok {
		return b, nil
	}
	return entity.Budget{}, budget.ErrNoActiveBudget
}

func (s *memoryBudgetStore) Create(_ context.Context, b entity.Budget) (entity.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Active {
		if _, ok := s.active(b.UserID, b.CategoryID, 0); ok {
			return entity.Budget{}, budget.ErrActiveBudgetConflict
		}
	}

	s.nextID++
	now := time.Now().UTC()
	b.ID = s.nextID
	b.PeriodStart = entity.TruncateDate(b.PeriodStart)
	b.PeriodEnd = entity.TruncateDate(b.PeriodEnd)
	b.CreatedAt = now
	b.UpdatedAt = now
	s.rows[b.ID] = b

	return b, nil
}

func (s *memoryBudgetStore) Update(_ context.Context, b entity.Budget) (entity.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[b.ID]
	if !ok {
		return entity.Budget{}, budget.ErrBudgetNotFound
	}
	if b.Active {
		if _, ok := s.active(b.UserID, b.CategoryID, b.ID); ok {
			return entity.Budget{}, budget.ErrActiveBudgetConflict
		}
	}

	b.UserID = existing.UserID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	s.rows[b.ID] = b

	return b, nil
}

func (s *memoryBudgetStore) DeactivateByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.rows[id]
	if !ok {
		return false, nil
	}
	b.Active = false
	b.UpdatedAt = time.Now().UTC()
	s.rows[id] = b
	return true, nil
}

func (s *memoryBudgetStore) DeactivateActiveByUserIDAndCategoryID(_ context.Context, userID int64, categoryID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for id, b := range s.rows {
		if b.Active && b.UserID == userID && b.CategoryID == categoryID {
			b.Active = false
			b.UpdatedAt = time.Now().UTC()
			s.rows[id] = b
			affected++
		}
	}
	return affected, nil
}

func (s *memoryBudgetStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *memoryBudgetStore) ExistsByCategoryID(_ context.Context, categoryID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.rows {
		if b.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryBudgetStore) active(userID int64, categoryID int64, excludeID int64) (entity.Budget, bool) {
	for id, b := range s.rows {
		if id != excludeID && b.Active && b.UserID == userID && b.CategoryID == categoryID {
			return b, true
		}
	}
	return entity.Budget{}, false
}

package transactionRepository

import (
	"FinanceTracker/internal/api/transaction"
	"FinanceTracker/internal/entity"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type memoryRepository struct {
	store *memoryTransactionStore
}

// NewMemory returns a Repository kept in process memory. Filters are evaluated
// with entity.TransactionFilter.Matches. Commit and Rollback are no-ops.
func NewMemory(log *logrus.Logger) Repository {
	return &memoryRepository{
		store: &memoryTransactionStore{
			rows: make(map[int64]entity.Transaction),
			log:  log,
		},
	}
}

func (r *memoryRepository) NewClient(_ bool) (Client, error) {
	noop := func() error { return nil }
	return Client{
		Transactions: r.store,
		Commit:       noop,
		Rollback:     noop,
	}, nil
}

type memoryTransactionStore struct {
	mu     sync.RWMutex
	rows   map[int64]entity.Transaction
	nextID int64
	log    *logrus.Logger
}

func (s *memoryTransactionStore) GetAll(_ context.Context, filter entity.TransactionFilter) ([]entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entity.Transaction, 0)
	for _, t := range s.rows {
		if filter.Matches(t) {
			result = append(result, t)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

func (s *memoryTransactionStore) GetByID(_ context.Context, id int64) (entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.rows[id]
	if !ok {
		return entity.Transaction{}, transaction.ErrTransactionNotFound
	}
	return t, nil
}

func (s *memoryTransactionStore) Create(_ context.Context, t entity.Transaction) (entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now().UTC()
	t.ID = s.nextID
	t.Date = entity.TruncateDate(t.Date)
	t.CreatedAt = now
	t.UpdatedAt = now
	s.rows[t.ID] = t

	return t, nil
}

func (s *memoryTransactionStore) Update(_ context.Context, t entity.Transaction) (entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[t.ID]
	if !ok {
		return entity.Transaction{}, transaction.ErrTransactionNotFound
	}

	existing.Amount = t.Amount
	existing.Description = t.Description
	existing.CategoryID = t.CategoryID
	existing.UpdatedAt = time.Now().UTC()
	s.rows[t.ID] = existing

	return existing, nil
}

func (s *memoryTransactionStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *memoryTransactionStore) Sum(_ context.Context, filter entity.TransactionFilter) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range s.rows {
		if filter.Matches(t) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (s *memoryTransactionStore) ExistsByCategoryID(_ context.Context, categoryID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.rows {
		if t.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

package transactionRepository

import (
	"FinanceTracker/internal/entity"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Transactions: &transactionRepository{q: sqlExecutor, log: r.log},
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type TransactionStore interface {
	// GetAll returns matching rows, newest date first.
	GetAll(ctx context.Context, filter entity.TransactionFilter) ([]entity.Transaction, error)
	GetByID(ctx context.Context, id int64) (entity.Transaction, error)
	Create(ctx context.Context, transaction entity.Transaction) (entity.Transaction, error)
	Update(ctx context.Context, transaction entity.Transaction) (entity.Transaction, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	// Sum adds the amounts of matching rows; no rows sum to zero.
	Sum(ctx context.Context, filter entity.TransactionFilter) (decimal.Decimal, error)
	ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error)
}

type Client struct {
	Transactions TransactionStore

	Commit   func() error
	Rollback func() error
}

type transactionRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

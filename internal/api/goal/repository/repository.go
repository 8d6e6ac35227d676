package goalRepository

import (
	"FinanceTracker/internal/entity"
	"context"

	"github.com/jmoiron/sqlx"
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
		Goals:    &goalRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type GoalStore interface {
	GetAll(ctx context.Context) ([]entity.Goal, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error)
	GetByID(ctx context.Context, id int64) (entity.Goal, error)
	GetActiveByUserIDAndCategoryID(ctx context.Context, userID int64, categoryID int64) (entity.Goal, error)
	Create(ctx context.Context, goal entity.Goal) (entity.Goal, error)
	Update(ctx context.Context, goal entity.Goal) (entity.Goal, error)
	DeactivateByID(ctx context.Context, id int64) (bool, error)
	DeactivateActiveByUserIDAndCategoryID(ctx context.Context, userID int64, categoryID int64) (int64, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error)
}

type Client struct {
	Goals GoalStore

	Commit   func() error
	Rollback func() error
}

type goalRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

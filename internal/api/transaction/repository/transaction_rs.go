package transactionRepository

import (
	"FinanceTracker/database/postgres"
	"FinanceTracker/internal/api/transaction"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type transactionDB struct {
	ID          int64           `db:"id"`
	Date        time.Time       `db:"date"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	CategoryID  int64           `db:"category_id"`
	UserID      int64           `db:"user_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r *transactionRepository) GetAll(ctx context.Context, filter entity.TransactionFilter) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []transactionDB

	base, argsKV := buildFilterQuery(queryGetAllTransactions, filter)

	query, args, err := sqlx.Named(base+orderTransactions, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAll transactions named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAll transactions execution err")
		return nil, err
	}

	result := make([]entity.Transaction, 0, len(rows))
	for _, row := range rows {
		result = append(result, makeTransaction(row))
	}

	return result, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row transactionDB

	query, args, err := sqlx.Named(queryGetTransactionByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID transaction named query preparation err")
		return entity.Transaction{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":     requestID,
				"transaction_id": id,
			}).Warn("GetByID transaction no rows found")
			return entity.Transaction{}, transaction.ErrTransactionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID transaction execution err")
		return entity.Transaction{}, err
	}

	return makeTransaction(row), nil
}

func (r *transactionRepository) Create(ctx context.Context, t entity.Transaction) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := time.Now().UTC()

	query, args, err := sqlx.Named(queryCreateTransaction, map[string]interface{}{
		"date":        entity.FormatDate(t.Date),
		"type":        string(t.Type),
		"amount":      t.Amount,
		"description": t.Description,
		"category_id": t.CategoryID,
		"user_id":     t.UserID,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Create transaction")
		return entity.Transaction{}, err
	}
	query = r.q.Rebind(query)

	var row transactionDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if _, ok := postgres.ForeignKeyViolation(err); ok {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": t.CategoryID,
			}).Warn("Transaction references a missing category or user")
			return entity.Transaction{}, transaction.ErrUnknownCategory
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating transaction")
		return entity.Transaction{}, err
	}

	return makeTransaction(row), nil
}

func (r *transactionRepository) Update(ctx context.Context, t entity.Transaction) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpdateTransaction, map[string]interface{}{
		"id":          t.ID,
		"amount":      t.Amount,
		"description": t.Description,
		"category_id": t.CategoryID,
		"updated_at":  time.Now().UTC(),
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update transaction named query preparation err")
		return entity.Transaction{}, err
	}
	query = r.q.Rebind(query)

	var row transactionDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":     requestID,
				"transaction_id": t.ID,
			}).Warn("Update transaction no rows affected")
			return entity.Transaction{}, transaction.ErrTransactionNotFound
		}
		if _, ok := postgres.ForeignKeyViolation(err); ok {
			return entity.Transaction{}, transaction.ErrUnknownCategory
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update transaction execution err")
		return entity.Transaction{}, err
	}

	return makeTransaction(row), nil
}

func (r *transactionRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteTransaction, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteByID transaction named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteByID transaction execution err")
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteByID transaction rows affected err")
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *transactionRepository) Sum(ctx context.Context, filter entity.TransactionFilter) (decimal.Decimal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	base, argsKV := buildFilterQuery(querySumTransactions, filter)

	query, args, err := sqlx.Named(base, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Sum transactions named query preparation err")
		return decimal.Zero, err
	}
	query = r.q.Rebind(query)

	var total decimal.Decimal
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Sum transactions execution err")
		return decimal.Zero, err
	}

	return total, nil
}

func (r *transactionRepository) ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryExistsTransactionByCategory, map[string]interface{}{
		"category_id": categoryID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExistsByCategoryID named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	var exists bool
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExistsByCategoryID execution err")
		return false, err
	}

	return exists, nil
}

func makeTransaction(row transactionDB) entity.Transaction {
	return entity.Transaction{
		ID:          row.ID,
		Date:        entity.TruncateDate(row.Date),
		Type:        entity.TransactionType(row.Type),
		Amount:      row.Amount,
		Description: row.Description,
		CategoryID:  row.CategoryID,
		UserID:      row.UserID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

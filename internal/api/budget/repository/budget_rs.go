package budgetRepository

import (
	"FinanceTracker/database/postgres"
	"FinanceTracker/internal/api/budget"
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

type budgetDB struct {
	ID          int64           `db:"id"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
	CategoryID  int64           `db:"category_id"`
	UserID      int64           `db:"user_id"`
	Active      bool            `db:"active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r *budgetRepository) prepare(requestID string, operation string, query string, argsKV map[string]interface{}) (string, []interface{}, error) {
	query, args, err := sqlx.Named(query, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Budget named query preparation err")
		return "", nil, err
	}
	return r.q.Rebind(query), args, nil
}

func (r *budgetRepository) selectBudgets(ctx context.Context, operation string, query string, argsKV map[string]interface{}) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := r.prepare(requestID, operation, query, argsKV)
	if err != nil {
		return nil, err
	}

	var rows []budgetDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Budget select execution err")
		return nil, err
	}

	result := make([]entity.Budget, 0, len(rows))
	for _, row := range rows {
		result = append(result, makeBudget(row))
	}
	return result, nil
}

func (r *budgetRepository) getOne(ctx context.Context, operation string, query string, argsKV map[string]interface{}, notFound error) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := r.prepare(requestID, operation, query, argsKV)
	if err != nil {
		return entity.Budget{}, err
	}

	var row budgetDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"operation":  operation,
			}).Warn("Budget no rows found")
			return entity.Budget{}, notFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Budget query execution err")
		return entity.Budget{}, err
	}

	return makeBudget(row), nil
}

func (r *budgetRepository) GetAll(ctx context.Context) ([]entity.Budget, error) {
	return r.selectBudgets(ctx, "GetAll", queryGetAllBudgets, map[string]interface{}{})
}

func (r *budgetRepository) GetAllByUserID(ctx context.Context, userID int64) ([]entity.Budget, error) {
	return r.selectBudgets(ctx, "GetAllByUserID", queryGetBudgetsByUserID, map[string]interface{}{
		"user_id": userID,
	})
}

func (r *budgetRepository) GetByID(ctx context.Context, id int64) (entity.Budget, error) {
	return r.getOne(ctx, "GetByID", queryGetBudgetByID, map[string]interface{}{
		"id": id,
	}, budget.ErrBudgetNotFound)
}

func (r *budgetRepository) GetActiveByUserIDAndCategoryID(ctx context.Context, userID int64, categoryID int64) (entity.Budget, error) {
	return r.getOne(ctx, "GetActiveByUserIDAndCategoryID", queryGetActiveBudget, map[string]interface{}{
		"user_id":     userID,
		"category_id": categoryID,
	}, budget.ErrNoActiveBudget)
}

func (r *budgetRepository) Create(ctx context.Context, b entity.Budget) (entity.Budget, error) {
	now := time.Now().UTC()
	created, err := r.getOne(ctx, "Create", queryCreateBudget, map[string]interface{}{
		"total_amount": b.TotalAmount,
		"period_start": entity.FormatDate(b.PeriodStart),
		"period_end":   entity.FormatDate(b.PeriodEnd),
		"category_id":  b.CategoryID,
		"user_id":      b.UserID,
		"active":       b.Active,
		"created_at":   now,
		"updated_at":   now,
	}, budget.ErrBudgetNotFound)

	return created, translateWriteErr(err)
}

func (r *budgetRepository) Update(ctx context.Context, b entity.Budget) (entity.Budget, error) {
	updated, err := r.getOne(ctx, "Update", queryUpdateBudget, map[string]interface{}{
		"id":           b.ID,
		"total_amount": b.TotalAmount,
		"period_start": entity.FormatDate(b.PeriodStart),
		"period_end":   entity.FormatDate(b.PeriodEnd),
		"category_id":  b.CategoryID,
		"active":       b.Active,
		"updated_at":   time.Now().UTC(),
	}, budget.ErrBudgetNotFound)

	return updated, translateWriteErr(err)
}

func (r *budgetRepository) DeactivateByID(ctx context.Context, id int64) (bool, error) {
	affected, err := r.exec(ctx, "DeactivateByID", queryDeactivateBudget, map[string]interface{}{
		"id":         id,
		"updated_at": time.Now().UTC(),
	})
	return affected > 0, err
}

func (r *budgetRepository) DeactivateActiveByUserIDAndCategoryID(ctx context.Context, userID int64, categoryID int64) (int64, error) {
	return r.exec(ctx, "DeactivateActiveByUserIDAndCategoryID", queryDeactivateActiveBudgets, map[string]interface{}{
		"user_id":     userID,
		"category_id": categoryID,
		"updated_at":  time.Now().UTC(),
	})
}

func (r *budgetRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	affected, err := r.exec(ctx, "DeleteByID", queryDeleteBudget, map[string]interface{}{
		"id": id,
	})
	return affected > 0, err
}

func (r *budgetRepository) ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := r.prepare(requestID, "ExistsByCategoryID", queryExistsBudgetByCategory, map[string]interface{}{
		"category_id": categoryID,
	})
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExistsByCategoryID budget execution err")
		return false, err
	}

	return exists, nil
}

func (r *budgetRepository) exec(ctx context.Context, operation string, query string, argsKV map[string]interface{}) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := r.prepare(requestID, operation, query, argsKV)
	if err != nil {
		return 0, err
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Budget exec err")
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Budget rows affected err")
		return 0, err
	}

	return rowsAffected, nil
}

func translateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := postgres.UniqueViolation(err); ok {
		return budget.ErrActiveBudgetConflict
	}
	if _, ok := postgres.ForeignKeyViolation(err); ok {
		return budget.ErrUnknownCategory
	}
	return err
}

func makeBudget(row budgetDB) entity.Budget {
	return entity.Budget{
		ID:          row.ID,
		UserID:      row.UserID,
		CategoryID:  row.CategoryID,
		TotalAmount: row.TotalAmount,
		PeriodStart: entity.TruncateDate(row.PeriodStart),
		PeriodEnd:   entity.TruncateDate(row.PeriodEnd),
		Active:      row.Active,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

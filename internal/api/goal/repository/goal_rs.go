package goalRepository

import (
	"FinanceTracker/database/postgres"
	"FinanceTracker/internal/api/goal"
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

type goalDB struct {
	ID           int64           `db:"id"`
	TargetAmount decimal.Decimal `db:"target_amount"`
	CategoryID   int64           `db:"category_id"`
	UserID       int64           `db:"user_id"`
	Active       bool            `db:"active"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r *goalRepository) GetAll(ctx context.Context) ([]entity.Goal, error) {
	return r.list(ctx, queryGetAllGoals, map[string]interface{}{})
}

func (r *goalRepository) GetAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error) {
	return r.list(ctx, queryGetGoalsByUserID, map[string]interface{}{
		"user_id": userID,
	})
}

func (r *goalRepository) GetByID(ctx context.Context, id int64) (entity.Goal, error) {
	g, err := r.one(ctx, queryGetGoalByID, map[string]interface{}{
		"id": id,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Goal{}, goal.ErrGoalNotFound
	}
	return g, err
}

func (r *goalRepository) GetActiveByUserIDAndCategoryID(ctx context.Context, userID int64, categoryID int64) (entity.Goal, error) {
	g, err := r.one(ctx, queryGetActiveGoal, map[string]interface{}{
		"user_id":     userID,
		"category_id": categoryID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Goal{}, goal.ErrNoActiveGoal
	}
	return g, err
}

func (r *goalRepository) Create(ctx context.Context, g entity.Goal) (entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := time.Now().UTC()

	created, err := r.one(ctx, queryCreateGoal, map[string]interface{}{
		"target_amount": g.TargetAmount,
		"category_id":   g.CategoryID,
		"user_id":       g.UserID,
		"active":        g.Active,
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		if _, ok := postgres.UniqueViolation(err); ok {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"user_id":     g.UserID,
				"category_id": g.CategoryID,
			}).Warn("Active goal already exists")
			return entity.Goal{}, goal.ErrActiveGoalConflict
		}
		if _, ok := postgres.ForeignKeyViolation(err); ok {
			return entity.Goal{}, goal.ErrUnknownCategory
		}
		return entity.Goal{}, err
	}

	return created, nil
}

func (r *goalRepository) Update(ctx context.Context, g entity.Goal) (entity.Goal, error) {
	updated, err := r.one(ctx, queryUpdateGoal, map[string]interface{}{
		"id":            g.ID,
		"target_amount": g.TargetAmount,
		"category_id":   g.CategoryID,
		"active":        g.Active,
		"updated_at":    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Goal{}, goal.ErrGoalNotFound
		}
		if _, ok := postgres.UniqueViolation(err); ok {
			return entity.Goal{}, goal.ErrActiveGoalConflict
		}
		if _, ok := postgres.ForeignKeyViolation(err); ok {
			return entity.Goal{}, goal.ErrUnknownCategory
		}
		return entity.Goal{}, err
	}

	return updated, nil
}

func (r *goalRepository) DeactivateByID(ctx context.Context, id int64) (bool, error) {
	affected, err := r.exec(ctx, queryDeactivateGoal, map[string]interface{}{
		"id":         id,
		"updated_at": time.Now().UTC(),
	})
	return affected > 0, err
}

func (r *goalRepository) DeactivateActiveByUserIDAndCategoryID(ctx context.Context, userID int64, categoryID int64) (int64, error) {
	return r.exec(ctx, queryDeactivateActiveGoals, map[string]interface{}{
		"user_id":     userID,
		"category_id": categoryID,
		"updated_at":  time.Now().UTC(),
	})
}

func (r *goalRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	affected, err := r.exec(ctx, queryDeleteGoal, map[string]interface{}{
		"id": id,
	})
	return affected > 0, err
}

func (r *goalRepository) ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryExistsGoalByCategory, map[string]interface{}{
		"category_id": categoryID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExistsByCategoryID goal named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	var exists bool
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExistsByCategoryID goal execution err")
		return false, err
	}

	return exists, nil
}

func (r *goalRepository) list(ctx context.Context, namedQuery string, argsKV map[string]interface{}) ([]entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Goal list named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []goalDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Goal list execution err")
		return nil, err
	}

	result := make([]entity.Goal, 0, len(rows))
	for _, row := range rows {
		result = append(result, makeGoal(row))
	}
	return result, nil
}

// one returns sql.ErrNoRows unchanged so callers can pick their not-found error.
func (r *goalRepository) one(ctx context.Context, namedQuery string, argsKV map[string]interface{}) (entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Goal named query preparation err")
		return entity.Goal{}, err
	}
	query = r.q.Rebind(query)

	var row goalDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Goal no rows found")
		} else {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Goal query execution err")
		}
		return entity.Goal{}, err
	}

	return makeGoal(row), nil
}

func (r *goalRepository) exec(ctx context.Context, namedQuery string, argsKV map[string]interface{}) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Goal exec named query preparation err")
		return 0, err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Goal exec err")
		return 0, err
	}

	return result.RowsAffected()
}

func makeGoal(row goalDB) entity.Goal {
	return entity.Goal{
		ID:           row.ID,
		UserID:       row.UserID,
		CategoryID:   row.CategoryID,
		TargetAmount: row.TargetAmount,
		Active:       row.Active,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

package categoryRepository

import (
	"FinanceTracker/database/postgres"
	"FinanceTracker/internal/api/category"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	categories := make([]entity.Category, 0)

	if err := r.q.SelectContext(ctx, &categories, queryGetAllCategories); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAll categories execution err")
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var result entity.Category

	query, args, err := sqlx.Named(queryGetCategoryByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID category named query preparation err")
		return entity.Category{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": id,
			}).Warn("GetByID category no rows found")
			return entity.Category{}, category.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID category execution err")
		return entity.Category{}, err
	}

	return result, nil
}

func (r *categoryRepository) Create(ctx context.Context, c entity.Category) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := time.Now().UTC()

	query, args, err := sqlx.Named(queryCreateCategory, map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Create category")
		return entity.Category{}, err
	}
	query = r.q.Rebind(query)

	var created entity.Category
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		if _, ok := postgres.UniqueViolation(err); ok {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"name":       c.Name,
			}).Warn("Category name already exists")
			return entity.Category{}, category.ErrCategoryAlreadyExists
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating category")
		return entity.Category{}, err
	}

	return created, nil
}

func (r *categoryRepository) Update(ctx context.Context, c entity.Category) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpdateCategory, map[string]interface{}{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"updated_at":  time.Now().UTC(),
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update category named query preparation err")
		return entity.Category{}, err
	}
	query = r.q.Rebind(query)

	var updated entity.Category
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Category{}, category.ErrCategoryNotFound
		}
		if _, ok := postgres.UniqueViolation(err); ok {
			return entity.Category{}, category.ErrCategoryAlreadyExists
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Update category execution err")
		return entity.Category{}, err
	}

	return updated, nil
}

func (r *categoryRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteCategory, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteByID category named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if _, ok := postgres.ForeignKeyViolation(err); ok {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": id,
			}).Warn("Category still referenced")
			return false, category.ErrCategoryInUse
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteByID category execution err")
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteByID category rows affected err")
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *categoryRepository) ExistsByNameIgnoreCase(ctx context.Context, name string, excludeID int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryExistsCategoryByName, map[string]interface{}{
		"name":       name,
		"exclude_id": excludeID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExistsByNameIgnoreCase named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	var exists bool
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ExistsByNameIgnoreCase execution err")
		return false, err
	}

	return exists, nil
}

package categoryService

import (
	"FinanceTracker/internal/api/category"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"

	"github.com/sirupsen/logrus"
)

func (s *categoryService) GetAll(ctx context.Context) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	return repo.Categories.GetAll(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Category{}, err
	}

	return repo.Categories.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	newCategory := entity.Category{
		Name:        s.utils.NormalizeName(req.Name),
		Description: req.Description,
	}
	if err := newCategory.Validate(); err != nil {
		return entity.Category{}, err
	}

	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Category{}, err
	}

	exists, err := repo.Categories.ExistsByNameIgnoreCase(ctx, newCategory.Name, 0)
	if err != nil {
		return entity.Category{}, err
	}
	if exists {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       newCategory.Name,
		}).Warn("Category name already taken")
		return entity.Category{}, category.ErrCategoryAlreadyExists
	}

	created, err := repo.Categories.Create(ctx, newCategory)
	if err != nil {
		return entity.Category{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"category_id": created.ID,
	}).Info("Category created")

	return created, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req category.UpdateCategoryRequest) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	patch := req.ToPatch()
	if patch.Name != nil {
		name := s.utils.NormalizeName(*patch.Name)
		patch.Name = &name
	}

	repo, err := s.categoryRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Category{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Categories.GetByID(ctx, id)
	if err != nil {
		return entity.Category{}, err
	}

	patch.Apply(&existing)
	if err := existing.Validate(); err != nil {
		return entity.Category{}, err
	}

	if patch.Name != nil {
		taken, err := repo.Categories.ExistsByNameIgnoreCase(ctx, existing.Name, id)
		if err != nil {
			return entity.Category{}, err
		}
		if taken {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": id,
				"name":        existing.Name,
			}).Warn("Category rename collides with another category")
			return entity.Category{}, category.ErrCategoryAlreadyExists
		}
	}

	updated, err := repo.Categories.Update(ctx, existing)
	if err != nil {
		return entity.Category{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit category update")
		return entity.Category{}, err
	}

	return updated, nil
}

// Delete refuses to remove a category that transactions, budgets or goals
// still point at.
func (s *categoryService) Delete(ctx context.Context, id int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	inUse, err := s.inUse(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"category_id": id,
			"error":       err.Error(),
		}).Error("Failed to check category references")
		return false, err
	}
	if inUse {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"category_id": id,
		}).Warn("Category still referenced")
		return false, category.ErrCategoryInUse
	}

	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return false, err
	}

	return repo.Categories.DeleteByID(ctx, id)
}

func (s *categoryService) inUse(ctx context.Context, id int64) (bool, error) {
	transactions, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return false, err
	}
	if used, err := transactions.Transactions.ExistsByCategoryID(ctx, id); err != nil || used {
		return used, err
	}

	budgets, err := s.budgetRepository.NewClient(false)
	if err != nil {
		return false, err
	}
	if used, err := budgets.Budgets.ExistsByCategoryID(ctx, id); err != nil || used {
		return used, err
	}

	goals, err := s.goalRepository.NewClient(false)
	if err != nil {
		return false, err
	}
	return goals.Goals.ExistsByCategoryID(ctx, id)
}

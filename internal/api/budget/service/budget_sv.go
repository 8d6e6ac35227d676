package budgetService

import (
	"FinanceTracker/internal/api/budget"
	"FinanceTracker/internal/api/category"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

func (s *budgetService) GetAll(ctx context.Context, caller entity.UserLoginData) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if caller.IsAdmin() {
		return repo.Budgets.GetAll(ctx)
	}
	return repo.Budgets.GetAllByUserID(ctx, caller.ID)
}

func (s *budgetService) GetByID(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Budget{}, err
	}

	found, err := repo.Budgets.GetByID(ctx, id)
	if err != nil {
		return entity.Budget{}, err
	}
	if !caller.CanAccess(found.UserID) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    caller.ID,
			"budget_id":  id,
		}).Warn("Budget belongs to another user")
		return entity.Budget{}, budget.ErrBudgetNotOwned
	}

	return found, nil
}

// Create stores a new active budget. The caller's previous active budget for
// the same category is deactivated in the same database transaction.
func (s *budgetService) Create(ctx context.Context, caller entity.UserLoginData, req budget.CreateBudgetRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	start, err := entity.ParseDate(req.PeriodStart)
	if err != nil {
		return entity.Budget{}, entity.ErrInvalidPeriod
	}
	end, err := entity.ParseDate(req.PeriodEnd)
	if err != nil {
		return entity.Budget{}, entity.ErrInvalidPeriod
	}

	newBudget := entity.Budget{
		UserID:      caller.ID,
		CategoryID:  req.CategoryID,
		TotalAmount: req.TotalAmount,
		PeriodStart: start,
		PeriodEnd:   end,
		Active:      true,
	}
	if err := newBudget.Validate(); err != nil {
		return entity.Budget{}, err
	}

	if err := s.ensureCategory(ctx, newBudget.CategoryID); err != nil {
		return entity.Budget{}, err
	}

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Budget{}, err
	}
	defer repo.Rollback()

	replaced, err := repo.Budgets.DeactivateActiveByUserIDAndCategoryID(ctx, newBudget.UserID, newBudget.CategoryID)
	if err != nil {
		return entity.Budget{}, err
	}

	created, err := repo.Budgets.Create(ctx, newBudget)
	if err != nil {
		return entity.Budget{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit budget creation")
		return entity.Budget{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"budget_id":   created.ID,
		"deactivated": replaced,
	}).Info("Budget created")

	return created, nil
}

func (s *budgetService) Update(ctx context.Context, caller entity.UserLoginData, id int64, patch entity.BudgetPatch) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if patch.CategoryID != nil {
		if err := s.ensureCategory(ctx, *patch.CategoryID); err != nil {
			return entity.Budget{}, err
		}
	}

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Budget{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Budgets.GetByID(ctx, id)
	if err != nil {
		return entity.Budget{}, err
	}
	if !caller.CanAccess(existing.UserID) {
		return entity.Budget{}, budget.ErrBudgetNotOwned
	}

	patch.Apply(&existing)
	if err := existing.Validate(); err != nil {
		return entity.Budget{}, err
	}

	updated, err := repo.Budgets.Update(ctx, existing)
	if err != nil {
		return entity.Budget{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit budget update")
		return entity.Budget{}, err
	}

	return updated, nil
}

func (s *budgetService) Deactivate(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Budget, error) {
	existing, err := s.GetByID(ctx, caller, id)
	if err != nil {
		return entity.Budget{}, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		return entity.Budget{}, err
	}

	found, err := repo.Budgets.DeactivateByID(ctx, existing.ID)
	if err != nil {
		return entity.Budget{}, err
	}
	if !found {
		return entity.Budget{}, budget.ErrBudgetNotFound
	}

	return repo.Budgets.GetByID(ctx, existing.ID)
}

func (s *budgetService) Delete(ctx context.Context, caller entity.UserLoginData, id int64) (bool, error) {
	if _, err := s.GetByID(ctx, caller, id); err != nil {
		if errors.Is(err, budget.ErrBudgetNotFound) {
			return false, nil
		}
		return false, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		return false, err
	}

	return repo.Budgets.DeleteByID(ctx, id)
}

func (s *budgetService) ensureCategory(ctx context.Context, categoryID int64) error {
	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		return err
	}

	if _, err := repo.Categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return budget.ErrUnknownCategory
		}
		return err
	}
	return nil
}

package transactionService

import (
	"FinanceTracker/internal/api/budget"
	"FinanceTracker/internal/api/category"
	"FinanceTracker/internal/api/goal"
	"FinanceTracker/internal/api/transaction"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// GetAll lists the transactions matching filter. Callers other than admins
// only ever see their own rows, whatever user the filter names.
func (s *transactionService) GetAll(ctx context.Context, caller entity.UserLoginData, filter entity.TransactionFilter) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !caller.IsAdmin() {
		if filter.UserID != nil && *filter.UserID != caller.ID {
			return nil, transaction.ErrUserFilterForbidden
		}
		filter = filter.WithUser(caller.ID)
	}

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	return repo.Transactions.GetAll(ctx, filter)
}

func (s *transactionService) GetByID(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Transaction{}, err
	}

	found, err := repo.Transactions.GetByID(ctx, id)
	if err != nil {
		return entity.Transaction{}, err
	}

	if !caller.CanAccess(found.UserID) {
		s.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"user_id":        caller.ID,
			"transaction_id": id,
		}).Warn("Transaction belongs to another user")
		return entity.Transaction{}, transaction.ErrTransactionNotOwned
	}

	return found, nil
}

func (s *transactionService) Create(ctx context.Context, caller entity.UserLoginData, req transaction.CreateTransactionRequest) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	transactionType, err := entity.ParseTransactionType(req.Type)
	if err != nil {
		return entity.Transaction{}, err
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return entity.Transaction{}, transaction.ErrInvalidQueryParam
	}

	newTransaction := entity.Transaction{
		Date:        date,
		Type:        transactionType,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		UserID:      caller.ID,
	}
	if err := newTransaction.Validate(); err != nil {
		return entity.Transaction{}, err
	}

	if err := s.ensureCategory(ctx, newTransaction.CategoryID); err != nil {
		return entity.Transaction{}, err
	}

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Transaction{}, err
	}

	created, err := repo.Transactions.Create(ctx, newTransaction)
	if err != nil {
		return entity.Transaction{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"transaction_id": created.ID,
		"type":           created.Type,
	}).Info("Transaction created")

	s.watch(ctx, caller, created)

	return created, nil
}

func (s *transactionService) Update(ctx context.Context, caller entity.UserLoginData, id int64, patch entity.TransactionPatch) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if patch.CategoryID != nil {
		if err := s.ensureCategory(ctx, *patch.CategoryID); err != nil {
			return entity.Transaction{}, err
		}
	}

	repo, err := s.transactionRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Transaction{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Transactions.GetByID(ctx, id)
	if err != nil {
		return entity.Transaction{}, err
	}
	if !caller.CanAccess(existing.UserID) {
		return entity.Transaction{}, transaction.ErrTransactionNotOwned
	}

	patch.Apply(&existing)
	if err := existing.Validate(); err != nil {
		return entity.Transaction{}, err
	}

	updated, err := repo.Transactions.Update(ctx, existing)
	if err != nil {
		return entity.Transaction{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction update")
		return entity.Transaction{}, err
	}

	return updated, nil
}

func (s *transactionService) Delete(ctx context.Context, caller entity.UserLoginData, id int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return false, err
	}

	existing, err := repo.Transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			return false, nil
		}
		return false, err
	}
	if !caller.CanAccess(existing.UserID) {
		return false, transaction.ErrTransactionNotOwned
	}

	return repo.Transactions.DeleteByID(ctx, id)
}

func (s *transactionService) ensureCategory(ctx context.Context, categoryID int64) error {
	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		return err
	}

	if _, err := repo.Categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return transaction.ErrUnknownCategory
		}
		return err
	}
	return nil
}

// watch runs the budget or goal check matching the new transaction. Failures
// are logged and never reach the caller.
func (s *transactionService) watch(ctx context.Context, caller entity.UserLoginData, created entity.Transaction) {
	requestID := contextPkg.GetRequestID(ctx)
	owner := caller
	owner.ID = created.UserID

	var err error
	switch created.Type {
	case entity.TransactionTypeExpense:
		if s.budgets == nil {
			return
		}
		_, err = s.budgets.CheckBudget(ctx, owner, created.CategoryID)
		if errors.Is(err, budget.ErrNoActiveBudget) {
			return
		}
	case entity.TransactionTypeIncome:
		if s.goals == nil {
			return
		}
		_, err = s.goals.CheckGoal(ctx, owner, created.CategoryID)
		if errors.Is(err, goal.ErrNoActiveGoal) {
			return
		}
	}

	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"transaction_id": created.ID,
			"error":          err.Error(),
		}).Warn("Failed to evaluate budget or goal")
	}
}

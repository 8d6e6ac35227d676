package budgetService

import (
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CheckBudget compares the caller's active budget for categoryID with the
// expenses recorded inside its period and notifies when the cap is reached.
func (s *budgetService) CheckBudget(ctx context.Context, caller entity.UserLoginData, categoryID int64) (entity.BudgetStatus, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.BudgetStatus{}, err
	}

	active, err := repo.Budgets.GetActiveByUserIDAndCategoryID(ctx, caller.ID, categoryID)
	if err != nil {
		return entity.BudgetStatus{}, err
	}

	spent, err := s.spent(ctx, caller.ID, active)
	if err != nil {
		return entity.BudgetStatus{}, err
	}

	status := entity.BudgetStatus{
		Budget:   active,
		Spent:    spent,
		Exceeded: active.Exceeded(spent),
	}
	if !status.Exceeded {
		return status, nil
	}

	status.Message = fmt.Sprintf("Budget %d exceeded: spent %s of %s", active.ID, spent.String(), active.TotalAmount.String())

	err = s.notifier.Notify(ctx, entity.Notification{
		UserID:    caller.ID,
		Kind:      entity.NotificationBudgetExceeded,
		Subject:   "Budget exceeded",
		Message:   status.Message,
		Recipient: caller.Email,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  active.ID,
			"error":      err.Error(),
		}).Warn("Failed to deliver budget notification")
	}

	return status, nil
}

// IsBudgetExceeded reports whether the expenses of userID in b's category and
// period add up to at least b's total amount.
func (s *budgetService) IsBudgetExceeded(ctx context.Context, userID int64, b entity.Budget) (bool, error) {
	spent, err := s.spent(ctx, userID, b)
	if err != nil {
		return false, err
	}
	return b.Exceeded(spent), nil
}

func (s *budgetService) spent(ctx context.Context, userID int64, b entity.Budget) (decimal.Decimal, error) {
	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return decimal.Zero, err
	}

	start, end := b.PeriodStart, b.PeriodEnd
	return repo.Transactions.Sum(ctx, entity.TransactionFilter{}.
		WithUser(userID).
		WithType(entity.TransactionTypeExpense).
		WithCategory(b.CategoryID).
		WithRange(&start, &end))
}

package goalService

import (
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CheckGoal measures the caller's all-time income in categoryID against the
// active goal for that category. Reaching the target sends a notification.
func (s *goalService) CheckGoal(ctx context.Context, caller entity.UserLoginData, categoryID int64) (entity.GoalStatus, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.client(ctx, false)
	if err != nil {
		return entity.GoalStatus{}, err
	}

	active, err := repo.Goals.GetActiveByUserIDAndCategoryID(ctx, caller.ID, categoryID)
	if err != nil {
		return entity.GoalStatus{}, err
	}

	saved, err := s.saved(ctx, caller.ID, categoryID)
	if err != nil {
		return entity.GoalStatus{}, err
	}

	status := entity.GoalStatus{
		Goal:    active,
		Saved:   saved,
		Reached: active.Reached(saved),
	}
	if !status.Reached {
		return status, nil
	}

	status.Message = fmt.Sprintf("Goal %d reached: saved %s of %s", active.ID, saved.String(), active.TargetAmount.String())

	err = s.notifier.Notify(ctx, entity.Notification{
		UserID:    caller.ID,
		Kind:      entity.NotificationGoalReached,
		Subject:   "Goal reached",
		Message:   status.Message,
		Recipient: caller.Email,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"goal_id":    active.ID,
			"error":      err.Error(),
		}).Warn("Failed to deliver goal notification")
	}

	return status, nil
}

func (s *goalService) IsGoalReached(ctx context.Context, userID int64, categoryID int64, g entity.Goal) (bool, error) {
	saved, err := s.saved(ctx, userID, categoryID)
	if err != nil {
		return false, err
	}
	return g.Reached(saved), nil
}

func (s *goalService) saved(ctx context.Context, userID int64, categoryID int64) (decimal.Decimal, error) {
	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return decimal.Zero, err
	}

	return repo.Transactions.Sum(ctx, entity.TransactionFilter{}.
		WithUser(userID).
		WithType(entity.TransactionTypeIncome).
		WithCategory(categoryID))
}

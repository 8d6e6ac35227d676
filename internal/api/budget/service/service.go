package budgetService

import (
	"FinanceTracker/internal/api/budget"
	budgetRepository "FinanceTracker/internal/api/budget/repository"
	categoryRepository "FinanceTracker/internal/api/category/repository"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	"FinanceTracker/internal/entity"
	"FinanceTracker/internal/notification"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type IBudgetService interface {
	GetAll(ctx context.Context, caller entity.UserLoginData) ([]entity.Budget, error)
	GetByID(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Budget, error)
	Create(ctx context.Context, caller entity.UserLoginData, req budget.CreateBudgetRequest) (entity.Budget, error)
	Update(ctx context.Context, caller entity.UserLoginData, id int64, patch entity.BudgetPatch) (entity.Budget, error)
	Deactivate(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Budget, error)
	Delete(ctx context.Context, caller entity.UserLoginData, id int64) (bool, error)

	CheckBudget(ctx context.Context, caller entity.UserLoginData, categoryID int64) (entity.BudgetStatus, error)
	IsBudgetExceeded(ctx context.Context, userID int64, b entity.Budget) (bool, error)
}

type budgetService struct {
	log                   *logrus.Logger
	budgetRepository      budgetRepository.Repository
	transactionRepository transactionRepository.Repository
	categoryRepository    categoryRepository.Repository
	notifier              notification.Notifier
	now                   func() time.Time
}

func NewBudgetService(
	log *logrus.Logger,
	br budgetRepository.Repository,
	tr transactionRepository.Repository,
	cr categoryRepository.Repository,
	notifier notification.Notifier,
) IBudgetService {
	return &budgetService{
		log:                   log,
		budgetRepository:      br,
		transactionRepository: tr,
		categoryRepository:    cr,
		notifier:              notifier,
		now:                   time.Now,
	}
}

package transactionService

import (
	"FinanceTracker/internal/api/transaction"
	categoryRepository "FinanceTracker/internal/api/category/repository"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	"FinanceTracker/internal/entity"
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ITransactionService interface {
	GetAll(ctx context.Context, caller entity.UserLoginData, filter entity.TransactionFilter) ([]entity.Transaction, error)
	GetByID(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Transaction, error)
	Create(ctx context.Context, caller entity.UserLoginData, req transaction.CreateTransactionRequest) (entity.Transaction, error)
	Update(ctx context.Context, caller entity.UserLoginData, id int64, patch entity.TransactionPatch) (entity.Transaction, error)
	Delete(ctx context.Context, caller entity.UserLoginData, id int64) (bool, error)

	IAggregationService
}

// IAggregationService derives amounts from a user's transactions. A missing
// bound leaves that side of the range open. Nothing here writes.
type IAggregationService interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetTotalIncome(ctx context.Context, userID int64, from, to *time.Time) (decimal.Decimal, error)
	GetTotalExpenses(ctx context.Context, userID int64, from, to *time.Time) (decimal.Decimal, error)
	GetMonthExpense(ctx context.Context, userID int64) (decimal.Decimal, error)
	AnalyzeExpensesByCategory(ctx context.Context, userID int64, from, to *time.Time) ([]entity.CategoryExpense, error)
	GenerateFinancialReport(ctx context.Context, userID int64, from, to *time.Time) (entity.FinancialReport, error)
}

// BudgetWatcher re-evaluates the caller's active budget for a category after
// an expense is recorded.
type BudgetWatcher interface {
	CheckBudget(ctx context.Context, caller entity.UserLoginData, categoryID int64) (entity.BudgetStatus, error)
}

// GoalWatcher re-evaluates the caller's active goal for a category after an
// income is recorded.
type GoalWatcher interface {
	CheckGoal(ctx context.Context, caller entity.UserLoginData, categoryID int64) (entity.GoalStatus, error)
}

type transactionService struct {
	log                   *logrus.Logger
	transactionRepository transactionRepository.Repository
	categoryRepository    categoryRepository.Repository
	budgets               BudgetWatcher
	goals                 GoalWatcher
	now                   func() time.Time
}

func NewTransactionService(
	log *logrus.Logger,
	tr transactionRepository.Repository,
	cr categoryRepository.Repository,
	budgets BudgetWatcher,
	goals GoalWatcher,
) ITransactionService {
	return &transactionService{
		log:                   log,
		transactionRepository: tr,
		categoryRepository:    cr,
		budgets:               budgets,
		goals:                 goals,
		now:                   time.Now,
	}
}

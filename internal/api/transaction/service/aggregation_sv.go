package transactionService

import (
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func (s *transactionService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	income, err := s.GetTotalIncome(ctx, userID, nil, nil)
	if err != nil {
		return decimal.Zero, err
	}

	expenses, err := s.GetTotalExpenses(ctx, userID, nil, nil)
	if err != nil {
		return decimal.Zero, err
	}

	return income.Sub(expenses), nil
}

func (s *transactionService) GetTotalIncome(ctx context.Context, userID int64, from, to *time.Time) (decimal.Decimal, error) {
	filter := entity.TransactionFilter{}.
		WithUser(userID).
		WithType(entity.TransactionTypeIncome).
		WithRange(from, to)

	return s.sum(ctx, filter)
}

func (s *transactionService) GetTotalExpenses(ctx context.Context, userID int64, from, to *time.Time) (decimal.Decimal, error) {
	filter := entity.TransactionFilter{}.
		WithUser(userID).
		WithType(entity.TransactionTypeExpense).
		WithRange(from, to)

	return s.sum(ctx, filter)
}

// GetMonthExpense sums the expenses of the UTC calendar month the service
// clock is currently in.
func (s *transactionService) GetMonthExpense(ctx context.Context, userID int64) (decimal.Decimal, error) {
	first, last := entity.MonthRange(s.now().UTC())
	return s.GetTotalExpenses(ctx, userID, &first, &last)
}

func (s *transactionService) AnalyzeExpensesByCategory(ctx context.Context, userID int64, from, to *time.Time) ([]entity.CategoryExpense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	expenses, err := repo.Transactions.GetAll(ctx, entity.TransactionFilter{}.
		WithUser(userID).
		WithType(entity.TransactionTypeExpense).
		WithRange(from, to))
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]decimal.Decimal)
	for _, expense := range expenses {
		totals[expense.CategoryID] = totals[expense.CategoryID].Add(expense.Amount)
	}

	result := make([]entity.CategoryExpense, 0, len(totals))
	if len(totals) == 0 {
		return result, nil
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	for categoryID, total := range totals {
		result = append(result, entity.CategoryExpense{
			CategoryID:    categoryID,
			CategoryName:  names[categoryID],
			TotalExpenses: total,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CategoryName != result[j].CategoryName {
			return result[i].CategoryName < result[j].CategoryName
		}
		return result[i].CategoryID < result[j].CategoryID
	})

	return result, nil
}

// GenerateFinancialReport combines the income and expenses of the range with
// the all-time balance.
func (s *transactionService) GenerateFinancialReport(ctx context.Context, userID int64, from, to *time.Time) (entity.FinancialReport, error) {
	income, err := s.GetTotalIncome(ctx, userID, from, to)
	if err != nil {
		return entity.FinancialReport{}, err
	}

	expenses, err := s.GetTotalExpenses(ctx, userID, from, to)
	if err != nil {
		return entity.FinancialReport{}, err
	}

	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return entity.FinancialReport{}, err
	}

	return entity.FinancialReport{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       balance,
	}, nil
}

func (s *transactionService) sum(ctx context.Context, filter entity.TransactionFilter) (decimal.Decimal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return decimal.Zero, err
	}

	total, err := repo.Transactions.Sum(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sum transactions")
		return decimal.Zero, err
	}

	return total, nil
}

func (s *transactionService) categoryNames(ctx context.Context) (map[int64]string, error) {
	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	categories, err := repo.Categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

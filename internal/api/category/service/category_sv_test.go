package categoryService

import (
	budgetRepository "FinanceTracker/internal/api/budget/repository"
	"FinanceTracker/internal/api/category"
	categoryRepository "FinanceTracker/internal/api/category/repository"
	goalRepository "FinanceTracker/internal/api/goal/repository"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	"FinanceTracker/internal/entity"
	"FinanceTracker/pkg/utils"
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc          ICategoryService
	transactions transactionRepository.Repository
	budgets      budgetRepository.Repository
	goals        goalRepository.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := fixture{
		transactions: transactionRepository.NewMemory(log),
		budgets:      budgetRepository.NewMemory(log),
		goals:        goalRepository.NewMemory(log),
	}
	f.svc = NewCategoryService(log, categoryRepository.NewMemory(log), f.transactions, f.budgets, f.goals, utils.New())
	return f
}

func TestCreateRejectsCaseInsensitiveDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food, err := f.svc.Create(ctx, category.CreateCategoryRequest{Name: "  Food  "})
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Name)
	assert.NotZero(t, food.ID)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "lower case", input: "food", wantErr: category.ErrCategoryAlreadyExists},
		{name: "upper case", input: "FOOD", wantErr: category.ErrCategoryAlreadyExists},
		{name: "inner whitespace collapsed", input: "Rent  Money", wantErr: nil},
		{name: "blank", input: "   ", wantErr: entity.ErrInvalidCategoryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, category.CreateCategoryRequest{Name: tt.input})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateRechecksUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food, err := f.svc.Create(ctx, category.CreateCategoryRequest{Name: "Food"})
	require.NoError(t, err)
	rent, err := f.svc.Create(ctx, category.CreateCategoryRequest{Name: "Rent", Description: "monthly"})
	require.NoError(t, err)

	name := "FOOD"
	_, err = f.svc.Update(ctx, rent.ID, category.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, category.ErrCategoryAlreadyExists)

	renamed, err := f.svc.Update(ctx, food.ID, category.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "FOOD", renamed.Name)

	description := "housing"
	updated, err := f.svc.Update(ctx, rent.ID, category.UpdateCategoryRequest{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Rent", updated.Name)
	assert.Equal(t, "housing", updated.Description)

	_, err = f.svc.Update(ctx, 999, category.UpdateCategoryRequest{Description: &description})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestDeleteIsRestricted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		reference func(t *testing.T, categoryID int64)
		wantErr   error
	}{
		{
			name:      "unreferenced",
			reference: func(*testing.T, int64) {},
		},
		{
			name: "referenced by transaction",
			reference: func(t *testing.T, categoryID int64) {
				client, err := f.transactions.NewClient(false)
				require.NoError(t, err)
				_, err = client.Transactions.Create(ctx, entity.Transaction{
					Date:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
					Type:       entity.TransactionTypeExpense,
					Amount:     decimal.NewFromInt(10),
					CategoryID: categoryID,
					UserID:     1,
				})
				require.NoError(t, err)
			},
			wantErr: category.ErrCategoryInUse,
		},
		{
			name: "referenced by budget",
			reference: func(t *testing.T, categoryID int64) {
				client, err := f.budgets.NewClient(false)
				require.NoError(t, err)
				_, err = client.Budgets.Create(ctx, entity.Budget{
					UserID:      1,
					CategoryID:  categoryID,
					TotalAmount: decimal.NewFromInt(100),
					PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
					PeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
					Active:      true,
				})
				require.NoError(t, err)
			},
			wantErr: category.ErrCategoryInUse,
		},
		{
			name: "referenced by goal",
			reference: func(t *testing.T, categoryID int64) {
				client, err := f.goals.NewClient(false)
				require.NoError(t, err)
				_, err = client.Goals.Create(ctx, entity.Goal{
					UserID:       1,
					CategoryID:   categoryID,
					TargetAmount: decimal.NewFromInt(500),
					Active:       true,
				})
				require.NoError(t, err)
			},
			wantErr: category.ErrCategoryInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := f.svc.Create(ctx, category.CreateCategoryRequest{Name: tt.name})
			require.NoError(t, err)
			tt.reference(t, created.ID)

			deleted, err := f.svc.Delete(ctx, created.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, deleted)
				_, err = f.svc.GetByID(ctx, created.ID)
				assert.NoError(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, deleted)

			_, err = f.svc.GetByID(ctx, created.ID)
			assert.ErrorIs(t, err, category.ErrCategoryNotFound)

			deleted, err = f.svc.Delete(ctx, created.ID)
			require.NoError(t, err)
			assert.False(t, deleted)
		})
	}
}

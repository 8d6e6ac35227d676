package goalService

import (
	categoryRepository "FinanceTracker/internal/api/category/repository"
	"FinanceTracker/internal/api/goal"
	goalRepository "FinanceTracker/internal/api/goal/repository"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	"FinanceTracker/internal/entity"
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	sent []entity.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n entity.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

type fixture struct {
	svc          *goalService
	transactions transactionRepository.Repository
	notifier     *recordingNotifier
	salary, gift entity.Category
	alice, bob   entity.UserLoginData
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	categories := categoryRepository.NewMemory(log)
	client, err := categories.NewClient(false)
	require.NoError(t, err)

	f := &fixture{
		transactions: transactionRepository.NewMemory(log),
		notifier:     &recordingNotifier{},
		alice:        entity.UserLoginData{ID: 1, Email: "alice@example.com", Role: entity.RoleUser},
		bob:          entity.UserLoginData{ID: 2, Role: entity.RoleUser},
	}
	f.salary, err = client.Categories.Create(context.Background(), entity.Category{Name: "Salary"})
	require.NoError(t, err)
	f.gift, err = client.Categories.Create(context.Background(), entity.Category{Name: "Gift"})
	require.NoError(t, err)

	f.svc = NewGoalService(log, goalRepository.NewMemory(log), f.transactions, categories, f.notifier).(*goalService)
	f.svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) record(t *testing.T, userID int64, kind entity.TransactionType, date string, amount string, categoryID int64) {
	t.Helper()
	d, err := entity.ParseDate(date)
	require.NoError(t, err)

	client, err := f.transactions.NewClient(false)
	require.NoError(t, err)
	_, err = client.Transactions.Create(context.Background(), entity.Transaction{
		Date:       d,
		Type:       kind,
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
		UserID:     userID,
	})
	require.NoError(t, err)
}

func (f *fixture) goal(t *testing.T, caller entity.UserLoginData, categoryID int64, target string) entity.Goal {
	t.Helper()
	created, err := f.svc.Create(context.Background(), caller, goal.CreateGoalRequest{
		TargetAmount: decimal.RequireFromString(target),
		CategoryID:   categoryID,
	})
	require.NoError(t, err)
	return created
}

func TestGoalReachedBoundary(t *testing.T) {
	tests := []struct {
		name    string
		incomes []string
		want    bool
	}{
		{name: "nothing saved", want: false},
		{name: "one cent short", incomes: []string{"499.99"}, want: false},
		{name: "exactly the target", incomes: []string{"200", "300"}, want: true},
		{name: "past the target", incomes: []string{"1000"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			g := f.goal(t, f.alice, f.salary.ID, "500")
			for _, amount := range tt.incomes {
				f.record(t, f.alice.ID, entity.TransactionTypeIncome, "2024-06-01", amount, f.salary.ID)
			}

			reached, err := f.svc.IsGoalReached(context.Background(), f.alice.ID, f.salary.ID, g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reached)

			status, err := f.svc.CheckGoal(context.Background(), f.alice, f.salary.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status.Reached)
			if tt.want {
				require.Len(t, f.notifier.sent, 1)
				sent := f.notifier.sent[0]
				assert.Equal(t, entity.NotificationGoalReached, sent.Kind)
				assert.Equal(t, "alice@example.com", sent.Recipient)
				assert.Equal(t, 2025, sent.CreatedAt.Year())
			} else {
				assert.Empty(t, f.notifier.sent)
			}
		})
	}
}

func TestCheckGoalCountsOnlyIncomeOfCallerAndCategory(t *testing.T) {
	f := newFixture(t)
	f.goal(t, f.alice, f.salary.ID, "100")

	f.record(t, f.alice.ID, entity.TransactionTypeIncome, "2019-01-01", "30", f.salary.ID)
	f.record(t, f.alice.ID, entity.TransactionTypeIncome, "2025-02-01", "20", f.salary.ID)
	f.record(t, f.alice.ID, entity.TransactionTypeExpense, "2025-02-01", "500", f.salary.ID)
	f.record(t, f.alice.ID, entity.TransactionTypeIncome, "2025-02-01", "500", f.gift.ID)
	f.record(t, f.bob.ID, entity.TransactionTypeIncome, "2025-02-01", "500", f.salary.ID)

	status, err := f.svc.CheckGoal(context.Background(), f.alice, f.salary.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(status.Saved))
	assert.False(t, status.Reached)

	_, err = f.svc.CheckGoal(context.Background(), f.bob, f.salary.ID)
	assert.ErrorIs(t, err, goal.ErrNoActiveGoal)
}

func TestCreateRetiresPreviousGoal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.goal(t, f.alice, f.salary.ID, "100")
	second := f.goal(t, f.alice, f.salary.ID, "200")

	reread, err := f.svc.GetByID(ctx, f.alice, first.ID)
	require.NoError(t, err)
	assert.False(t, reread.Active)

	status, err := f.svc.CheckGoal(ctx, f.alice, f.salary.ID)
	require.NoError(t, err)
	assert.True(t, status.Goal.Equal(second))
}

func TestCreateGoalValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.alice, goal.CreateGoalRequest{TargetAmount: decimal.Zero, CategoryID: f.salary.ID})
	assert.ErrorIs(t, err, entity.ErrInvalidAmount)

	_, err = f.svc.Create(context.Background(), f.alice, goal.CreateGoalRequest{TargetAmount: decimal.NewFromInt(1), CategoryID: 77})
	assert.ErrorIs(t, err, goal.ErrUnknownCategory)
}

func TestGoalOwnershipAndLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.goal(t, f.alice, f.salary.ID, "100")

	_, err := f.svc.GetByID(ctx, f.bob, g.ID)
	assert.ErrorIs(t, err, goal.ErrGoalNotOwned)

	target := decimal.NewFromInt(300)
	_, err = f.svc.Update(ctx, f.bob, g.ID, entity.GoalPatch{TargetAmount: &target})
	assert.ErrorIs(t, err, goal.ErrGoalNotOwned)

	_, err = f.svc.Delete(ctx, f.bob, g.ID)
	assert.ErrorIs(t, err, goal.ErrGoalNotOwned)

	updated, err := f.svc.Update(ctx, f.alice, g.ID, entity.GoalPatch{TargetAmount: &target})
	require.NoError(t, err)
	assert.True(t, target.Equal(updated.TargetAmount))
	assert.Equal(t, f.salary.ID, updated.CategoryID)

	zero := decimal.Zero
	_, err = f.svc.Update(ctx, f.alice, g.ID, entity.GoalPatch{TargetAmount: &zero})
	assert.ErrorIs(t, err, entity.ErrInvalidAmount)

	deactivated, err := f.svc.Deactivate(ctx, f.alice, g.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	again, err := f.svc.Deactivate(ctx, f.alice, g.ID)
	require.NoError(t, err)
	assert.False(t, again.Active)

	deleted, err := f.svc.Delete(ctx, f.alice, g.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.svc.Delete(ctx, f.alice, g.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

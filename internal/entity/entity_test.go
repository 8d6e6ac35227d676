package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TransactionType
		wantErr bool
	}{
		{name: "income", input: "INCOME", want: TransactionTypeIncome},
		{name: "expense lower case", input: "expense", want: TransactionTypeExpense},
		{name: "padded", input: "  income ", want: TransactionTypeIncome},
		{name: "unknown", input: "TRANSFER", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransactionType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransactionType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{Type: TransactionTypeExpense, Amount: decimal.RequireFromString("10.50")}
	assert.NoError(t, valid.Validate())

	zero := valid
	zero.Amount = decimal.Zero
	assert.ErrorIs(t, zero.Validate(), ErrInvalidAmount)

	negative := valid
	negative.Amount = decimal.RequireFromString("-1")
	assert.ErrorIs(t, negative.Validate(), ErrInvalidAmount)

	badType := valid
	badType.Type = "OTHER"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidTransactionType)

	tooPrecise := valid
	tooPrecise.Amount = decimal.RequireFromString("1.23456")
	assert.ErrorIs(t, tooPrecise.Validate(), ErrAmountScale)
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{name: "cent", amount: "0.01"},
		{name: "four decimal places", amount: "1.2345"},
		{name: "trailing zeros beyond scale", amount: "1.230000"},
		{name: "largest storable", amount: "999999999999999.9999"},
		{name: "zero", amount: "0", wantErr: ErrInvalidAmount},
		{name: "negative", amount: "-3", wantErr: ErrInvalidAmount},
		{name: "five decimal places", amount: "1.23456", wantErr: ErrAmountScale},
		{name: "rounds to zero in storage", amount: "0.00001", wantErr: ErrAmountScale},
		{name: "overflows column", amount: "1000000000000000", wantErr: ErrAmountTooLarge},
		{name: "far beyond column", amount: "1e20", wantErr: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTransaction_EqualComparesIDOnly(t *testing.T) {
	a := Transaction{ID: 7, Amount: decimal.NewFromInt(1)}
	b := Transaction{ID: 7, Amount: decimal.NewFromInt(99), Description: "different"}
	c := Transaction{ID: 8, Amount: decimal.NewFromInt(1)}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestTransactionPatch_Apply(t *testing.T) {
	original := Transaction{
		ID:          1,
		Date:        date(t, "2024-03-01"),
		Type:        TransactionTypeExpense,
		Amount:      decimal.NewFromInt(10),
		Description: "lunch",
		CategoryID:  2,
		UserID:      3,
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		tx := original
		TransactionPatch{}.Apply(&tx)
		assert.Equal(t, original, tx)
	})

	t.Run("supplied fields replace stored values", func(t *testing.T) {
		tx := original
		amount := decimal.RequireFromString("12.25")
		category := int64(5)
		TransactionPatch{Amount: &amount, CategoryID: &category}.Apply(&tx)

		assert.True(t, amount.Equal(tx.Amount))
		assert.Equal(t, int64(5), tx.CategoryID)
		assert.Equal(t, "lunch", tx.Description)
		assert.Equal(t, original.Date, tx.Date)
		assert.Equal(t, original.Type, tx.Type)
		assert.Equal(t, original.UserID, tx.UserID)
	})

	t.Run("blank description keeps the stored one", func(t *testing.T) {
		for _, blank := range []string{"", "   "} {
			tx := original
			TransactionPatch{Description: &blank}.Apply(&tx)
			assert.Equal(t, "lunch", tx.Description)
		}
	})

	t.Run("non-blank description replaces it", func(t *testing.T) {
		tx := original
		dinner := "dinner"
		TransactionPatch{Description: &dinner}.Apply(&tx)
		assert.Equal(t, "dinner", tx.Description)
	})
}

func TestTransactionFilter_Matches(t *testing.T) {
	tx := Transaction{
		ID:         1,
		Date:       date(t, "2024-03-15"),
		Type:       TransactionTypeExpense,
		Amount:     decimal.NewFromInt(20),
		CategoryID: 4,
		UserID:     9,
	}

	from := date(t, "2024-03-15")
	to := date(t, "2024-03-15")
	before := date(t, "2024-03-16")
	after := date(t, "2024-03-14")
	sameDayLater := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter TransactionFilter
		want   bool
	}{
		{name: "empty filter matches everything", filter: TransactionFilter{}, want: true},
		{name: "same user", filter: TransactionFilter{}.WithUser(9), want: true},
		{name: "other user", filter: TransactionFilter{}.WithUser(10), want: false},
		{name: "inclusive bounds on the same day", filter: TransactionFilter{}.WithRange(&from, &to), want: true},
		{name: "from after date", filter: TransactionFilter{From: &before}, want: false},
		{name: "to before date", filter: TransactionFilter{To: &after}, want: false},
		{name: "exact date ignores clock", filter: TransactionFilter{Date: &sameDayLater}, want: true},
		{name: "type match", filter: TransactionFilter{}.WithType(TransactionTypeExpense), want: true},
		{name: "type mismatch", filter: TransactionFilter{}.WithType(TransactionTypeIncome), want: false},
		{name: "category mismatch", filter: TransactionFilter{}.WithCategory(5), want: false},
		{
			name:   "all constraints",
			filter: TransactionFilter{}.WithUser(9).WithCategory(4).WithType(TransactionTypeExpense).WithRange(&after, &before),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tx))
		})
	}
}

func TestTransactionFilter_IsEmpty(t *testing.T) {
	assert.True(t, TransactionFilter{}.IsEmpty())
	assert.False(t, TransactionFilter{}.WithUser(1).IsEmpty())
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantFirst string
		wantLast  string
	}{
		{now: time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC), wantFirst: "2024-02-01", wantLast: "2024-02-29"},
		{now: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), wantFirst: "2023-02-01", wantLast: "2023-02-28"},
		{now: time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), wantFirst: "2024-12-01", wantLast: "2024-12-31"},
		{now: time.Date(2025, 3, 1, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60)), wantFirst: "2025-02-01", wantLast: "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.wantFirst, func(t *testing.T) {
			first, last := MonthRange(tt.now)
			assert.Equal(t, tt.wantFirst, FormatDate(first))
			assert.Equal(t, tt.wantLast, FormatDate(last))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("31/01/2024")
	assert.Error(t, err)
}

func TestBudget_ValidateAndExceeded(t *testing.T) {
	b := Budget{
		TotalAmount: decimal.NewFromInt(100),
		PeriodStart: date(t, "2024-01-01"),
		PeriodEnd:   date(t, "2024-01-31"),
	}
	require.NoError(t, b.Validate())

	assert.False(t, b.Exceeded(decimal.RequireFromString("99.99")))
	assert.True(t, b.Exceeded(decimal.NewFromInt(100)))
	assert.True(t, b.Exceeded(decimal.NewFromInt(150)))

	sameDay := b
	sameDay.PeriodEnd = sameDay.PeriodStart
	assert.NoError(t, sameDay.Validate())

	inverted := b
	inverted.PeriodStart, inverted.PeriodEnd = b.PeriodEnd, b.PeriodStart
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidPeriod)

	zero := b
	zero.TotalAmount = decimal.Zero
	assert.ErrorIs(t, zero.Validate(), ErrInvalidAmount)

	huge := b
	huge.TotalAmount = decimal.New(1, 15)
	assert.ErrorIs(t, huge.Validate(), ErrAmountTooLarge)
}

func TestGoal_Reached(t *testing.T) {
	g := Goal{TargetAmount: decimal.NewFromInt(500)}
	require.NoError(t, g.Validate())

	fractional := Goal{TargetAmount: decimal.RequireFromString("0.00001")}
	assert.ErrorIs(t, fractional.Validate(), ErrAmountScale)

	assert.False(t, g.Reached(decimal.NewFromInt(499)))
	assert.True(t, g.Reached(decimal.NewFromInt(500)))
}

func TestUserLoginData_CanAccess(t *testing.T) {
	user := UserLoginData{ID: 1, Role: RoleUser}
	admin := UserLoginData{ID: 2, Role: RoleAdmin}

	assert.True(t, user.CanAccess(1))
	assert.False(t, user.CanAccess(2))
	assert.True(t, admin.CanAccess(1))
	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
}

func TestBlankStringsLeaveStoredValues(t *testing.T) {
	blank := "  "
	renamed := "Groceries"

	c := Category{ID: 1, Name: "Food", Description: "daily"}
	CategoryPatch{Name: &blank, Description: &blank}.Apply(&c)
	assert.Equal(t, Category{ID: 1, Name: "Food", Description: "daily"}, c)

	CategoryPatch{Name: &renamed}.Apply(&c)
	assert.Equal(t, "Groceries", c.Name)
	assert.Equal(t, "daily", c.Description)

	u := User{ID: 1, Username: "alice", Email: "alice@example.com"}
	UserPatch{Username: &blank, Email: &blank}.Apply(&u)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
}

package transaction

import (
	"FinanceTracker/internal/entity"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Date        string          `json:"date" validate:"required,isodate"`
	Type        string          `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"max=1000"`
	CategoryID  int64           `json:"categoryId" validate:"required,gt=0"`
}

type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID  *int64           `json:"categoryId" validate:"omitempty,gt=0"`
}

func (r UpdateTransactionRequest) ToPatch() entity.TransactionPatch {
	return entity.TransactionPatch{
		Amount:      r.Amount,
		Description: r.Description,
		CategoryID:  r.CategoryID,
	}
}

// ListQuery holds the raw query string of GET /transaction. Every field is
// optional.
type ListQuery struct {
	Date       string `query:"date" validate:"omitempty,isodate"`
	From       string `query:"from" validate:"omitempty,isodate"`
	To         string `query:"to" validate:"omitempty,isodate"`
	CategoryID string `query:"category_id" validate:"omitempty,numeric"`
	Type       string `query:"type"`
	UserID     string `query:"user_id" validate:"omitempty,numeric"`
}

func (q ListQuery) ToFilter() (entity.TransactionFilter, error) {
	var filter entity.TransactionFilter

	if q.Date != "" {
		date, err := entity.ParseDate(q.Date)
		if err != nil {
			return entity.TransactionFilter{}, ErrInvalidQueryParam
		}
		filter.Date = &date
	}

	from, to, err := RangeQuery{From: q.From, To: q.To}.Bounds()
	if err != nil {
		return entity.TransactionFilter{}, err
	}
	filter = filter.WithRange(from, to)

	if q.CategoryID != "" {
		id, err := strconv.ParseInt(q.CategoryID, 10, 64)
		if err != nil {
			return entity.TransactionFilter{}, ErrInvalidQueryParam
		}
		filter = filter.WithCategory(id)
	}
	if q.Type != "" {
		transactionType, err := entity.ParseTransactionType(q.Type)
		if err != nil {
			return entity.TransactionFilter{}, err
		}
		filter = filter.WithType(transactionType)
	}
	if q.UserID != "" {
		id, err := strconv.ParseInt(q.UserID, 10, 64)
		if err != nil {
			return entity.TransactionFilter{}, ErrInvalidQueryParam
		}
		filter = filter.WithUser(id)
	}

	return filter, nil
}

// RangeQuery is the optional inclusive date range of the aggregate endpoints.
type RangeQuery struct {
	From string `query:"from" validate:"omitempty,isodate"`
	To   string `query:"to" validate:"omitempty,isodate"`
}

func (q RangeQuery) Bounds() (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if q.From != "" {
		parsed, err := entity.ParseDate(q.From)
		if err != nil {
			return nil, nil, ErrInvalidQueryParam
		}
		from = &parsed
	}
	if q.To != "" {
		parsed, err := entity.ParseDate(q.To)
		if err != nil {
			return nil, nil, ErrInvalidQueryParam
		}
		to = &parsed
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ErrInvalidDateRange
	}

	return from, to, nil
}

type TransactionResponse struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"categoryId"`
	UserID      int64           `json:"userId"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func NewTransactionResponse(t entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Date:        entity.FormatDate(t.Date),
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type IncomeResponse struct {
	TotalIncome decimal.Decimal `json:"totalIncome"`
}

type ExpensesResponse struct {
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

type MonthExpenseResponse struct {
	MonthExpense decimal.Decimal `json:"monthExpense"`
}

type CategoryExpenseResponse struct {
	CategoryID    int64           `json:"categoryId"`
	CategoryName  string          `json:"categoryName"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

type FinancialReportResponse struct {
	Income   IncomeResponse   `json:"income"`
	Expenses ExpensesResponse `json:"expenses"`
	Balance  BalanceResponse  `json:"balance"`
}

func NewFinancialReportResponse(r entity.FinancialReport) FinancialReportResponse {
	return FinancialReportResponse{
		Income:   IncomeResponse{TotalIncome: r.TotalIncome},
		Expenses: ExpensesResponse{TotalExpenses: r.TotalExpenses},
		Balance:  BalanceResponse{Balance: r.Balance},
	}
}

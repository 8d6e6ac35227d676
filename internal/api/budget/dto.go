package budget

import (
	"FinanceTracker/internal/entity"
	"time"

	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	TotalAmount decimal.Decimal `json:"totalAmount" validate:"required,gt=0"`
	PeriodStart string          `json:"periodStart" validate:"required,isodate"`
	PeriodEnd   string          `json:"periodEnd" validate:"required,isodate"`
	CategoryID  int64           `json:"categoryId" validate:"required,gt=0"`
}

type UpdateBudgetRequest struct {
	TotalAmount *decimal.Decimal `json:"totalAmount" validate:"omitempty,gt=0"`
	PeriodStart *string          `json:"periodStart" validate:"omitempty,isodate"`
	PeriodEnd   *string          `json:"periodEnd" validate:"omitempty,isodate"`
	CategoryID  *int64           `json:"categoryId" validate:"omitempty,gt=0"`
}

func (r UpdateBudgetRequest) ToPatch() (entity.BudgetPatch, error) {
	patch := entity.BudgetPatch{
		TotalAmount: r.TotalAmount,
		CategoryID:  r.CategoryID,
	}

	if r.PeriodStart != nil {
		start, err := entity.ParseDate(*r.PeriodStart)
		if err != nil {
			return entity.BudgetPatch{}, entity.ErrInvalidPeriod
		}
		patch.PeriodStart = &start
	}
	if r.PeriodEnd != nil {
		end, err := entity.ParseDate(*r.PeriodEnd)
		if err != nil {
			return entity.BudgetPatch{}, entity.ErrInvalidPeriod
		}
		patch.PeriodEnd = &end
	}

	return patch, nil
}

type BudgetResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	CategoryID  int64           `json:"categoryId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PeriodStart string          `json:"periodStart"`
	PeriodEnd   string          `json:"periodEnd"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func NewBudgetResponse(b entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		CategoryID:  b.CategoryID,
		TotalAmount: b.TotalAmount,
		PeriodStart: entity.FormatDate(b.PeriodStart),
		PeriodEnd:   entity.FormatDate(b.PeriodEnd),
		Active:      b.Active,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

type BudgetStatusResponse struct {
	Budget   BudgetResponse  `json:"budget"`
	Spent    decimal.Decimal `json:"spent"`
	Exceeded bool            `json:"exceeded"`
	Message  string          `json:"message,omitempty"`
}

func NewBudgetStatusResponse(s entity.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Budget:   NewBudgetResponse(s.Budget),
		Spent:    s.Spent,
		Exceeded: s.Exceeded,
		Message:  s.Message,
	}
}

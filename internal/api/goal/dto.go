package goal

import (
	"FinanceTracker/internal/entity"
	"time"

	"github.com/shopspring/decimal"
)

type CreateGoalRequest struct {
	TargetAmount decimal.Decimal `json:"targetAmount" validate:"required,gt=0"`
	CategoryID   int64           `json:"categoryId" validate:"required,gt=0"`
}

type UpdateGoalRequest struct {
	TargetAmount *decimal.Decimal `json:"targetAmount" validate:"omitempty,gt=0"`
	CategoryID   *int64           `json:"categoryId" validate:"omitempty,gt=0"`
}

func (r UpdateGoalRequest) ToPatch() entity.GoalPatch {
	return entity.GoalPatch{
		TargetAmount: r.TargetAmount,
		CategoryID:   r.CategoryID,
	}
}

type GoalResponse struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	CategoryID   int64           `json:"categoryId"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Active       bool            `json:"active"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

func NewGoalResponse(g entity.Goal) GoalResponse {
	return GoalResponse{
		ID:           g.ID,
		UserID:       g.UserID,
		CategoryID:   g.CategoryID,
		TargetAmount: g.TargetAmount,
		Active:       g.Active,
		CreatedAt:    g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    g.UpdatedAt.Format(time.RFC3339),
	}
}

type GoalStatusResponse struct {
	Goal    GoalResponse    `json:"goal"`
	Saved   decimal.Decimal `json:"saved"`
	Reached bool            `json:"reached"`
	Message string          `json:"message,omitempty"`
}

func NewGoalStatusResponse(s entity.GoalStatus) GoalStatusResponse {
	return GoalStatusResponse{
		Goal:    NewGoalResponse(s.Goal),
		Saved:   s.Saved,
		Reached: s.Reached,
		Message: s.Message,
	}
}

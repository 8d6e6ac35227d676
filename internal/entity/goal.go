package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is an income target for one category, measured over all time.
type Goal struct {
	ID           int64
	UserID       int64
	CategoryID   int64
	TargetAmount decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (g Goal) Equal(other Goal) bool {
	return g.ID == other.ID
}

func (g Goal) Validate() error {
	return ValidateAmount(g.TargetAmount)
}

func (g Goal) Reached(saved decimal.Decimal) bool {
	return saved.GreaterThanOrEqual(g.TargetAmount)
}

type GoalPatch struct {
	TargetAmount *decimal.Decimal
	CategoryID   *int64
}

func (p GoalPatch) Apply(g *Goal) {
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CategoryID != nil {
		g.CategoryID = *p.CategoryID
	}
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending cap for one category over an inclusive period.
type Budget struct {
	ID          int64
	UserID      int64
	CategoryID  int64
	TotalAmount decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b Budget) Equal(other Budget) bool {
	return b.ID == other.ID
}

func (b Budget) Validate() error {
	if err := ValidateAmount(b.TotalAmount); err != nil {
		return err
	}
	if TruncateDate(b.PeriodStart).After(TruncateDate(b.PeriodEnd)) {
		return ErrInvalidPeriod
	}
	return nil
}

// Exceeded reports whether spent has reached the cap.
func (b Budget) Exceeded(spent decimal.Decimal) bool {
	return spent.GreaterThanOrEqual(b.TotalAmount)
}

type BudgetPatch struct {
	TotalAmount *decimal.Decimal
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	CategoryID  *int64
}

func (p BudgetPatch) Apply(b *Budget) {
	if p.TotalAmount != nil {
		b.TotalAmount = *p.TotalAmount
	}
	if p.PeriodStart != nil {
		b.PeriodStart = TruncateDate(*p.PeriodStart)
	}
	if p.PeriodEnd != nil {
		b.PeriodEnd = TruncateDate(*p.PeriodEnd)
	}
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
}

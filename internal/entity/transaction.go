package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case TransactionTypeIncome:
		return TransactionTypeIncome, nil
	case TransactionTypeExpense:
		return TransactionTypeExpense, nil
	default:
		return "", ErrInvalidTransactionType
	}
}

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID          int64
	Date        time.Time
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	CategoryID  int64
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Equal reports identity equality; only the ids are compared.
func (t Transaction) Equal(other Transaction) bool {
	return t.ID == other.ID
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}

	return ValidateAmount(t.Amount)
}

// TransactionPatch carries the mutable fields of a transaction. A nil field,
// or a blank string, leaves the stored value untouched. Date, type and owner
// cannot be patched.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Description *string
	CategoryID  *int64
}

// supplied reports whether a patched string carries a value.
func supplied(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func (p TransactionPatch) Apply(t *Transaction) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if supplied(p.Description) {
		t.Description = *p.Description
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
}

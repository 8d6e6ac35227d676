package entity

import "time"

// TransactionFilter is a conjunction of optional constraints. A nil field
// places no constraint on its dimension; From and To are inclusive.
type TransactionFilter struct {
	UserID     *int64
	Date       *time.Time
	From       *time.Time
	To         *time.Time
	CategoryID *int64
	Type       *TransactionType
}

func (f TransactionFilter) IsEmpty() bool {
	return f.UserID == nil && f.Date == nil && f.From == nil && f.To == nil &&
		f.CategoryID == nil && f.Type == nil
}

func (f TransactionFilter) Matches(t Transaction) bool {
	if f.UserID != nil && t.UserID != *f.UserID {
		return false
	}

	date := TruncateDate(t.Date)

	if f.Date != nil && !date.Equal(TruncateDate(*f.Date)) {
		return false
	}
	if f.From != nil && date.Before(TruncateDate(*f.From)) {
		return false
	}
	if f.To != nil && date.After(TruncateDate(*f.To)) {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}

	return true
}

func (f TransactionFilter) WithUser(userID int64) TransactionFilter {
	f.UserID = &userID
	return f
}

func (f TransactionFilter) WithType(transactionType TransactionType) TransactionFilter {
	f.Type = &transactionType
	return f
}

func (f TransactionFilter) WithCategory(categoryID int64) TransactionFilter {
	f.CategoryID = &categoryID
	return f
}

// WithRange sets the inclusive bounds; a nil bound stays unconstrained.
func (f TransactionFilter) WithRange(from, to *time.Time) TransactionFilter {
	f.From = from
	f.To = to
	return f
}

package entity

import "github.com/shopspring/decimal"

type CategoryExpense struct {
	CategoryID    int64
	CategoryName  string
	TotalExpenses decimal.Decimal
}

type FinancialReport struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

type BudgetStatus struct {
	Budget   Budget
	Spent    decimal.Decimal
	Exceeded bool
	Message  string
}

type GoalStatus struct {
	Goal    Goal
	Saved   decimal.Decimal
	Reached bool
	Message string
}

package budget

import (
	"FinanceTracker/pkg/response"
	"net/http"
)

var (
	ErrBudgetNotFound       = response.NewError(http.StatusNotFound, "budget not found")
	ErrNoActiveBudget       = response.NewError(http.StatusNotFound, "no active budget for this category")
	ErrBudgetNotOwned       = response.NewError(http.StatusForbidden, "budget does not belong to user")
	ErrActiveBudgetConflict = response.NewError(http.StatusConflict, "another active budget exists for this category")
	ErrUnknownCategory      = response.NewError(http.StatusBadRequest, "category does not exist")
)

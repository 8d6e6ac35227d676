package category

import (
	"FinanceTracker/pkg/response"
	"net/http"
)

var (
	ErrCategoryNotFound      = response.NewError(http.StatusNotFound, "category not found")
	ErrCategoryAlreadyExists = response.NewError(http.StatusConflict, "category with this name already exists")
	ErrCategoryInUse         = response.NewError(http.StatusConflict, "category is referenced by transactions, budgets or goals")
)

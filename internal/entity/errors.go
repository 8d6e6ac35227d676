package entity

import (
	"FinanceTracker/pkg/response"
	"net/http"
)

var (
	ErrInvalidTransactionType = response.NewError(http.StatusBadRequest, "transaction type must be INCOME or EXPENSE")
	ErrInvalidAmount          = response.NewError(http.StatusBadRequest, "amount must be greater than zero")
	ErrAmountScale            = response.NewError(http.StatusBadRequest, "amount must have at most 4 decimal places")
	ErrAmountTooLarge         = response.NewError(http.StatusBadRequest, "amount must be less than 1000000000000000")
	ErrInvalidPeriod          = response.NewError(http.StatusBadRequest, "period start must not be after period end")
	ErrInvalidCategoryName    = response.NewError(http.StatusBadRequest, "category name must not be blank")
	ErrInvalidRole            = response.NewError(http.StatusBadRequest, "role must be admin or user")
)

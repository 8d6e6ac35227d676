package transaction

import (
	"FinanceTracker/pkg/response"
	"net/http"
)

var (
	ErrTransactionNotFound = response.NewError(http.StatusNotFound, "transaction not found")
	ErrTransactionNotOwned = response.NewError(http.StatusForbidden, "transaction does not belong to user")
	ErrUnknownCategory     = response.NewError(http.StatusBadRequest, "category does not exist")
	ErrInvalidDateRange    = response.NewError(http.StatusBadRequest, "from must not be after to")
	ErrInvalidQueryParam   = response.NewError(http.StatusBadRequest, "invalid query parameter")
	ErrUserFilterForbidden = response.NewError(http.StatusForbidden, "only admins may query other users")
)

package goal

import (
	"FinanceTracker/pkg/response"
	"net/http"
)

var (
	ErrGoalNotFound       = response.NewError(http.StatusNotFound, "goal not found")
	ErrNoActiveGoal       = response.NewError(http.StatusNotFound, "no active goal for this category")
	ErrGoalNotOwned       = response.NewError(http.StatusForbidden, "goal does not belong to user")
	ErrActiveGoalConflict = response.NewError(http.StatusConflict, "another active goal exists for this category")
	ErrUnknownCategory    = response.NewError(http.StatusBadRequest, "category does not exist")
)

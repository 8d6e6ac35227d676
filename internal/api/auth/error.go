package auth

import (
	"FinanceTracker/pkg/response"
	"net/http"
)

var (
	ErrUsernameAlreadyExists     = response.NewError(http.StatusConflict, "username already exists")
	ErrEmailAlreadyExists        = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidUsernameOrPassword = response.NewError(http.StatusUnauthorized, "username or password is wrong")
	ErrUserNotFound              = response.NewError(http.StatusNotFound, "user not found")
	ErrUserAccessDenied          = response.NewError(http.StatusForbidden, "cannot access another user")
	ErrRoleChangeForbidden       = response.NewError(http.StatusForbidden, "only admins may change roles")
)

package config

import "errors"

var (
	ErrMissingJWTSecret = errors.New("JWT_ACCESS_TOKEN_SECRET must be set")
	ErrInvalidJWTTTL    = errors.New("JWT_TTL must be a positive duration")
	ErrUnknownStorage   = errors.New("STORAGE must be postgres or memory")
)

package jwtPkg

import (
	"FinanceTracker/internal/entity"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const UserLocalsKey = "user"

var (
	ErrEmptyHeader     = errors.New("empty Authorization header")
	ErrInvalidFormat   = errors.New("invalid Authorization format")
	ErrSecretNotSet    = errors.New("JWT secret not configured")
	ErrInvalidClaims   = errors.New("token claims are missing required fields")
	ErrUnexpectedToken = errors.New("unexpected signing method")
)

func Sign(data map[string]interface{}, expiredAt time.Duration, secret string) (string, int64, error) {
	if secret == "" {
		return "", 0, ErrSecretNotSet
	}

	exp := time.Now().Add(expiredAt).Unix()

	claims := jwt.MapClaims{}
	for k, v := range data {
		claims[k] = v
	}
	claims["exp"] = exp

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, exp, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secret string) (*jwt.Token, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, ErrEmptyHeader
	}

	parts := strings.SplitN(header, "Bearer ", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidFormat
	}

	accessToken := strings.TrimSpace(parts[1])
	if accessToken == "" {
		return nil, ErrInvalidFormat
	}

	return Parse(accessToken, secret)
}

func Parse(accessToken string, secret string) (*jwt.Token, error) {
	if secret == "" {
		return nil, ErrSecretNotSet
	}

	return jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, token.Header["alg"])
		}
		return []byte(secret), nil
	})
}

// ClaimsToUser reads the login data written by Sign back out of the claims.
func ClaimsToUser(claims jwt.MapClaims) (entity.UserLoginData, error) {
	id, ok := claims["id"].(float64)
	if !ok {
		return entity.UserLoginData{}, ErrInvalidClaims
	}
	username, ok := claims["username"].(string)
	if !ok {
		return entity.UserLoginData{}, ErrInvalidClaims
	}
	role, ok := claims["role"].(string)
	if !ok {
		return entity.UserLoginData{}, ErrInvalidClaims
	}
	tokenID, ok := claims["jti"].(string)
	if !ok || tokenID == "" {
		return entity.UserLoginData{}, ErrInvalidClaims
	}
	email, _ := claims["email"].(string)

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return entity.UserLoginData{
		ID:        int64(id),
		Username:  username,
		Email:     email,
		Role:      entity.Role(role),
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals(UserLocalsKey).(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}

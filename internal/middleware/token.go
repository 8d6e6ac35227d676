package middleware

import (
	"FinanceTracker/internal/entity"
	jwtPkg "FinanceTracker/pkg/jwt"
	"FinanceTracker/pkg/redis"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const unauthorizedMessage = "Unauthorized, access token invalid or expired"

type tokenMiddleware struct {
	secret string
	redis  redis.IRedis
}

func newTokenMiddleware(secret string, redisClient redis.IRedis) *tokenMiddleware {
	return &tokenMiddleware{
		secret: secret,
		redis:  redisClient,
	}
}

// NewTokenMiddleware authenticates the bearer token and stores the principal
// in the request locals. Revoked tokens are rejected; a failing revocation
// lookup rejects the request too.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, m.token.secret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      "Invalid token claims",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	user, err := jwtPkg.ClaimsToUser(claims)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	if m.token.redis != nil {
		revoked, err := m.token.redis.IsTokenRevoked(ctx.UserContext(), user.TokenID)
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Token revocation lookup failed")
			return unauthorized(ctx)
		}
		if revoked {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    user.ID,
			}).Warn("Revoked token used")
			return unauthorized(ctx)
		}
	}

	ctx.Locals(jwtPkg.UserLocalsKey, user)

	m.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
		"role":       user.Role,
	}).Debug("Authentication successful")

	return ctx.Next()
}

// NewAdminMiddleware must run after NewTokenMiddleware.
func (m *middleware) NewAdminMiddleware(ctx *fiber.Ctx) error {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	if user.Role != entity.RoleAdmin {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"user_id":    user.ID,
			"path":       ctx.Path(),
		}).Warn("Admin access denied")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden, admin role required",
		})
	}

	return ctx.Next()
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": unauthorizedMessage,
	})
}

package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"FinanceTracker/internal/entity"
	jwtPkg "FinanceTracker/pkg/jwt"
	"FinanceTracker/pkg/redis"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type failingRedis struct{}

func (failingRedis) RevokeToken(context.Context, string, time.Duration) error { return nil }
func (failingRedis) IsTokenRevoked(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}
func (failingRedis) TrackToken(context.Context, int64, string, time.Duration) error { return nil }
func (failingRedis) RevokeUserTokens(context.Context, int64, time.Duration) error { return nil }
func (failingRedis) Close() error                                                  { return nil }

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func signToken(t *testing.T, role entity.Role, jti string) string {
	t.Helper()
	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       int64(7),
		"username": "alice",
		"email":    "alice@example.com",
		"role":     string(role),
		"jti":      jti,
	}, time.Hour, testSecret)
	require.NoError(t, err)
	return token
}

func newApp(m Middleware) *fiber.App {
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/me", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		user, err := jwtPkg.GetUserLoginData(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": user.ID, "role": user.Role})
	})
	app.Get("/admin", m.NewTokenMiddleware, m.NewAdminMiddleware, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestTokenMiddleware(t *testing.T) {
	revocations := redis.NewMemory()
	app := newApp(New(newTestLogger(), revocations, Config{AccessTokenSecret: testSecret}))

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/me", ""))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/me", "not-a-jwt"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := jwtPkg.Sign(map[string]interface{}{
			"id": 1, "username": "x", "role": "user", "jti": "j",
		}, time.Hour, "other-secret")
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/me", token))
	})

	t.Run("valid token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, do(t, app, "/me", signToken(t, entity.RoleUser, "valid")))
	})

	t.Run("revoked token", func(t *testing.T) {
		token := signToken(t, entity.RoleUser, "revoked")
		require.NoError(t, revocations.RevokeToken(context.Background(), "revoked", time.Hour))
		assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/me", token))
	})

	t.Run("revocation lookup failure rejects", func(t *testing.T) {
		failing := newApp(New(newTestLogger(), failingRedis{}, Config{AccessTokenSecret: testSecret}))
		assert.Equal(t, fiber.StatusUnauthorized, do(t, failing, "/me", signToken(t, entity.RoleUser, "x")))
	})
}

func TestAdminMiddleware(t *testing.T) {
	app := newApp(New(newTestLogger(), redis.NewMemory(), Config{AccessTokenSecret: testSecret}))

	assert.Equal(t, fiber.StatusForbidden, do(t, app, "/admin", signToken(t, entity.RoleUser, "u")))
	assert.Equal(t, fiber.StatusNoContent, do(t, app, "/admin", signToken(t, entity.RoleAdmin, "a")))
}

func TestRateLimiter(t *testing.T) {
	m := New(newTestLogger(), redis.NewMemory(), Config{AccessTokenSecret: testSecret, RateLimit: 0.001, RateBurst: 2})
	app := fiber.New()
	app.Get("/", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	assert.Equal(t, fiber.StatusOK, do(t, app, "/", ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, "/", ""))
	assert.Equal(t, fiber.StatusTooManyRequests, do(t, app, "/", ""))
}

func TestSanitizeRequestBody(t *testing.T) {
	got := sanitizeRequestBody("/api/auth/login", []byte(`{"username":"bob","password":"hunter2"}`))
	assert.Contains(t, got, `"password":"[SECRET]"`)
	assert.Contains(t, got, `"username":"bob"`)

	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("/", []byte("plain")))
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDKey))

	req = httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "given-id")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "given-id", resp.Header.Get(RequestIDKey))
}

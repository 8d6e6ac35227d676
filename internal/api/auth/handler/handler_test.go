package authHandler_test

import (
	authHandler "FinanceTracker/internal/api/auth/handler"
	authRepository "FinanceTracker/internal/api/auth/repository"
	authService "FinanceTracker/internal/api/auth/service"
	"FinanceTracker/internal/config"
	"FinanceTracker/internal/middleware"
	"FinanceTracker/pkg/bcrypt"
	"FinanceTracker/pkg/redis"
	"FinanceTracker/pkg/utils"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	gobcrypt "golang.org/x/crypto/bcrypt"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	revoked := redis.NewMemory()
	mw := middleware.New(log, revoked, middleware.Config{
		AccessTokenSecret: testSecret,
		RateLimit:         1000,
		RateBurst:         1000,
	})
	svc := authService.New(log,
		authRepository.NewMemory(log),
		revoked,
		bcrypt.NewWithCost(gobcrypt.MinCost),
		utils.New(),
		authService.Options{JWTSecret: testSecret, JWTTTL: time.Hour, AdminUsername: "root"},
	)

	app := config.NewFiber(log)
	app.Use(mw.NewRequestIDMiddleware())
	authHandler.New(log, svc, config.NewValidator(), mw).Start(app.Group("/api"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, jsoniter.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) (int64, string) {
	t.Helper()
	status, user := do(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, login := do(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, status)
	return int64(user["id"].(float64)), login["accessToken"].(string)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name       string
		body       fiber.Map
		wantStatus int
	}{
		{
			name:       "valid",
			body:       fiber.Map{"username": "alice", "email": "alice@example.com", "password": "s3cret-pass"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate username",
			body:       fiber.Map{"username": "alice", "email": "other@example.com", "password": "s3cret-pass"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "bad email",
			body:       fiber.Map{"username": "bob", "email": "not-an-email", "password": "s3cret-pass"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       fiber.Map{"username": "bob", "email": "bob@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			if status == http.StatusCreated {
				assert.Equal(t, "user", body["role"])
				assert.NotContains(t, body, "password")
			}
		})
	}
}

func TestLoginLogout(t *testing.T) {
	app := newTestApp(t)
	id, token := registerAndLogin(t, app, "alice")

	status, _ := do(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, me := do(t, app, http.MethodGet, "/api/user/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", me["username"])

	status, _ = do(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodGet, "/api/user/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUserRoutes(t *testing.T) {
	app := newTestApp(t)
	_, rootToken := registerAndLogin(t, app, "root")
	aliceID, aliceToken := registerAndLogin(t, app, "alice")
	bobID, _ := registerAndLogin(t, app, "bob")

	status, _ := do(t, app, http.MethodGet, "/api/user", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodGet, "/api/user", rootToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodGet, "/api/user/"+itoa(bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodGet, "/api/user/abc", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, app, http.MethodPatch, "/api/user/"+itoa(aliceID), aliceToken, fiber.Map{"email": "alice2@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice2@example.com", body["email"])

	status, _ = do(t, app, http.MethodPatch, "/api/user/"+itoa(aliceID), aliceToken, fiber.Map{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodDelete, "/api/user/"+itoa(bobID), rootToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodDelete, "/api/user/"+itoa(bobID), rootToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

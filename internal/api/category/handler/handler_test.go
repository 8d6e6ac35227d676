package categoryHandler_test

import (
	budgetRepository "FinanceTracker/internal/api/budget/repository"
	categoryHandler "FinanceTracker/internal/api/category/handler"
	categoryRepository "FinanceTracker/internal/api/category/repository"
	categoryService "FinanceTracker/internal/api/category/service"
	goalRepository "FinanceTracker/internal/api/goal/repository"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	"FinanceTracker/internal/config"
	"FinanceTracker/internal/entity"
	"FinanceTracker/internal/middleware"
	jwtPkg "FinanceTracker/pkg/jwt"
	"FinanceTracker/pkg/redis"
	"FinanceTracker/pkg/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	mw := middleware.New(log, redis.NewMemory(), middleware.Config{AccessTokenSecret: testSecret})
	svc := categoryService.NewCategoryService(log,
		categoryRepository.NewMemory(log),
		transactionRepository.NewMemory(log),
		budgetRepository.NewMemory(log),
		goalRepository.NewMemory(log),
		utils.New(),
	)

	app := config.NewFiber(log)
	app.Use(mw.NewRequestIDMiddleware())
	categoryHandler.New(log, svc, config.NewValidator(), mw).Start(app.Group("/api"))
	return app
}

func token(t *testing.T, id int64, role entity.Role) string {
	t.Helper()
	signed, _, err := jwtPkg.Sign(map[string]interface{}{
		"jti":      "token-" + string(role),
		"id":       id,
		"username": "user",
		"role":     string(role),
	}, time.Hour, testSecret)
	require.NoError(t, err)
	return signed
}

func request(t *testing.T, app *fiber.App, method, path, bearer, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCategoryRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := token(t, 1, entity.RoleAdmin)
	user := token(t, 2, entity.RoleUser)

	tests := []struct {
		name       string
		method     string
		path       string
		bearer     string
		body       string
		wantStatus int
	}{
		{name: "anonymous list", method: http.MethodGet, path: "/api/category", wantStatus: http.StatusUnauthorized},
		{name: "user create forbidden", method: http.MethodPost, path: "/api/category", bearer: user, body: `{"name":"Food"}`, wantStatus: http.StatusForbidden},
		{name: "admin create", method: http.MethodPost, path: "/api/category", bearer: admin, body: `{"name":"Food"}`, wantStatus: http.StatusCreated},
		{name: "duplicate ignoring case", method: http.MethodPost, path: "/api/category", bearer: admin, body: `{"name":"food"}`, wantStatus: http.StatusConflict},
		{name: "missing name", method: http.MethodPost, path: "/api/category", bearer: admin, body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "user list", method: http.MethodGet, path: "/api/category", bearer: user, wantStatus: http.StatusOK},
		{name: "user get", method: http.MethodGet, path: "/api/category/1", bearer: user, wantStatus: http.StatusOK},
		{name: "get missing", method: http.MethodGet, path: "/api/category/42", bearer: user, wantStatus: http.StatusNotFound},
		{name: "admin rename", method: http.MethodPatch, path: "/api/category/1", bearer: admin, body: `{"name":"Groceries"}`, wantStatus: http.StatusOK},
		{name: "admin delete", method: http.MethodDelete, path: "/api/category/1", bearer: admin, wantStatus: http.StatusNoContent},
		{name: "delete missing", method: http.MethodDelete, path: "/api/category/1", bearer: admin, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, tt.method, tt.path, tt.bearer, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

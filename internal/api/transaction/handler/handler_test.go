package transactionHandler_test

import (
	categoryRepository "FinanceTracker/internal/api/category/repository"
	transactionHandler "FinanceTracker/internal/api/transaction/handler"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	transactionService "FinanceTracker/internal/api/transaction/service"
	"FinanceTracker/internal/config"
	"FinanceTracker/internal/entity"
	"FinanceTracker/internal/middleware"
	jwtPkg "FinanceTracker/pkg/jwt"
	"FinanceTracker/pkg/redis"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

	categories := categoryRepository.NewMemory(log)
	client, err := categories.NewClient(false)
	require.NoError(t, err)
	for _, name := range []string{"Salary", "Groceries"} {
		_, err := client.Categories.Create(context.Background(), entity.Category{Name: name})
		require.NoError(t, err)
	}

	mw := middleware.New(log, redis.NewMemory(), middleware.Config{AccessTokenSecret: testSecret})
	svc := transactionService.NewTransactionService(log, transactionRepository.NewMemory(log), categories, nil, nil)

	app := config.NewFiber(log)
	app.Use(mw.NewRequestIDMiddleware())
	transactionHandler.New(log, svc, config.NewValidator(), mw).Start(app.Group("/api"))
	return app
}

func token(t *testing.T, id int64, role entity.Role) string {
	t.Helper()
	signed, _, err := jwtPkg.Sign(map[string]interface{}{
		"jti":      "jti-" + string(role),
		"id":       id,
		"username": "user",
		"role":     string(role),
	}, time.Hour, testSecret)
	require.NoError(t, err)
	return signed
}

func call(t *testing.T, app *fiber.App, method, path, bearer, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestTransactionFlow(t *testing.T) {
	app := newTestApp(t)
	alice := token(t, 1, entity.RoleUser)
	bob := token(t, 2, entity.RoleUser)
	admin := token(t, 3, entity.RoleAdmin)

	for _, body := range []string{
		`{"date":"2025-01-10","type":"INCOME","amount":300,"categoryId":1}`,
		`{"date":"2025-01-15","type":"expense","amount":"110","categoryId":2,"description":"shop"}`,
		`{"date":"2025-02-01","type":"EXPENSE","amount":150,"categoryId":2}`,
	} {
		status, raw := call(t, app, http.MethodPost, "/api/transaction", alice, body)
		require.Equal(t, http.StatusCreated, status, raw)
	}

	status, raw := call(t, app, http.MethodGet, "/api/transaction/report?from=2025-01-01&to=2025-01-31", alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "300", jsoniter.Get([]byte(raw), "income", "totalIncome").ToString())
	assert.Equal(t, "110", jsoniter.Get([]byte(raw), "expenses", "totalExpenses").ToString())
	assert.Equal(t, "40", jsoniter.Get([]byte(raw), "balance", "balance").ToString())

	status, raw = call(t, app, http.MethodGet, "/api/transaction/balance", alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "40", jsoniter.Get([]byte(raw), "balance").ToString())

	status, raw = call(t, app, http.MethodGet, "/api/transaction?type=EXPENSE&from=2025-01-01&to=2025-01-31", alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, jsoniter.Get([]byte(raw)).Size())
	assert.Equal(t, "2025-01-15", jsoniter.Get([]byte(raw), 0, "date").ToString())

	status, raw = call(t, app, http.MethodGet, "/api/transaction/analyze", alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Groceries", jsoniter.Get([]byte(raw), 0, "categoryName").ToString())
	assert.Equal(t, "260", jsoniter.Get([]byte(raw), 0, "totalExpenses").ToString())

	status, _ = call(t, app, http.MethodGet, "/api/transaction/1", bob, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodGet, "/api/transaction/balance?user_id=1", bob, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = call(t, app, http.MethodGet, "/api/transaction/balance?user_id=1", admin, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "40", jsoniter.Get([]byte(raw), "balance").ToString())

	status, raw = call(t, app, http.MethodPatch, "/api/transaction/2", alice, `{"amount":"99.99"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "shop", jsoniter.Get([]byte(raw), "description").ToString())
	assert.Equal(t, "EXPENSE", jsoniter.Get([]byte(raw), "type").ToString())

	status, _ = call(t, app, http.MethodDelete, "/api/transaction/3", alice, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, app, http.MethodGet, "/api/transaction/3", alice, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, "/api/transaction/3", alice, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTransactionValidation(t *testing.T) {
	app := newTestApp(t)
	alice := token(t, 1, entity.RoleUser)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "bad date format", method: http.MethodPost, path: "/api/transaction", body: `{"date":"10.1.2025","type":"INCOME","amount":1,"categoryId":1}`, wantStatus: http.StatusBadRequest},
		{name: "non positive amount", method: http.MethodPost, path: "/api/transaction", body: `{"date":"2025-01-10","type":"INCOME","amount":0,"categoryId":1}`, wantStatus: http.StatusBadRequest},
		{name: "unknown type", method: http.MethodPost, path: "/api/transaction", body: `{"date":"2025-01-10","type":"GIFT","amount":1,"categoryId":1}`, wantStatus: http.StatusBadRequest},
		{name: "unknown category", method: http.MethodPost, path: "/api/transaction", body: `{"date":"2025-01-10","type":"INCOME","amount":1,"categoryId":99}`, wantStatus: http.StatusBadRequest},
		{name: "inverted range", method: http.MethodGet, path: "/api/transaction/income?from=2025-02-01&to=2025-01-01", wantStatus: http.StatusBadRequest},
		{name: "bad filter date", method: http.MethodGet, path: "/api/transaction?date=yesterday", wantStatus: http.StatusBadRequest},
		{name: "bad filter type", method: http.MethodGet, path: "/api/transaction?type=other", wantStatus: http.StatusBadRequest},
		{name: "empty month", method: http.MethodGet, path: "/api/transaction/month-expenses", wantStatus: http.StatusOK},
		{name: "bad id", method: http.MethodGet, path: "/api/transaction/0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := call(t, app, tt.method, tt.path, alice, tt.body)
			assert.Equal(t, tt.wantStatus, status, raw)
		})
	}
}

package handlerUtil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"FinanceTracker/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestErrorHandler_Handle(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(payload{})
	require.Error(t, validationErr)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "domain error keeps status", err: response.NewError(fiber.StatusNotFound, "transaction not found"), wantStatus: fiber.StatusNotFound},
		{name: "fiber error", err: fiber.ErrUnauthorized, wantStatus: fiber.StatusUnauthorized},
		{name: "validation error", err: validationErr, wantStatus: fiber.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "unknown error", err: errors.New("boom"), wantStatus: fiber.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			h := New(newTestLogger())
			app.Get("/", func(c *fiber.Ctx) error {
				return h.Handle(c, "req-1", tt.err, c.Path(), "test")
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		path    string
		want    int64
		wantErr bool
	}{
		{path: "/42", want: 42},
		{path: "/0", wantErr: true},
		{path: "/-3", wantErr: true},
		{path: "/abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			app := fiber.New()
			var got int64
			var gotErr error
			app.Get("/:id", func(c *fiber.Ctx) error {
				got, gotErr = ParseID(c, "id")
				return c.SendStatus(fiber.StatusOK)
			})

			_, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)

			if tt.wantErr {
				assert.ErrorIs(t, gotErr, ErrInvalidID)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

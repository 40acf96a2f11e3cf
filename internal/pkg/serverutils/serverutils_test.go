package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notehub-be/internal/pkg/logger"
	"notehub-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func whoAmIApp(mw fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", mw, func(ctx *fiber.Ctx) error {
		if id, ok := UserID(ctx); ok {
			return ctx.SendString(id.String())
		}
		return ctx.SendString("anonymous")
	})
	return app
}

func TestAuthenticatorParseToken(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	userId := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		token   string
		want    uuid.UUID
		wantErr bool
	}{
		{"user_id claim", signToken(t, jwt.MapClaims{"user_id": userId.String(), "exp": exp}, testSecret), userId, false},
		{"sub claim", signToken(t, jwt.MapClaims{"sub": userId.String(), "exp": exp}, testSecret), userId, false},
		{"wrong secret", signToken(t, jwt.MapClaims{"user_id": userId.String()}, "other"), uuid.Nil, true},
		{"expired", signToken(t, jwt.MapClaims{"user_id": userId.String(), "exp": time.Now().Add(-time.Hour).Unix()}, testSecret), uuid.Nil, true},
		{"not a uuid", signToken(t, jwt.MapClaims{"user_id": "bob"}, testSecret), uuid.Nil, true},
		{"garbage", "not-a-jwt", uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.ParseToken(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	app := whoAmIApp(auth.JwtMiddleware)
	userId := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": userId.String()}, testSecret))
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userId.String(), string(body))
}

func TestOptionalJwtMiddleware(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	app := whoAmIApp(auth.OptionalJwtMiddleware)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "anonymous"},
		{"invalid token", "Bearer nope", "anonymous"},
		{"not bearer", "Basic abc", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/app", func(ctx *fiber.Ctx) error { return apperror.NotFound("Note not found") })
	app.Get("/fiber", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusUnprocessableEntity, "bad body") })
	app.Get("/plain", func(ctx *fiber.Ctx) error { return errors.New("db down") })

	tests := []struct {
		path        string
		wantStatus  int
		wantMessage string
	}{
		{"/app", http.StatusNotFound, "Note not found"},
		{"/fiber", http.StatusUnprocessableEntity, "bad body"},
		{"/plain", http.StatusInternalServerError, "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Title string `json:"title" validate:"required"`
		Score int    `json:"score" validate:"min=1,max=5"`
	}

	assert.NoError(t, ValidateRequest(req{Title: "Cells", Score: 3}))

	err := ValidateRequest(req{Score: 9})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	assert.Contains(t, err.Error(), "Title is required")
	assert.Contains(t, err.Error(), "Score must be at most 5")
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"credit-system/internal/api/handler"
	"credit-system/internal/api/handler/dto"
	"credit-system/internal/config"
)

func authTestConfig() config.Config {
	cfg := config.Config{}
	cfg.Server.Auth.JWTSecret = "test-secret"
	return cfg
}

func TestGenerateBearerToken(t *testing.T) {
	h := handler.NewAuthHandler(authTestConfig(), testLogger())

	t.Run("success", func(t *testing.T) {
		reqBodyBytes, _ := json.Marshal(dto.TokenRequest{Username: "admin"})
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(reqBodyBytes))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.TokenResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Token, "Bearer "))

		parsed, err := jwt.Parse(strings.TrimPrefix(resp.Token, "Bearer "), func(*jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, "admin", claims["username"])
	})

	t.Run("empty username", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte(`{"username":"  "}`)))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, dto.ExceptionValidation, resp.Exception)
		assert.Contains(t, resp.Details, "username must not be empty")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte(`{`)))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/9rajputshivam/daytime-window-check/pkg/utils"
)

const testSecret = "test-jwt-secret"

func newGuardedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(Recovery())
	app.Post("/guarded", RequireJWT(secret), func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "platform",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRequireJWTAcceptsSignedToken(t *testing.T) {
	app := newGuardedApp(testSecret)

	req := httptest.NewRequest(fiber.MethodPost, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, testSecret, time.Now().Add(time.Hour)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireJWTRejectsMissingHeader(t *testing.T) {
	app := newGuardedApp(testSecret)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var envelope utils.ResponseData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "AUTH_ERROR", envelope.Code)
	assert.Equal(t, fiber.StatusUnauthorized, envelope.Status)
}

func TestRequireJWTRejectsWrongSecret(t *testing.T) {
	app := newGuardedApp(testSecret)

	req := httptest.NewRequest(fiber.MethodPost, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, "another-secret", time.Now().Add(time.Hour)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireJWTRejectsExpiredToken(t *testing.T) {
	app := newGuardedApp(testSecret)

	req := httptest.NewRequest(fiber.MethodPost, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, testSecret, time.Now().Add(-time.Hour)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireJWTRejectsUnsignedToken(t *testing.T) {
	app := newGuardedApp(testSecret)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": "platform"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+unsigned)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

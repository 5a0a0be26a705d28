package serverutils

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func newGuardedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", JwtMiddleware(secret), func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJwtMiddleware_ValidTokenPassesIdentity(t *testing.T) {
	app := newGuardedApp(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "31e8e9cf-3e4c-4a4e-9a92-7d77f38c1d2a",
		"email":   "alice@example.com",
		"exp":     time.Now().Add(2 * time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "31e8e9cf-3e4c-4a4e-9a92-7d77f38c1d2a", string(body))
}

func TestJwtMiddleware_MissingHeaderRejected(t *testing.T) {
	app := newGuardedApp(testSecret)

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddleware_NonBearerSchemeRejected(t *testing.T) {
	app := newGuardedApp(testSecret)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddleware_ExpiredTokenRejected(t *testing.T) {
	app := newGuardedApp(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "31e8e9cf-3e4c-4a4e-9a92-7d77f38c1d2a",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddleware_WrongSecretRejected(t *testing.T) {
	app := newGuardedApp(testSecret)
	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"user_id": "31e8e9cf-3e4c-4a4e-9a92-7d77f38c1d2a",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddleware_MissingUserIdClaimRejected(t *testing.T) {
	app := newGuardedApp(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

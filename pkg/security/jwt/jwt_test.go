package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/win/pkg/auth"
)

func newProtectedApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		id, _ := c.Locals(LocalUserID).(string)
		return c.SendString(id)
	})
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMiddlewareAcceptsGeneratedToken(t *testing.T) {
	gen := NewGenerator("s3cret", "win", time.Hour)
	token, err := gen.Generate(context.Background(), auth.Account{ID: uuid.New(), ProfileID: "user"})
	require.NoError(t, err)
	app := newProtectedApp("s3cret", "win")

	status, body := call(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user", body)

	status, body = call(t, app, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user", body)
}

func TestMiddlewareRejects(t *testing.T) {
	ctx := context.Background()
	acc := auth.Account{ID: uuid.New(), ProfileID: "user"}
	app := newProtectedApp("s3cret", "win")

	wrongSecret, err := NewGenerator("other", "win", time.Hour).Generate(ctx, acc)
	require.NoError(t, err)
	wrongIssuer, err := NewGenerator("s3cret", "someone", time.Hour).Generate(ctx, acc)
	require.NoError(t, err)
	expired, err := NewGenerator("s3cret", "win", -time.Minute).Generate(ctx, acc)
	require.NoError(t, err)

	tests := map[string]string{
		"missing header": "",
		"empty bearer":   "Bearer ",
		"garbage":        "Bearer not.a.jwt",
		"wrong secret":   "Bearer " + wrongSecret,
		"wrong issuer":   "Bearer " + wrongIssuer,
		"expired":        "Bearer " + expired,
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			status, body := call(t, app, header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Contains(t, body, `"error"`)
		})
	}
}

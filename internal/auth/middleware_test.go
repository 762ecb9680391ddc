package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"asa-backend/internal/config"
	"asa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "chave-de-teste-com-mais-de-32-caracteres"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New()
	app.Use(JWTMiddleware(cfg))

	app.Get("/read", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": UserEmail(c)})
	})

	editor := app.Group("", RequireRole(models.RoleEditor, models.RoleAdmin))
	editor.Post("/write", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	return app
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/read", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Authorization", "Bearer token-invalido")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestJWTMiddlewareBadFormat(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Authorization", "Basic abc123")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	app := newTestApp(t)

	token, err := GenerateToken(testSecret, "viewer@asa.org", models.RoleViewer)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestJWTMiddlewareUnknownRole(t *testing.T) {
	app := newTestApp(t)

	token, err := GenerateToken(testSecret, "alguem@asa.org", models.UserRole("gerente"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestRequireRoleBlocksViewerOnWrite(t *testing.T) {
	app := newTestApp(t)

	token, err := GenerateToken(testSecret, "viewer@asa.org", models.RoleViewer)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/write", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestRequireRoleAllowsEditorOnWrite(t *testing.T) {
	app := newTestApp(t)

	token, err := GenerateToken(testSecret, "editor@asa.org", models.RoleEditor)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/write", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
}

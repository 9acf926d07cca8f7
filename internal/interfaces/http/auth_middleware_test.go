package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/ecommerce-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ecommerce-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testCartID     = "65f000000000000000000001"
	testIssuer     = "ecommerce-api-test"
	testExpMin     = 60
	testCookieName = "ecommerceToken"
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testCookieName),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func rawToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID:    testUserID,
		Email:     "ana@example.com",
		FirstName: "Ana",
		Role:      role,
		CartID:    testCartID,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// tokenForRole genera un header Authorization con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	return "Bearer " + rawToken(t, role)
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_UsuarioAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp("admin", "usuario")
	resp := doRequest(t, app, tokenForRole(t, "usuario"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UsuarioBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "usuario"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"usuario no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_AdminBloqueadoEnRutaUsuario(t *testing.T) {
	app := buildTestApp("usuario")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de la identidad
// ──────────────────────────────────────────────────────────────────────────────

func meApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testCookieName), func(c *fiber.Ctx) error {
		id, _ := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
			"cart_id": id.CartID,
			"email":   id.Email,
		})
	})
	return app
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := meApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testCartID, body["cart_id"])
	assert.Equal(t, "ana@example.com", body["email"])
}

func TestAuthMiddleware_AceptaCookieDeSesion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: rawToken(t, "usuario")})
	resp, err := meApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "usuario", body["role"])
}

func TestAuthMiddleware_HeaderSinBearer_Retorna401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token "+rawToken(t, "usuario"))
	resp, err := meApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestViewAuthMiddleware_RedirigeALogin(t *testing.T) {
	app := fiber.New()
	app.Get("/profile", apphttp.ViewAuthMiddleware(testJWTSecret, testCookieName, "/login"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profile", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestOptionalAuth_NoBloquea(t *testing.T) {
	app := fiber.New()
	app.Get("/", apphttp.OptionalAuth(testJWTSecret, testCookieName), func(c *fiber.Ctx) error {
		return c.SendString("role=" + apphttp.GetRole(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "role=", string(body))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", tokenForRole(t, "usuario"))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "role=usuario", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Policy
// ──────────────────────────────────────────────────────────────────────────────

func TestDefaultPolicy_Reglas(t *testing.T) {
	p := apphttp.DefaultPolicy()

	assert.True(t, p.Allowed(apphttp.ActionProductCreate, "admin"))
	assert.False(t, p.Allowed(apphttp.ActionProductCreate, "usuario"))
	assert.True(t, p.Allowed(apphttp.ActionViewChat, "usuario"))
	assert.False(t, p.Allowed(apphttp.ActionViewChat, "admin"))
	assert.True(t, p.Allowed(apphttp.ActionViewProfile, "admin"))
	assert.True(t, p.Allowed(apphttp.ActionCartWrite, "usuario"))
	assert.False(t, p.Allowed("accion:inexistente", "admin"))
}

func TestPolicyRequire_AccionDesconocida_Retorna403(t *testing.T) {
	p := apphttp.NewPolicy(map[string][]string{"a": {"admin"}})
	app := fiber.New()
	app.Get("/x", apphttp.AuthMiddleware(testJWTSecret, testCookieName), p.Require("b"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestNewPolicy_CopiaReglas(t *testing.T) {
	rules := map[string][]string{"a": {"admin"}}
	p := apphttp.NewPolicy(rules)
	rules["a"][0] = "usuario"

	assert.True(t, p.Allowed("a", "admin"))
	assert.False(t, p.Allowed("a", "usuario"))
}

package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s testServer) page(t *testing.T, path string, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func sessionCookie(t *testing.T, role string) *http.Cookie {
	return &http.Cookie{Name: testCookieName, Value: rawToken(t, role)}
}

func TestVistas_PublicasSeRenderizanConLayout(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, "admin")
	resp, _ := s.do(t, http.MethodPost, "/api/product", admin, productBody("A", 10))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.page(t, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<nav>")
	assert.Contains(t, body, "Producto A")

	resp, body = s.page(t, "/login", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/api/sessions/login"`)
}

func TestVistas_ChatRedirigeSinSesion(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.page(t, "/chat", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestVistas_ChatSoloParaUsuarios(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.page(t, "/chat", sessionCookie(t, "admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.page(t, "/chat", sessionCookie(t, "usuario"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Ana", "el layout muestra el nombre de la sesión")
}

func TestVistas_CarritoInexistenteMuestraError(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.page(t, "/carts/65f000000000000000000099", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.page(t, "/carts/no-es-id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
)

// SessionConfig cookie de sesión donde viaja el JWT para las vistas.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// AuthHandler maneja registro, login, usuario actual y logout.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	session SessionConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, session SessionConfig) *AuthHandler {
	return &AuthHandler{uc: uc, session: session}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	if fromForm(c) {
		return c.Redirect("/login")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "payload": out})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el JWT y además lo deja en una cookie httpOnly para las vistas.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/sessions/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.session.TTL),
		HTTPOnly: true,
		Secure:   h.session.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	if fromForm(c) {
		return c.Redirect("/products")
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Usuario actual
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sessions/current [get]
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "payload": out})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/sessions/logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(h.session.CookieName)
	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMETextHTML {
		return c.Redirect("/login")
	}
	return c.JSON(dto.MessageResponse{Status: "success", Payload: "sesión cerrada"})
}

// fromForm indica si la petición viene de un formulario HTML (vistas /register y /login).
func fromForm(c *fiber.Ctx) bool {
	ct := string(c.Request().Header.ContentType())
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}

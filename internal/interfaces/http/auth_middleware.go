package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalIdentity = "identity"
)

// AuthMiddleware valida el JWT (header "Authorization: Bearer" o cookie de sesión) y carga la identidad en c.Locals.
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := extractToken(c, cookieName)
		if code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		setIdentity(c, id)
		return c.Next()
	}
}

// ViewAuthMiddleware igual que AuthMiddleware pero redirige a loginPath en vez de responder 401 (vistas HTML).
func ViewAuthMiddleware(jwtSecret, cookieName, loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, _ := extractToken(c, cookieName)
		if code != "" {
			return c.Redirect(loginPath)
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Redirect(loginPath)
		}
		setIdentity(c, id)
		return c.Next()
	}
}

// OptionalAuth carga la identidad si hay un token válido; nunca bloquea.
func OptionalAuth(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, code, _ := extractToken(c, cookieName); code == "" {
			if id, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				setIdentity(c, id)
			}
		}
		return c.Next()
	}
}

// extractToken prioriza el header Authorization; si falta, usa la cookie.
// code != "" indica el error a reportar.
func extractToken(c *fiber.Ctx, cookieName string) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookieName != "" {
			if v := c.Cookies(cookieName); v != "" {
				return v, "", ""
			}
		}
		return "", "MISSING_TOKEN", "Authorization header o cookie de sesión requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return tokenString, "", ""
}

func setIdentity(c *fiber.Ctx, id jwt.Identity) {
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalRole, id.Role)
	c.Locals(LocalIdentity, id)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetIdentity devuelve la identidad completa del token.
func GetIdentity(c *fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(jwt.Identity)
	return id, ok
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE → el token no trae rol.
//   - 403 FORBIDDEN    → el rol no está en la lista.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

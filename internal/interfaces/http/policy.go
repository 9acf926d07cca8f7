package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// Acciones protegidas.
const (
	ActionProductCreate = "product:create"
	ActionProductUpdate = "product:update"
	ActionProductDelete = "product:delete"
	ActionViewChat      = "view:chat"
	ActionViewProducts  = "view:products"
	ActionViewProfile   = "view:profile"
	ActionCartWrite     = "cart:write"
)

// Policy tabla declarativa acción → roles permitidos.
type Policy struct {
	rules map[string][]string
}

// DefaultPolicy reglas de la tienda: el catálogo lo administra admin; chat y tienda son para usuarios.
func DefaultPolicy() *Policy {
	return NewPolicy(map[string][]string{
		ActionProductCreate: {entity.RoleAdmin},
		ActionProductUpdate: {entity.RoleAdmin},
		ActionProductDelete: {entity.RoleAdmin},
		ActionViewChat:      {entity.RoleUsuario},
		ActionViewProducts:  {entity.RoleUsuario},
		ActionViewProfile:   {entity.RoleUsuario, entity.RoleAdmin},
		ActionCartWrite:     {entity.RoleUsuario, entity.RoleAdmin},
	})
}

// NewPolicy construye una política con una copia de rules.
func NewPolicy(rules map[string][]string) *Policy {
	cp := make(map[string][]string, len(rules))
	for action, roles := range rules {
		cp[action] = append([]string(nil), roles...)
	}
	return &Policy{rules: cp}
}

// Allowed indica si role puede ejecutar action. Acciones desconocidas nunca se permiten.
func (p *Policy) Allowed(action, role string) bool {
	for _, r := range p.rules[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Require middleware para action. Debe usarse DESPUÉS de AuthMiddleware.
func (p *Policy) Require(action string) fiber.Handler {
	roles, ok := p.rules[action]
	if !ok {
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acción no permitida: " + action})
		}
	}
	return RequireRole(roles...)
}

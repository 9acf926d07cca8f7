package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain"
)

const viewLayout = "layouts/main"

// ViewHandler renderiza las vistas HTML del servidor.
type ViewHandler struct {
	products *usecase.ProductUseCase
	carts    *usecase.CartUseCase
	users    *usecase.UserUseCase
}

// NewViewHandler construye el handler de vistas.
func NewViewHandler(products *usecase.ProductUseCase, carts *usecase.CartUseCase, users *usecase.UserUseCase) *ViewHandler {
	return &ViewHandler{products: products, carts: carts, users: users}
}

// Home catálogo completo, estático.
func (h *ViewHandler) Home(c *fiber.Ctx) error {
	list, err := h.products.All(c.UserContext())
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render("home", h.base(c, fiber.Map{"title": "Inicio", "products": list}), viewLayout)
}

// RealTimeProducts catálogo que se actualiza por WebSocket.
func (h *ViewHandler) RealTimeProducts(c *fiber.Ctx) error {
	list, err := h.products.All(c.UserContext())
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render("realTime", h.base(c, fiber.Map{"title": "Productos en tiempo real", "products": list}), viewLayout)
}

// Chat sala de chat.
func (h *ViewHandler) Chat(c *fiber.Ctx) error {
	return c.Render("chat", h.base(c, fiber.Map{"title": "Chat"}), viewLayout)
}

// Products catálogo paginado con filtros, igual que GET /api/product.
func (h *ViewHandler) Products(c *fiber.Ctx) error {
	page, err := h.products.List(c.UserContext(), queryOf(c), c.Path())
	if err != nil {
		return h.renderError(c, err)
	}
	categories, err := h.products.Categories(c.UserContext())
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render("products", h.base(c, fiber.Map{
		"title":      "Productos",
		"page":       page,
		"categories": categories,
	}), viewLayout)
}

// Cart detalle de un carrito.
func (h *ViewHandler) Cart(c *fiber.Ctx) error {
	cart, err := h.carts.GetByID(c.UserContext(), c.Params("cid"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render("cart", h.base(c, fiber.Map{"title": "Carrito", "cart": cart}), viewLayout)
}

// Register formulario de registro.
func (h *ViewHandler) Register(c *fiber.Ctx) error {
	return c.Render("register", h.base(c, fiber.Map{"title": "Registro"}), viewLayout)
}

// Login formulario de login.
func (h *ViewHandler) Login(c *fiber.Ctx) error {
	return c.Render("login", h.base(c, fiber.Map{"title": "Login"}), viewLayout)
}

// Profile datos del usuario en sesión.
func (h *ViewHandler) Profile(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render("profile", h.base(c, fiber.Map{"title": "Perfil", "profile": user}), viewLayout)
}

// base agrega la identidad de la sesión (si existe) a los datos de la vista.
func (h *ViewHandler) base(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if id, ok := GetIdentity(c); ok {
		data["user"] = id
	}
	return data
}

func (h *ViewHandler) renderError(c *fiber.Ctx, err error) error {
	status, msg := fiber.StatusInternalServerError, "error interno"
	switch {
	case errors.Is(err, domain.ErrPageOutOfRange), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidID):
		status, msg = fiber.StatusBadRequest, err.Error()
	}
	return c.Status(status).Render("error", h.base(c, fiber.Map{"title": "Error", "message": msg}), viewLayout)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
)

// CartHandler maneja las peticiones HTTP de carritos.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener carrito con productos
// @Tags         carts
// @Produce      json
// @Param        cid  path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{cid} [get]
func (h *CartHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("cid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "payload": out})
}

// AddProduct godoc
// @Summary      Agregar una unidad de un producto al carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        cid  path  string  true  "ID del carrito"
// @Param        pid  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/carts/{cid}/product/{pid} [post]
func (h *CartHandler) AddProduct(c *fiber.Ctx) error {
	out, err := h.uc.AddProduct(c.UserContext(), actorOf(c), c.Params("cid"), c.Params("pid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "payload": out})
}

// UpdateQuantity godoc
// @Summary      Fijar cantidad de un producto del carrito
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        cid   path  string  true  "ID del carrito"
// @Param        pid   path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateQuantityRequest  true  "Cantidad"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/carts/{cid}/product/{pid} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), actorOf(c), c.Params("cid"), c.Params("pid"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "payload": out})
}

// RemoveProduct godoc
// @Summary      Quitar un producto del carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        cid  path  string  true  "ID del carrito"
// @Param        pid  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carts/{cid}/product/{pid} [delete]
func (h *CartHandler) RemoveProduct(c *fiber.Ctx) error {
	out, err := h.uc.RemoveProduct(c.UserContext(), actorOf(c), c.Params("cid"), c.Params("pid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "payload": out})
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        cid  path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carts/{cid} [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.UserContext(), actorOf(c), c.Params("cid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "payload": out})
}

func actorOf(c *fiber.Ctx) usecase.CartActor {
	id, _ := GetIdentity(c)
	return usecase.CartActor{Role: id.Role, CartID: id.CartID}
}

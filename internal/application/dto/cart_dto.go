package dto

import (
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// CartItemResponse línea del carrito con el producto poblado (nil si el producto ya no existe).
type CartItemResponse struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// CartResponse salida de un carrito.
type CartResponse struct {
	ID        string             `json:"id"`
	Products  []CartItemResponse `json:"products"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// UpdateQuantityRequest entrada para fijar la cantidad de una línea.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ToCartResponse convierte la entidad a DTO.
func ToCartResponse(c *entity.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		item := CartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity}
		if it.Product != nil {
			pr := ToProductResponse(it.Product)
			item.Product = &pr
		}
		items = append(items, item)
	}
	return CartResponse{ID: c.ID, Products: items, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

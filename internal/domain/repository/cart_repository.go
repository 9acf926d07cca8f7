package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para Cart (DIP).
type CartRepository interface {
	Create(ctx context.Context) (*entity.Cart, error)
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	// SaveItems reemplaza las líneas del carrito.
	SaveItems(ctx context.Context, id string, items []entity.CartItem) error
	Delete(ctx context.Context, id string) error
	IsValidID(id string) bool
}

package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Find devuelve una página de productos y el total que cumple el filtro.
	Find(ctx context.Context, filter entity.ProductFilter, sort entity.SortDirection, skip, limit int) ([]*entity.Product, int64, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	// Delete devuelve la cantidad de documentos eliminados.
	Delete(ctx context.Context, id string) (int64, error)
	// IsValidID indica si id tiene el formato de identificador del almacén.
	IsValidID(id string) bool
}

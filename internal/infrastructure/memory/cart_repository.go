package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carritos en memoria.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string]*entity.Cart
}

// NewCartRepository crea el almacén vacío.
func NewCartRepository() *CartRepo {
	return &CartRepo{carts: make(map[string]*entity.Cart)}
}

// IsValidID indica si id es un ObjectID hexadecimal.
func (r *CartRepo) IsValidID(id string) bool { return primitive.IsValidObjectID(id) }

// Create crea un carrito vacío.
func (r *CartRepo) Create(_ context.Context) (*entity.Cart, error) {
	now := time.Now().UTC()
	c := &entity.Cart{ID: primitive.NewObjectID().Hex(), Items: []entity.CartItem{}, CreatedAt: now, UpdatedAt: now}
	r.mu.Lock()
	r.carts[c.ID] = c
	r.mu.Unlock()
	return clone(c), nil
}

// GetByID obtiene un carrito.
func (r *CartRepo) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(c), nil
}

// SaveItems reemplaza las líneas del carrito.
func (r *CartRepo) SaveItems(_ context.Context, id string, items []entity.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Items = make([]entity.CartItem, 0, len(items))
	for _, it := range items {
		c.Items = append(c.Items, entity.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete elimina el carrito. Devuelve ErrNotFound si no existe.
func (r *CartRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

func clone(c *entity.Cart) *entity.Cart {
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	return &cp
}

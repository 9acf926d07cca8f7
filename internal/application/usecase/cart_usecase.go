package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// CartActor quién opera sobre el carrito. Un usuario solo modifica su propio carrito; admin, cualquiera.
type CartActor struct {
	Role   string
	CartID string
}

func (a CartActor) canWrite(cartID string) bool {
	return a.Role == entity.RoleAdmin || a.CartID == cartID
}

// CartUseCase casos de uso del carrito.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	// mu serializa lectura-modificación-escritura de líneas dentro del proceso.
	mu sync.Mutex
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// GetByID devuelve el carrito con los productos poblados.
func (uc *CartUseCase) GetByID(ctx context.Context, cartID string) (*dto.CartResponse, error) {
	cart, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := uc.populate(ctx, cart); err != nil {
		return nil, err
	}
	out := dto.ToCartResponse(cart)
	return &out, nil
}

// AddProduct suma una unidad del producto al carrito (crea la línea si no existe).
func (uc *CartUseCase) AddProduct(ctx context.Context, actor CartActor, cartID, productID string) (*dto.CartResponse, error) {
	return uc.mutate(ctx, actor, cartID, productID, func(cart *entity.Cart, p *entity.Product) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID == p.ID {
				if cart.Items[i].Quantity+1 > p.Stock {
					return domain.ErrInsufficientStock
				}
				cart.Items[i].Quantity++
				return nil
			}
		}
		if p.Stock < 1 {
			return domain.ErrInsufficientStock
		}
		cart.Items = append(cart.Items, entity.CartItem{ProductID: p.ID, Quantity: 1})
		return nil
	})
}

// UpdateQuantity fija la cantidad de una línea existente.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, actor CartActor, cartID, productID string, in dto.UpdateQuantityRequest) (*dto.CartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, cartID, productID, func(cart *entity.Cart, p *entity.Product) error {
		i := indexOf(cart.Items, p.ID)
		if i < 0 {
			return fmt.Errorf("%w: el producto no está en el carrito", domain.ErrNotFound)
		}
		if in.Quantity > p.Stock {
			return domain.ErrInsufficientStock
		}
		cart.Items[i].Quantity = in.Quantity
		return nil
	})
}

// RemoveProduct quita una línea del carrito. El producto no necesita seguir existiendo en el catálogo.
func (uc *CartUseCase) RemoveProduct(ctx context.Context, actor CartActor, cartID, productID string) (*dto.CartResponse, error) {
	if !actor.canWrite(cartID) {
		return nil, domain.ErrForbidden
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cart, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	i := indexOf(cart.Items, productID)
	if i < 0 {
		return nil, fmt.Errorf("%w: el producto no está en el carrito", domain.ErrNotFound)
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	return uc.save(ctx, cart)
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear(ctx context.Context, actor CartActor, cartID string) (*dto.CartResponse, error) {
	if !actor.canWrite(cartID) {
		return nil, domain.ErrForbidden
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cart, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Items = nil
	return uc.save(ctx, cart)
}

func (uc *CartUseCase) mutate(ctx context.Context, actor CartActor, cartID, productID string, fn func(*entity.Cart, *entity.Product) error) (*dto.CartResponse, error) {
	if !actor.canWrite(cartID) {
		return nil, domain.ErrForbidden
	}
	if !uc.products.IsValidID(productID) {
		return nil, domain.ErrInvalidID
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cart, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart, p); err != nil {
		return nil, err
	}
	return uc.save(ctx, cart)
}

func (uc *CartUseCase) load(ctx context.Context, cartID string) (*entity.Cart, error) {
	if !uc.carts.IsValidID(cartID) {
		return nil, domain.ErrInvalidID
	}
	return uc.carts.GetByID(ctx, cartID)
}

func (uc *CartUseCase) save(ctx context.Context, cart *entity.Cart) (*dto.CartResponse, error) {
	if err := uc.carts.SaveItems(ctx, cart.ID, cart.Items); err != nil {
		return nil, err
	}
	if err := uc.populate(ctx, cart); err != nil {
		return nil, err
	}
	out := dto.ToCartResponse(cart)
	return &out, nil
}

// populate adjunta el producto de cada línea; las líneas de productos eliminados quedan con Product nil.
func (uc *CartUseCase) populate(ctx context.Context, cart *entity.Cart) error {
	if len(cart.Items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	list, err := uc.products.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	for i := range cart.Items {
		cart.Items[i].Product = byID[cart.Items[i].ProductID]
	}
	return nil
}

func indexOf(items []entity.CartItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
)

type cartFixture struct {
	uc       *usecase.CartUseCase
	products *usecase.ProductUseCase
	cartID   string
	owner    usecase.CartActor
	// productID con stock 2
	productID string
}

func newCartFixture(t *testing.T) cartFixture {
	t.Helper()
	ctx := context.Background()
	productRepo := memory.NewProductRepository()
	cartRepo := memory.NewCartRepository()
	products := usecase.NewProductUseCase(productRepo, nil)

	p, err := products.Create(ctx, createReq("A", "hogar", 10, 2))
	require.NoError(t, err)
	cart, err := cartRepo.Create(ctx)
	require.NoError(t, err)

	return cartFixture{
		uc:        usecase.NewCartUseCase(cartRepo, productRepo),
		products:  products,
		cartID:    cart.ID,
		owner:     usecase.CartActor{Role: entity.RoleUsuario, CartID: cart.ID},
		productID: p.ID,
	}
}

func TestCart_AddProductSumaUnidades(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.uc.AddProduct(ctx, f.owner, f.cartID, f.productID)
	require.NoError(t, err)
	out, err := f.uc.AddProduct(ctx, f.owner, f.cartID, f.productID)
	require.NoError(t, err)

	require.Len(t, out.Products, 1)
	assert.Equal(t, 2, out.Products[0].Quantity)
	require.NotNil(t, out.Products[0].Product)
	assert.Equal(t, "A", out.Products[0].Product.Code)

	_, err = f.uc.AddProduct(ctx, f.owner, f.cartID, f.productID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCart_SoloElDuenoOAdminModifican(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	otro := usecase.CartActor{Role: entity.RoleUsuario, CartID: "65f000000000000000000099"}

	_, err := f.uc.AddProduct(ctx, otro, f.cartID, f.productID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.Clear(ctx, otro, f.cartID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	admin := usecase.CartActor{Role: entity.RoleAdmin}
	_, err = f.uc.AddProduct(ctx, admin, f.cartID, f.productID)
	assert.NoError(t, err)
}

func TestCart_UpdateQuantity(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.uc.UpdateQuantity(ctx, f.owner, f.cartID, f.productID, dto.UpdateQuantityRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el producto aún no está en el carrito")

	_, err = f.uc.AddProduct(ctx, f.owner, f.cartID, f.productID)
	require.NoError(t, err)

	out, err := f.uc.UpdateQuantity(ctx, f.owner, f.cartID, f.productID, dto.UpdateQuantityRequest{Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Products[0].Quantity)

	_, err = f.uc.UpdateQuantity(ctx, f.owner, f.cartID, f.productID, dto.UpdateQuantityRequest{Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.uc.UpdateQuantity(ctx, f.owner, f.cartID, f.productID, dto.UpdateQuantityRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCart_RemoveYClear(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	_, err := f.uc.AddProduct(ctx, f.owner, f.cartID, f.productID)
	require.NoError(t, err)

	out, err := f.uc.RemoveProduct(ctx, f.owner, f.cartID, f.productID)
	require.NoError(t, err)
	assert.Empty(t, out.Products)

	_, err = f.uc.RemoveProduct(ctx, f.owner, f.cartID, f.productID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.AddProduct(ctx, f.owner, f.cartID, f.productID)
	require.NoError(t, err)
	out, err = f.uc.Clear(ctx, f.owner, f.cartID)
	require.NoError(t, err)
	assert.Empty(t, out.Products)
}

func TestCart_ProductoEliminadoQuedaSinPoblar(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	_, err := f.uc.AddProduct(ctx, f.owner, f.cartID, f.productID)
	require.NoError(t, err)
	require.NoError(t, f.products.Delete(ctx, f.productID))

	out, err := f.uc.GetByID(ctx, f.cartID)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Nil(t, out.Products[0].Product)
}

func TestCart_IDsInvalidos(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.uc.GetByID(ctx, "xyz")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = f.uc.GetByID(ctx, "65f000000000000000000099")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.AddProduct(ctx, f.owner, f.cartID, "xyz")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = f.uc.AddProduct(ctx, f.owner, f.cartID, "65f000000000000000000099")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

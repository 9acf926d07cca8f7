package dto

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ErrNotNumber se devuelve al decodificar un campo numérico con un valor que no es número.
var ErrNotNumber = errors.New("el precio y el stock deben ser números")

// Number valor numérico estricto: solo acepta números JSON, nunca strings.
type Number struct {
	Value decimal.Decimal
	Set   bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(b) == 0 || b[0] == '"' {
		return ErrNotNumber
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return ErrNotNumber
	}
	*n = Number{Value: d, Set: true}
	return nil
}

// FlexNumber acepta un número JSON o un string numérico ("12.5").
type FlexNumber struct {
	Value decimal.Decimal
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 1 && b[0] == '"' && b[len(b)-1] == '"' {
		b = bytes.TrimSpace(b[1 : len(b)-1])
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return ErrNotNumber
	}
	n.Value = d
	return nil
}

// CreateProductRequest entrada para crear un producto. Los siete campos son obligatorios.
type CreateProductRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       Number `json:"price"`
	Thumbnail   string `json:"thumbnail" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Stock       Number `json:"stock"`
	Category    string `json:"category" validate:"required"`
}

// Validate comprueba presencia de campos y rangos; devuelve errores que envuelven domain.ErrInvalidInput.
func (r CreateProductRequest) Validate() error {
	if !r.Price.Set || !r.Stock.Set {
		return fmt.Errorf("%w: todos los campos son obligatorios", domain.ErrInvalidInput)
	}
	if err := Validate(r); err != nil {
		return fmt.Errorf("%w: todos los campos son obligatorios", domain.ErrInvalidInput)
	}
	if r.Price.Value.IsNegative() {
		return fmt.Errorf("%w: price debe ser >= 0", domain.ErrInvalidInput)
	}
	if !r.Stock.Value.IsInteger() || r.Stock.Value.IsNegative() {
		return fmt.Errorf("%w: stock debe ser un entero >= 0", domain.ErrInvalidInput)
	}
	return nil
}

// ToEntity construye la entidad a persistir. Llamar después de Validate.
func (r CreateProductRequest) ToEntity() *entity.Product {
	return &entity.Product{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price.Value,
		Thumbnail:   r.Thumbnail,
		Code:        r.Code,
		Stock:       int(r.Stock.Value.IntPart()),
		Category:    r.Category,
	}
}

// UpdateProductRequest entrada para actualizar un producto. Campos ausentes no se tocan.
// No hay campo para el id: un "_id" o "id" enviado por el cliente se descarta al decodificar.
type UpdateProductRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Price       *FlexNumber `json:"price"`
	Thumbnail   *string     `json:"thumbnail"`
	Code        *string     `json:"code"`
	Stock       *FlexNumber `json:"stock"`
	Category    *string     `json:"category"`
}

// ToPatch valida rangos y convierte a entity.ProductPatch.
func (r UpdateProductRequest) ToPatch() (entity.ProductPatch, error) {
	p := entity.ProductPatch{
		Title:       r.Title,
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
		Code:        r.Code,
		Category:    r.Category,
	}
	if r.Price != nil {
		if r.Price.Value.IsNegative() {
			return p, fmt.Errorf("%w: price debe ser >= 0", domain.ErrInvalidInput)
		}
		price := r.Price.Value
		p.Price = &price
	}
	if r.Stock != nil {
		if !r.Stock.Value.IsInteger() || r.Stock.Value.IsNegative() {
			return p, fmt.Errorf("%w: stock debe ser un entero >= 0", domain.ErrInvalidInput)
		}
		stock := int(r.Stock.Value.IntPart())
		p.Stock = &stock
	}
	return p, nil
}

// ProductQuery parámetros crudos del listado. Se interpretan en ProductUseCase.List.
type ProductQuery struct {
	Page     string
	Limit    string
	Sort     string
	Category string
	Title    string
	Stock    string
	// Params conserva todos los parámetros originales para construir prevLink/nextLink.
	Params url.Values
}

// ProductQueryFromValues arma la consulta desde los query params de la petición.
func ProductQueryFromValues(v url.Values) ProductQuery {
	if v == nil {
		v = url.Values{}
	}
	return ProductQuery{
		Page:     v.Get("page"),
		Limit:    v.Get("limit"),
		Sort:     v.Get("sort"),
		Category: v.Get("category"),
		Title:    v.Get("title"),
		Stock:    v.Get("stock"),
		Params:   v,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Thumbnail   string          `json:"thumbnail"`
	Code        string          `json:"code"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Thumbnail:   p.Thumbnail,
		Code:        p.Code,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses convierte una lista de entidades.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ProductPageResponse sobre de paginación del listado de productos.
type ProductPageResponse struct {
	Status      string            `json:"status"`
	Payload     []ProductResponse `json:"payload"`
	TotalPages  int               `json:"totalPages"`
	Page        int               `json:"page"`
	HasPrevPage bool              `json:"hasPrevPage"`
	HasNextPage bool              `json:"hasNextPage"`
	PrevPage    *int              `json:"prevPage"`
	NextPage    *int              `json:"nextPage"`
	PrevLink    *string           `json:"prevLink"`
	NextLink    *string           `json:"nextLink"`
}

// ProductEnvelope respuesta de éxito con un producto.
type ProductEnvelope struct {
	Status  string          `json:"status"`
	Payload ProductResponse `json:"payload"`
}

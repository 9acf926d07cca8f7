package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Code es único en todo el catálogo; Price y Stock nunca son negativos.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	Thumbnail   string
	Code        string
	Stock       int
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter criterios de búsqueda del catálogo. Los campos vacíos no filtran.
type ProductFilter struct {
	Category string // coincidencia exacta
	Title    string // subcadena, sin distinguir mayúsculas
	Stock    *int   // coincidencia exacta
}

// SortDirection orden por precio.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortPriceAsc
	SortPriceDesc
)

// ProductPatch cambios parciales sobre un producto; nil = sin cambio.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Thumbnail   *string
	Code        *string
	Stock       *int
	Category    *string
}

// Empty indica si el patch no modifica ningún campo.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.Thumbnail == nil &&
		p.Code == nil && p.Stock == nil && p.Category == nil
}

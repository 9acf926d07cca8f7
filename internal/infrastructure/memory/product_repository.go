// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo local sin bases de datos) y en tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria. Los ids tienen el mismo formato que en MongoDB.
type ProductRepo struct {
	mu    sync.RWMutex
	items []*entity.Product // orden de inserción
}

// NewProductRepository crea un catálogo vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{}
}

// IsValidID indica si id es un ObjectID hexadecimal.
func (r *ProductRepo) IsValidID(id string) bool { return primitive.IsValidObjectID(id) }

// Create agrega el producto; code duplicado devuelve ErrDuplicateCode.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Code == p.Code {
			return domain.ErrDuplicateCode
		}
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID().Hex()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.items = append(r.items, &cp)
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		cp := *r.items[i]
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Find aplica filtro, orden y paginación con la misma semántica que el adaptador Mongo.
func (r *ProductRepo) Find(_ context.Context, f entity.ProductFilter, s entity.SortDirection, skip, limit int) ([]*entity.Product, int64, error) {
	r.mu.RLock()
	matched := make([]*entity.Product, 0, len(r.items))
	title := strings.ToLower(f.Title)
	for _, it := range r.items {
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(it.Title), title) {
			continue
		}
		if f.Stock != nil && it.Stock != *f.Stock {
			continue
		}
		cp := *it
		matched = append(matched, &cp)
	}
	r.mu.RUnlock()

	switch s {
	case entity.SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.LessThan(matched[j].Price) })
	case entity.SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.GreaterThan(matched[j].Price) })
	}

	total := int64(len(matched))
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*entity.Product{}, total, nil
	}
	end := skip + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ListAll devuelve el catálogo completo en orden de inserción.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	list, _, err := r.Find(ctx, entity.ProductFilter{}, entity.SortNone, 0, 0)
	return list, err
}

// ListByIDs devuelve los productos existentes entre ids.
func (r *ProductRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if i := r.index(id); i >= 0 {
			cp := *r.items[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Categories devuelve las categorías distintas, ordenadas.
func (r *ProductRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]struct{}{}
	out := []string{}
	for _, it := range r.items {
		if _, ok := seen[it.Category]; ok || it.Category == "" {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out, nil
}

// Update aplica el patch.
func (r *ProductRepo) Update(_ context.Context, id string, p entity.ProductPatch) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	if p.Code != nil {
		for j, it := range r.items {
			if j != i && it.Code == *p.Code {
				return nil, domain.ErrDuplicateCode
			}
		}
	}
	cur := r.items[i]
	if p.Title != nil {
		cur.Title = *p.Title
	}
	if p.Description != nil {
		cur.Description = *p.Description
	}
	if p.Price != nil {
		cur.Price = *p.Price
	}
	if p.Thumbnail != nil {
		cur.Thumbnail = *p.Thumbnail
	}
	if p.Code != nil {
		cur.Code = *p.Code
	}
	if p.Stock != nil {
		cur.Stock = *p.Stock
	}
	if p.Category != nil {
		cur.Category = *p.Category
	}
	cur.UpdatedAt = time.Now().UTC()
	cp := *cur
	return &cp, nil
}

// Delete elimina un producto y devuelve la cantidad eliminada.
func (r *ProductRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return 0, nil
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return 1, nil
}

func (r *ProductRepo) index(id string) int {
	for i, it := range r.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

package usecase

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/event"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// Paginación del listado. limit se acota a MaxPageLimit.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ProductUseCase casos de uso del catálogo. Las altas y bajas se notifican por el canal en tiempo real.
type ProductUseCase struct {
	repo     repository.ProductRepository
	notifier ports.Notifier
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, notifier ports.Notifier) *ProductUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &ProductUseCase{repo: repo, notifier: notifier}
}

// List devuelve una página del catálogo según los filtros de q.
// basePath es la ruta usada para construir prevLink/nextLink (p. ej. "/api/product").
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery, basePath string) (*dto.ProductPageResponse, error) {
	page := parsePositive(q.Page, 1)
	limit := parsePositive(q.Limit, DefaultPageLimit)
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	filter := entity.ProductFilter{Category: q.Category, Title: q.Title}
	if q.Stock != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(q.Stock)); err == nil {
			filter.Stock = &n
		}
	}
	sort := entity.SortNone
	switch q.Sort {
	case "asc":
		sort = entity.SortPriceAsc
	case "desc":
		sort = entity.SortPriceDesc
	}

	// page*limit desbordaría int: no existe esa página.
	if page > math.MaxInt/limit {
		return nil, domain.ErrPageOutOfRange
	}
	items, total, err := uc.repo.Find(ctx, filter, sort, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return nil, domain.ErrPageOutOfRange
	}

	resp := &dto.ProductPageResponse{
		Status:      "success",
		Payload:     dto.ToProductResponses(items),
		TotalPages:  totalPages,
		Page:        page,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
	if resp.HasPrevPage {
		prev := page - 1
		link := pageLink(basePath, q.Params, prev)
		resp.PrevPage, resp.PrevLink = &prev, &link
	}
	if resp.HasNextPage {
		next := page + 1
		link := pageLink(basePath, q.Params, next)
		resp.NextPage, resp.NextLink = &next, &link
	}
	return resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !uc.repo.IsValidID(id) {
		return nil, domain.ErrInvalidID
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Create crea un producto. Si el código ya existe no se escribe nada.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.ensureCodeFree(ctx, in.Code, ""); err != nil {
		return nil, err
	}
	product := in.ToEntity()
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.notifier.Publish(event.NewProduct{Title: product.Title})
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Update aplica cambios parciales. El id del producto nunca se modifica.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !uc.repo.IsValidID(id) {
		return nil, domain.ErrInvalidID
	}
	patch, err := in.ToPatch()
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return uc.GetByID(ctx, id)
	}
	if patch.Code != nil {
		if err := uc.ensureCodeFree(ctx, *patch.Code, id); err != nil {
			return nil, err
		}
	}
	p, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Delete elimina un producto y difunde el catálogo resultante una sola vez.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if !uc.repo.IsValidID(id) {
		return domain.ErrInvalidID
	}
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNothingDeleted
	}
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	uc.notifier.Publish(event.DeletedProduct{Products: toSnapshots(all)})
	return nil
}

// Categories lista las categorías distintas del catálogo.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.repo.Categories(ctx)
}

// All devuelve el catálogo completo (vistas home y realtimeproducts).
func (uc *ProductUseCase) All(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(list), nil
}

// ensureCodeFree devuelve ErrDuplicateCode si code pertenece a un producto distinto de ownerID.
func (uc *ProductUseCase) ensureCodeFree(ctx context.Context, code, ownerID string) error {
	existing, err := uc.repo.GetByCode(ctx, code)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing != nil && existing.ID != ownerID:
		return domain.ErrDuplicateCode
	}
	return nil
}

func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// pageLink conserva todos los parámetros de la consulta y sustituye page.
func pageLink(basePath string, params url.Values, page int) string {
	v := url.Values{}
	for k, vals := range params {
		v[k] = append([]string(nil), vals...)
	}
	v.Set("page", strconv.Itoa(page))
	return basePath + "?" + v.Encode()
}

func toSnapshots(list []*entity.Product) []event.ProductSnapshot {
	out := make([]event.ProductSnapshot, 0, len(list))
	for _, p := range list {
		out = append(out, event.ProductSnapshot{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Thumbnail:   p.Thumbnail,
			Code:        p.Code,
			Stock:       p.Stock,
			Category:    p.Category,
		})
	}
	return out
}

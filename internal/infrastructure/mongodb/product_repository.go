package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       decimal.Decimal    `bson:"price"`
	Thumbnail   string             `bson:"thumbnail"`
	Code        string             `bson:"code"`
	Stock       int                `bson:"stock"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d productDoc) toEntity() *entity.Product {
	return &entity.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Thumbnail:   d.Thumbnail,
		Code:        d.Code,
		Stock:       d.Stock,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ProductRepo implementación del puerto ProductRepository sobre la colección products.
type ProductRepo struct {
	collection *mongo.Collection
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db *mongo.Database) *ProductRepo {
	return &ProductRepo{collection: db.Collection(ProductsCollection)}
}

// IsValidID indica si id es un ObjectID hexadecimal.
func (r *ProductRepo) IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Create persiste un nuevo producto y completa ID y timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	doc := productDoc{
		ID:          primitive.NewObjectID(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Thumbnail:   p.Thumbnail,
		Code:        p.Code,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *ProductRepo) findOne(ctx context.Context, filter bson.M) (*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc productDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toEntity(), nil
}

// Find devuelve una página filtrada y el total de coincidencias.
func (r *ProductRepo) Find(ctx context.Context, f entity.ProductFilter, s entity.SortDirection, skip, limit int) ([]*entity.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := buildProductFilter(f)
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	opts := options.Find().
		SetSort(buildProductSort(s)).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	list, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve el catálogo completo en orden de inserción.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// ListByIDs devuelve los productos existentes entre ids; los ids inválidos se ignoran.
func (r *ProductRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*entity.Product{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

// Categories devuelve las categorías distintas, ordenadas.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Update aplica el patch y devuelve el documento actualizado.
func (r *ProductRepo) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, buildProductUpdate(patch, time.Now().UTC()), opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateCode
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return doc.toEntity(), nil
}

// Delete elimina un producto y devuelve la cantidad eliminada.
func (r *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ProductRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	list := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toEntity())
	}
	return list, nil
}

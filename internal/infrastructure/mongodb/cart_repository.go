package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

type cartItemDoc struct {
	Product  primitive.ObjectID `bson:"product"`
	Quantity int                `bson:"quantity"`
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Products  []cartItemDoc      `bson:"products"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d cartDoc) toEntity() *entity.Cart {
	items := make([]entity.CartItem, 0, len(d.Products))
	for _, it := range d.Products {
		items = append(items, entity.CartItem{ProductID: it.Product.Hex(), Quantity: it.Quantity})
	}
	return &entity.Cart{ID: d.ID.Hex(), Items: items, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

// CartRepo implementación del puerto CartRepository sobre la colección carts.
type CartRepo struct {
	collection *mongo.Collection
}

// NewCartRepository construye el adaptador de persistencia para carritos.
func NewCartRepository(db *mongo.Database) *CartRepo {
	return &CartRepo{collection: db.Collection(CartsCollection)}
}

// IsValidID indica si id es un ObjectID hexadecimal.
func (r *CartRepo) IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Create crea un carrito vacío.
func (r *CartRepo) Create(ctx context.Context) (*entity.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	doc := cartDoc{ID: primitive.NewObjectID(), Products: []cartItemDoc{}, CreatedAt: now, UpdatedAt: now}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert cart: %w", err)
	}
	return doc.toEntity(), nil
}

// GetByID obtiene un carrito por ID (sin poblar productos).
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc cartDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return doc.toEntity(), nil
}

// SaveItems reemplaza las líneas del carrito.
func (r *CartRepo) SaveItems(ctx context.Context, id string, items []entity.CartItem) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	docs := make([]cartItemDoc, 0, len(items))
	for _, it := range items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return fmt.Errorf("%w: producto %q", domain.ErrInvalidID, it.ProductID)
		}
		docs = append(docs, cartItemDoc{Product: pid, Quantity: it.Quantity})
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"products": docs, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el carrito.
func (r *CartRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

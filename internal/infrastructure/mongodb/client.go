// Package mongodb implementa los puertos de persistencia del catálogo, carritos y mensajes sobre MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/ecommerce-api/pkg/config"
)

// Nombres de colecciones.
const (
	ProductsCollection = "products"
	CartsCollection    = "carts"
	MessagesCollection = "messages"
)

// Connect abre el cliente con el codec de decimales registrado y verifica la conexión.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetRegistry(NewRegistry()).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("conectar mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices que sostienen las invariantes del catálogo (code único).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(ProductsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_code")},
		{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("idx_category")},
		{Keys: bson.D{{Key: "price", Value: 1}}, Options: options.Index().SetName("idx_price")},
	})
	if err != nil {
		return fmt.Errorf("índices de productos: %w", err)
	}
	return nil
}

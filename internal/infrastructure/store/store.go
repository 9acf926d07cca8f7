// Package store abre los adaptadores de persistencia según STORAGE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ecommerce-api/pkg/config"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// UserStore almacén de credenciales con la operación administrativa de cmd/seed.
type UserStore interface {
	repository.UserRepository
	PromoteToAdmin(ctx context.Context, id string) error
}

// Stores adaptadores abiertos.
type Stores struct {
	Products repository.ProductRepository
	Carts    repository.CartRepository
	Messages repository.MessageRepository
	Users    UserStore
}

// Open conecta los almacenes. close libera las conexiones y es seguro llamarlo siempre.
//   - memory: todo en memoria del proceso.
//   - mongo:  catálogo, carritos y mensajes en MongoDB; credenciales en PostgreSQL.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, func(), error) {
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		return &Stores{
			Products: memory.NewProductRepository(),
			Carts:    memory.NewCartRepository(),
			Messages: memory.NewMessageRepository(),
			Users:    memory.NewUserRepository(),
		}, func() {}, nil
	}

	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, func() {}, err
	}
	closeMongo := func() { _ = client.Disconnect(context.Background()) }
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		closeMongo()
		return nil, func() {}, err
	}
	log.Info().Str("db", cfg.Mongo.Database).Msg("MongoDB conectado")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		closeMongo()
		return nil, func() {}, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.Migrate {
		applied, err := postgres.RunMigrations(ctx, pool)
		if err != nil {
			pool.Close()
			closeMongo()
			return nil, func() {}, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	log.Info().Msg("PostgreSQL conectado")

	return &Stores{
			Products: mongodb.NewProductRepository(db),
			Carts:    mongodb.NewCartRepository(db),
			Messages: mongodb.NewMessageRepository(db),
			Users:    postgres.NewUserRepository(pool),
		}, func() {
			pool.Close()
			closeMongo()
		}, nil
}

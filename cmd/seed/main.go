// seed carga productos de ejemplo y un usuario administrador en los almacenes configurados.
//
// Uso: go run ./cmd/seed [ruta/productos.json]
// Sin argumento usa el catálogo de ejemplo incorporado.
// El administrador se toma de SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD (si están definidos).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/store"
	"github.com/jhoicas/ecommerce-api/pkg/config"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.App.Storage == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: el seed no persiste nada")
	}

	products := sampleProducts()
	if len(os.Args) > 1 {
		products, err = readProducts(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer productos: %v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	stores, closeStores, err := store.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenes: %v\n", err)
		os.Exit(1)
	}
	defer closeStores()

	productUC := usecase.NewProductUseCase(stores.Products, ports.NopNotifier{})
	created, skipped := 0, 0
	for _, p := range products {
		_, err := productUC.Create(ctx, p)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicateCode):
			skipped++
		default:
			log.Error().Err(err).Str("code", p.Code).Msg("crear producto")
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("productos cargados")

	email, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info().Msg("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD no definidos; sin administrador")
		return
	}
	authUC := auth.NewAuthUseCase(stores.Users, stores.Carts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := authUC.Register(ctx, dto.RegisterRequest{
		FirstName: "Admin",
		LastName:  "Tienda",
		Email:     email,
		Age:       30,
		Password:  password,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmailAlreadyExists) {
			fmt.Fprintf(os.Stderr, "Registrar administrador: %v\n", err)
			os.Exit(1)
		}
		existing, err := stores.Users.GetByEmail(ctx, email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Buscar administrador: %v\n", err)
			os.Exit(1)
		}
		resp := dto.ToUserResponse(existing)
		user = &resp
	}
	if err := stores.Users.PromoteToAdmin(ctx, user.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Promover administrador: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("email", email).Msg("administrador listo")
}

func readProducts(path string) ([]dto.CreateProductRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []dto.CreateProductRequest
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func sampleProducts() []dto.CreateProductRequest {
	type sample struct {
		title, desc, code, category string
		price                       string
		stock                       int64
	}
	samples := []sample{
		{"Camiseta básica", "Camiseta de algodón 100%", "CAM-001", "ropa", "19.99", 50},
		{"Pantalón jean", "Jean azul corte recto", "PAN-001", "ropa", "45.50", 30},
		{"Zapatillas running", "Zapatillas livianas para correr", "ZAP-001", "calzado", "89.90", 15},
		{"Botas de cuero", "Botas de cuero con suela de goma", "ZAP-002", "calzado", "120.00", 8},
		{"Auriculares bluetooth", "Auriculares inalámbricos con micrófono", "ELE-001", "electronica", "59.99", 25},
		{"Teclado mecánico", "Teclado mecánico con switches azules", "ELE-002", "electronica", "75.00", 12},
		{"Taza de cerámica", "Taza de 350 ml apta para microondas", "HOG-001", "hogar", "7.50", 100},
		{"Lámpara de escritorio", "Lámpara LED regulable", "HOG-002", "hogar", "32.00", 0},
		{"Mochila urbana", "Mochila de 20 L resistente al agua", "ACC-001", "accesorios", "39.90", 20},
		{"Gorra", "Gorra ajustable de gabardina", "ACC-002", "accesorios", "12.00", 40},
		{"Libro de recetas", "Recetas fáciles para todos los días", "LIB-001", "libros", "22.90", 18},
		{"Novela policial", "Edición de bolsillo", "LIB-002", "libros", "14.50", 22},
	}
	out := make([]dto.CreateProductRequest, 0, len(samples))
	for _, s := range samples {
		out = append(out, dto.CreateProductRequest{
			Title:       s.title,
			Description: s.desc,
			Price:       dto.Number{Value: decimal.RequireFromString(s.price), Set: true},
			Thumbnail:   "https://placehold.co/300x300?text=" + s.code,
			Code:        s.code,
			Stock:       dto.Number{Value: decimal.NewFromInt(s.stock), Set: true},
			Category:    s.category,
		})
	}
	return out
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/chat"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/metrics"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/realtime"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/ecommerce-api/internal/interfaces/http"
	"github.com/jhoicas/ecommerce-api/pkg/config"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
	"github.com/jhoicas/ecommerce-api/web"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	// Precios como números JSON (12.5), no strings ("12.5").
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	stores, closeStores, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenes")
	}
	defer closeStores()

	m := metrics.New()
	hub := realtime.NewHub(cfg.Realtime.SendBuffer, m, log.Component("realtime"))
	chatSvc := chat.NewService(stores.Messages, hub, log.Component("chat"))

	productUC := usecase.NewProductUseCase(stores.Products, hub)
	cartUC := usecase.NewCartUseCase(stores.Carts, stores.Products)
	userUC := usecase.NewUserUseCase(stores.Users)
	authUC := auth.NewAuthUseCase(stores.Users, stores.Carts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	engine := html.NewFileSystem(http.FS(web.Views()), ".html")
	engine.Reload(cfg.App.Env == "development")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        engine,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.MetricsMiddleware(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "E-commerce API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(web.Public())}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_connections": hub.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		CartUC:    cartUC,
		UserUC:    userUC,
		AuthUC:    authUC,
		Chat:      chatSvc,
		Hub:       hub,
		Metrics:   m,
		Log:       log.Component("http"),
		JWTSecret: cfg.JWT.Secret,
		Session: httpRouter.SessionConfig{
			CookieName: cfg.JWT.CookieName,
			TTL:        time.Duration(cfg.JWT.Expiration) * time.Minute,
			Secure:     cfg.App.Env == "production",
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Cerrar el hub primero: las conexiones WebSocket reciben el cierre y liberan sus handlers.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

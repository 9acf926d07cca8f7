package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/chat"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/metrics"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/realtime"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	CartUC    *usecase.CartUseCase
	UserUC    *usecase.UserUseCase
	AuthUC    *auth.AuthUseCase
	Chat      *chat.Service
	Hub       *realtime.Hub
	Metrics   *metrics.Metrics // opcional
	Policy    *Policy          // nil → DefaultPolicy
	Log       *logger.Logger
	JWTSecret string
	Session   SessionConfig
}

// Router registra las rutas de la API, las vistas y el canal WebSocket.
func Router(app *fiber.App, deps RouterDeps) {
	policy := deps.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.Session.CookieName)
	viewAuth := ViewAuthMiddleware(deps.JWTSecret, deps.Session.CookieName, "/login")
	optionalAuth := OptionalAuth(deps.JWTSecret, deps.Session.CookieName)

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Catálogo: lectura pública, escritura solo admin
	products := api.Group("/product")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", requireAuth, policy.Require(ActionProductCreate), productHandler.Create)
	products.Put("/:id", requireAuth, policy.Require(ActionProductUpdate), productHandler.Update)
	products.Delete("/:id", requireAuth, policy.Require(ActionProductDelete), productHandler.Delete)

	// Sesiones
	sessions := api.Group("/sessions")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session)
	sessions.Post("/register", authHandler.Register)
	sessions.Post("/login", authHandler.Login)
	sessions.Get("/current", requireAuth, authHandler.Current)
	sessions.Get("/logout", authHandler.Logout)

	// Carritos: lectura pública, escritura del dueño (o admin)
	carts := api.Group("/carts")
	cartHandler := NewCartHandler(deps.CartUC)
	cartWrite := policy.Require(ActionCartWrite)
	carts.Get("/:cid", cartHandler.GetByID)
	carts.Post("/:cid/product/:pid", requireAuth, cartWrite, cartHandler.AddProduct)
	carts.Put("/:cid/product/:pid", requireAuth, cartWrite, cartHandler.UpdateQuantity)
	carts.Delete("/:cid/product/:pid", requireAuth, cartWrite, cartHandler.RemoveProduct)
	carts.Delete("/:cid", requireAuth, cartWrite, cartHandler.Clear)

	// Vistas
	views := NewViewHandler(deps.ProductUC, deps.CartUC, deps.UserUC)
	app.Get("/", optionalAuth, views.Home)
	app.Get("/realtimeproducts", optionalAuth, views.RealTimeProducts)
	app.Get("/chat", viewAuth, policy.Require(ActionViewChat), views.Chat)
	app.Get("/products", viewAuth, policy.Require(ActionViewProducts), views.Products)
	app.Get("/carts/:cid", optionalAuth, views.Cart)
	app.Get("/register", views.Register)
	app.Get("/login", views.Login)
	app.Get("/profile", viewAuth, policy.Require(ActionViewProfile), views.Profile)

	// Tiempo real
	socket := NewSocketHandler(deps.Hub, deps.Chat, deps.Log)
	app.Use("/ws", socket.Upgrade)
	app.Get("/ws", socket.Handle())
}

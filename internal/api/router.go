package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopstack/portal/internal/api/handler"
	"github.com/shopstack/portal/internal/api/middleware"
	"github.com/shopstack/portal/internal/core/domain"
	"github.com/shopstack/portal/internal/core/service"
	"github.com/shopstack/portal/internal/infrastructure/config"
	mongostore "github.com/shopstack/portal/internal/infrastructure/db/mongo"
	redisstore "github.com/shopstack/portal/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Role gating happens here and only here: the services carry no authorization
// logic, so every route that must be admin- or user-only says so in its
// middleware chain.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	productRepo := mongostore.NewProductRepository(db)
	orderRepo := mongostore.NewOrderRepository(db)
	revoker := redisstore.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	catalogService := service.NewCatalogService(productRepo, log)
	orderService := service.NewOrderService(catalogService, orderRepo, log)

	authHandler := handler.NewAuthHandler(authService, revoker)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	authed := middleware.Auth(cfg.JWTSecret, revoker)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authed)

	// --- Catalog: mutation is admin-only, listing is open to both roles ---
	e.POST("/products", catalogHandler.AddProduct, authed, middleware.RBAC(domain.RoleAdmin))
	e.GET("/products", catalogHandler.ListProducts, authed, middleware.RBAC(domain.RoleAdmin, domain.RoleUser))

	// --- Orders: user-only ---
	e.POST("/orders", orderHandler.PlaceOrder, authed, middleware.RBAC(domain.RoleUser))
	e.GET("/orders", orderHandler.ListOrders, authed, middleware.RBAC(domain.RoleUser))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

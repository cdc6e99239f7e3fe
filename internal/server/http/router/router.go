package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/omarsel/flashmart/internal/config"
	"github.com/omarsel/flashmart/internal/server/http/handlers"
	"github.com/omarsel/flashmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. The admin
// group runs the session and role checks before any handler touches data.
func Setup(facade handlers.StoreFacade, health handlers.HealthChecker, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, cfg.AllowSignup)
	catalogHandler := handlers.NewCatalogHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, facade)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/products", catalogHandler.List)
	api.POST("/checkout", middleware.OptionalAuth(facade), checkoutHandler.Submit)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/anonymous", authHandler.Anonymous)
	auth.POST("/logout", authHandler.Logout)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade))
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/products", adminHandler.ListProducts)
	admin.POST("/products", adminHandler.AddProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/stats", adminHandler.OrderStats)
	admin.GET("/orders/export", adminHandler.ExportOrders)
	admin.DELETE("/orders/:id", adminHandler.DeleteOrder)

	return engine
}

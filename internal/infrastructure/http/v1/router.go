// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"hingmart/internal/domain/auth"
	"hingmart/internal/domain/company"
	"hingmart/internal/domain/invoice"
	"hingmart/internal/domain/orders"
	"hingmart/internal/infrastructure/document"
	"hingmart/internal/infrastructure/http/v1/handlers"
	"hingmart/internal/infrastructure/http/v1/middleware"
	"hingmart/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService    *auth.Service
	OrdersService  *orders.Service
	CompanyService *company.Service
	InvoiceService *invoice.Service

	Renderer document.Renderer

	// Storage is pinged by the readiness probe; nil means always ready.
	Storage handlers.Pinger

	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Storage, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)

			authProtected := authGroup.Group("")
			authProtected.Use(middleware.Auth(cfg.JWTValidator))
			authProtected.POST("/logout", authHandler.Logout)
			authProtected.GET("/me", authHandler.Me)
		}

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		ordersHandler := handlers.NewOrdersHandler(baseHandler, cfg.OrdersService)
		invoiceHandler := handlers.NewInvoiceHandler(baseHandler, cfg.InvoiceService, cfg.Renderer)
		ordersGroup := protected.Group("/orders")
		{
			ordersGroup.GET("", ordersHandler.List)
			ordersGroup.POST("", ordersHandler.Create)
			ordersGroup.PUT("", ordersHandler.ReplaceAll)
			ordersGroup.POST("/parse", ordersHandler.Parse)
			ordersGroup.GET("/stats", ordersHandler.Stats)
			ordersGroup.GET("/:id", ordersHandler.Get)
			ordersGroup.PUT("/:id", ordersHandler.Update)
			ordersGroup.DELETE("/:id", ordersHandler.Delete)
			ordersGroup.PATCH("/:id/status/:key", ordersHandler.ToggleStatus)
			ordersGroup.GET("/:id/invoice", invoiceHandler.Summary)
			ordersGroup.GET("/:id/invoice/document", invoiceHandler.Document)
		}

		companyHandler := handlers.NewCompanyHandler(baseHandler, cfg.CompanyService)
		companyGroup := protected.Group("/company")
		{
			companyGroup.GET("", companyHandler.Get)
			companyGroup.PUT("", companyHandler.Update)
		}
	}

	return router
}

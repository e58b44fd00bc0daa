package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lumen/internal/api/handlers"
	"lumen/internal/api/middleware"
	"lumen/internal/catalog"
	"lumen/internal/config"
	"lumen/internal/database"
	"lumen/internal/events"
	"lumen/internal/logger"
	"lumen/internal/reconcile"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

// New wires the HTTP surface. eventsPub announces imported products on the
// product-events topic (the worker consumes it); syncPub carries search-sync
// notifications for the external indexer.
func New(cfg *config.Config, log *logger.Logger, db *database.Database, eventsPub, syncPub *events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	cat := catalog.New(db.DB)
	runner := reconcile.NewRunner(cat, syncPub, log)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(db.DB, log)
	attributeHandler := handlers.NewAttributeHandler(cat, log)
	reconcileHandler := handlers.NewReconcileHandler(runner, log)
	syncHandler := handlers.NewSyncHandler(cfg, cat, eventsPub, log)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Products
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		// Attribute catalog
		attributes := v1.Group("/attributes")
		{
			attributes.GET("", attributeHandler.List)
			attributes.GET("/:id", attributeHandler.Get)
			attributes.POST("", attributeHandler.Create)
			attributes.POST("/:id/values", attributeHandler.AddValue)
		}

		// Reconciliation
		v1.POST("/reconcile/run", reconcileHandler.Run)
		v1.POST("/options/:id/safe-delete", reconcileHandler.SafeDeleteOption)

		// Connectors
		v1.POST("/connectors/woocommerce/sync", syncHandler.WooCommerce)
	}

	return &Server{
		config: cfg,
		logger: log,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

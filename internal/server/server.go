package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
)

// Server wraps the gin router and the underlying HTTP server.
type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	handlers   *handlers.Handlers
}

// New builds the router with all routes registered.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/metrics", metrics.Handler())

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/cart/:id", s.handlers.GetCart)
		v1.POST("/cart/:id/items", s.handlers.AddToCart)
		v1.DELETE("/cart/:id/items/:productId", s.handlers.RemoveFromCart)
		v1.DELETE("/cart/:id", s.handlers.ClearCart)

		v1.POST("/orders/checkout", s.handlers.Checkout)
		v1.GET("/orders/:id", s.handlers.GetOrder)

		v1.GET("/products", s.handlers.ListProducts)
		v1.GET("/products/:id", s.handlers.GetProduct)

		v1.GET("/weather", s.handlers.GetWeather)
		v1.POST("/contact", s.handlers.SubmitContact)
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

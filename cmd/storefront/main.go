package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/clients"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/server"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New("storefront-service")
	defer logger.Sync()

	logger.Info("starting storefront-service", zap.Int("port", cfg.Server.Port))

	db, err := repository.Open(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name))

	cartRepo := repository.NewPostgresCartRepository(db, logger.Named("cart-repo"))
	productRepo := repository.NewPostgresProductRepository(db, logger.Named("product-repo"))
	orderRepo := repository.NewPostgresOrderRepository(db, logger.Named("order-repo"))

	redisClient := repository.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	cartCache := repository.NewRedisCartCache(redisClient, cfg.Redis.TTL, logger.Named("cart-cache"))

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger.Named("events"))
	defer eventPublisher.Close()

	weatherClient := clients.NewHTTPWeatherClient(cfg.WeatherService, logger.Named("weather-client"))
	mailer := clients.NewSendGridMailer(cfg.Email, logger.Named("mailer"))

	cartService := service.NewCartService(cartRepo, productRepo, cartCache, cfg, logger.Named("cart-service"))
	checkoutService := service.NewCheckoutService(orderRepo, cartService, eventPublisher, cfg, logger.Named("checkout-service"))
	productService := service.NewProductService(productRepo, logger.Named("product-service"))
	weatherService := service.NewWeatherService(weatherClient, logger.Named("weather-service"))
	contactService := service.NewContactService(mailer, cfg, logger.Named("contact-service"))

	h := handlers.NewHandlers(
		cartService,
		checkoutService,
		productService,
		weatherService,
		contactService,
		cfg,
		logger.Named("handlers"),
	)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("cart_caching", cfg.Features.EnableCartCaching),
			zap.Bool("order_events", cfg.Features.EnableOrderEvents),
			zap.Bool("clear_cart_on_checkout", cfg.Features.ClearCartOnCheckout))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ishiply/storefront/internal/cart"
	"github.com/ishiply/storefront/internal/catalog"
	"github.com/ishiply/storefront/internal/config"
	"github.com/ishiply/storefront/internal/db"
	"github.com/ishiply/storefront/internal/delivery"
	"github.com/ishiply/storefront/internal/events"
	httpserver "github.com/ishiply/storefront/internal/http"
	"github.com/ishiply/storefront/internal/logging"
	"github.com/ishiply/storefront/internal/order"
	"github.com/ishiply/storefront/internal/session"
	"github.com/ishiply/storefront/internal/users"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// Postgres
	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}
	database, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("parse redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// RabbitMQ
	rabbitConn, err := events.Dial(cfg.RabbitURL)
	if err != nil {
		logger.Fatal("dial rabbitmq", zap.Error(err))
	}
	defer rabbitConn.Close()

	publisher, err := events.NewPublisher(rabbitConn)
	if err != nil {
		logger.Fatal("init publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Wiring
	catalogRepo := catalog.NewRepository(database)
	userRepo := users.NewRepository(database)
	orderRepo := order.NewRepository(database)

	sessions := session.NewRedisManager(redisClient, cfg.SessionTTL)
	carts := cart.NewRedisStore(redisClient, cfg.CartTTL)
	pricer := cart.NewPricer(catalogRepo)
	engine := order.NewEngine(orderRepo, carts, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := delivery.NewSimulator(orderRepo, publisher, cfg.DroneSpeedKMH, time.Second, logger)
	if err := delivery.StartOrderCreatedConsumer(ctx, rabbitConn, sim, logger); err != nil {
		logger.Fatal("start delivery consumer", zap.Error(err))
	}

	router := httpserver.NewRouter(httpserver.Handlers{
		Auth:     httpserver.NewAuthHandler(userRepo, sessions, carts),
		Cart:     httpserver.NewCartHandler(carts, pricer),
		Checkout: httpserver.NewCheckoutHandler(engine, userRepo, catalogRepo, publisher, cfg.DefaultShopID, logger),
		Orders:   httpserver.NewOrderHandler(orderRepo),
		Catalog:  httpserver.NewCatalogHandler(catalogRepo),
		Sessions: sessions,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	cancel()
}

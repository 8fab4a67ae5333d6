package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/auth"
	"github.com/alumbridge/scholarship-service/internal/config"
	"github.com/alumbridge/scholarship-service/internal/events"
	"github.com/alumbridge/scholarship-service/internal/handlers"
	"github.com/alumbridge/scholarship-service/internal/kvstore"
	redisrepo "github.com/alumbridge/scholarship-service/internal/repositories/redis"
	"github.com/alumbridge/scholarship-service/internal/reports"
	"github.com/alumbridge/scholarship-service/internal/services"
	"github.com/alumbridge/scholarship-service/internal/utils"
	"github.com/alumbridge/scholarship-service/internal/validator"
	"github.com/alumbridge/scholarship-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	store := kvstore.NewRedisStore(redisClient)
	repoManager := redisrepo.NewRepositoryManager(store)

	gateway := auth.NewJWTGateway(store, auth.JWTGatewayConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		Expiry: cfg.JWTExpiry,
	}, slogLogger)

	var casdoorVerifier auth.TokenVerifier
	if cfg.Casdoor.Endpoint != "" {
		casdoorVerifier = auth.NewCasdoorVerifier(cfg.Casdoor)
	}

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventTopic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to create Kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewChannelPublisher(cfg.EventTopic, slogLogger)
	}

	v := validator.New()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repoManager,
		Gateway:   gateway,
		Locker:    redislock.New(redisClient),
		Publisher: publisher,
		Logger:    slogLogger,
		Validator: v,
	})

	exporter := reports.NewLedgerExporter(repoManager)
	authMiddleware := handlers.NewAuthMiddleware(gateway, casdoorVerifier, repoManager.Profile())
	handlerManager := handlers.NewHandlerManager(serviceManager, exporter, logger, authMiddleware)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Failed to close Redis connection: %v", err)
	}

	logger.Info("Server exited")
}

// StoreGate API
//
// Multi-tenant storefront backend. Every operation runs through the guarded
// pipeline: authentication, authorization, input validation, transactional
// execution, and envelope normalization.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"go.storegate.dev/internal/common/health"
	"go.storegate.dev/internal/common/lifecycle"
	"go.storegate.dev/internal/common/mongo"
	"go.storegate.dev/internal/config"
	"go.storegate.dev/internal/platform/api"
	"go.storegate.dev/internal/platform/auth"
	"go.storegate.dev/internal/platform/authz"
	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/messages"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/principal"
	"go.storegate.dev/internal/platform/staff"
	"go.storegate.dev/internal/platform/staff/operations"
	"go.storegate.dev/internal/platform/txn"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cfg, err := config.LoadWithFile()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.DevMode)

	slog.Info("Starting StoreGate API",
		"version", version,
		"build_time", buildTime)

	if cfg.Auth.JWT.Secret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx := context.Background()

	// Infrastructure
	mongoClient, err := mongo.Connect(ctx, cfg.MongoDB)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(context.Background())

	if err := mongo.NewIndexInitializer(mongoClient).Initialize(ctx); err != nil {
		slog.Error("Failed to initialize indexes", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to Redis", "addr", cfg.Redis.Addr)

	// Message catalog and authorization tables
	catalog, err := messages.Load()
	if err != nil {
		slog.Error("Failed to load message catalog", "error", err)
		os.Exit(1)
	}

	registry := authz.NewRegistry(nil)
	operations.RegisterActions(registry)
	slog.Info("Permission registry populated", "actions", registry.ActionCount())

	// Pipeline
	pl := pipeline.New(
		authz.NewEngine(registry, authz.DefaultRoleGrants(), nil),
		txn.NewCoordinator(txn.NewMongoProvider(mongoClient.Mongo()), nil),
		envelope.NewNormalizer(catalog),
		envelope.NewTranslator(catalog, cfg.DevMode, nil),
		cfg.I18N.DefaultLanguage,
		nil,
	)

	// Auth services
	tokens := auth.NewTokenService(auth.TokenServiceConfig{
		Secret: cfg.Auth.JWT.Secret,
		Issuer: cfg.Auth.JWT.Issuer,
		Expiry: cfg.Auth.JWT.Expiry,
	})
	revocations := auth.NewRevocationStore(redisClient)

	// Repositories and handlers
	principalRepo := principal.NewRepository(mongoClient.Database())
	staffRepo := staff.NewRepository(mongoClient.Database())

	checker := health.NewChecker()
	checker.AddReadinessCheck(health.MongoDBCheck(func() error {
		return mongoClient.Ping(context.Background())
	}))
	checker.AddReadinessCheck(health.RedisCheck(func() error {
		return redisClient.Ping(context.Background()).Err()
	}))

	router := api.NewRouter(api.RouterConfig{
		Auth:        api.NewAuthMiddleware(tokens, revocations, principalRepo),
		AuthHandler: api.NewAuthHandler(tokens, revocations),
		Staff:       api.NewStaffHandler(pl, staffRepo),
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Health:      checker,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("StoreGate API ready", "port", cfg.HTTP.Port)

	if err := lifecycle.Run(ctx, lifecycle.NewHTTPService("storegate-api", httpServer)); err != nil {
		slog.Error("Service error", "error", err)
		os.Exit(1)
	}

	slog.Info("StoreGate API stopped")
}

// setupLogging configures the slog default logger. Dev mode uses text at
// debug level; production uses JSON.
func setupLogging(devMode bool) {
	var handler slog.Handler
	if devMode {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

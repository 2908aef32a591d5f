package main

import (
	"context"   // context package is needed for Redis operations and shutdown
	"errors"    // Error inspection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Durations

	"control_gastos/internal/api"        // Custom package for API handlers
	"control_gastos/internal/config"     // Custom package for configuration
	"control_gastos/internal/db"         // Database connection
	"control_gastos/internal/reconciler" // Capital reconciliation
	"control_gastos/internal/service"    // Use cases
	"control_gastos/internal/store"      // Ledger store
	"control_gastos/internal/utils"      // Tokens and cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database and make sure the schema exists
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Redis is optional; without it reads go straight to the database
	var cache utils.Cache = utils.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cache = utils.NewRedisCache(redisClient)
	} else {
		logrus.Warn("REDIS_ADDR not set, ledger reads are not cached")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ledgerStore := store.New(conn)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	router, err := api.NewRouter(api.RouterConfig{
		Ledger:         service.NewLedgerService(ledgerStore, reconciler.New(ledgerStore, cfg.ReconcileTries), cache, cfg.CacheTTL),
		Auth:           service.NewAuthService(ledgerStore, tokens, 0),
		Tokens:         tokens,
		FrontendOrigin: cfg.FrontendOrigin,
		RequireAuth:    cfg.RequireAuth,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":         cfg.AppPort,
			"db_driver":    cfg.DBDriver,
			"require_auth": cfg.RequireAuth,
		}).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	logrus.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
}

// setupLogger configures the global logrus logger
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

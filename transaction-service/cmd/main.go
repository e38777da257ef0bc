package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/salesdesk/txbrowser/shared/logging"
	"github.com/salesdesk/txbrowser/shared/middleware"
	redisClient "github.com/salesdesk/txbrowser/shared/redis"
	"github.com/salesdesk/txbrowser/transaction-service/internal/config"
	"github.com/salesdesk/txbrowser/transaction-service/internal/filter"
	"github.com/salesdesk/txbrowser/transaction-service/internal/handler"
	txqry "github.com/salesdesk/txbrowser/transaction-service/internal/query"
	"github.com/salesdesk/txbrowser/transaction-service/internal/repository"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	store, cleanup, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer cleanup()

	builder := filter.NewBuilder(filter.Options{MaxLimit: cfg.MaxPageLimit})
	querySvc := txqry.NewTransactionQueryService(store, builder)
	transactionHandler := handler.NewTransactionHandler(querySvc, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.StoreDriver})
	})

	// Transaction routes
	tx := router.Group("/transactions")
	{
		tx.GET("", transactionHandler.ListTransactions)
		tx.GET("/customer/:customerId", transactionHandler.ListCustomerTransactions)
		tx.GET("/:id", transactionHandler.GetTransaction)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Transaction service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown: %v", err)
	}
	logger.Info("Transaction service stopped")
}

// openStore builds the configured TransactionStore. The returned cleanup
// releases any connections it opened.
func openStore(cfg *config.Config, logger *logrus.Logger) (txqry.TransactionStore, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		if cfg.SeedFile == "" {
			logger.Warn("No SEED_FILE set, serving an empty in-memory store")
			store, err := repository.NewMemoryStore(nil)
			return store, func() {}, err
		}
		store, err := repository.LoadMemoryStore(cfg.SeedFile)
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("seed_file", cfg.SeedFile).Info("Loaded in-memory store")
		return store, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("Database migrations applied")
	}

	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, transaction cache disabled")
		return repository.NewTransactionReadRepository(db, nil, cfg.CacheTTL, logger), func() { _ = db.Close() }, nil
	}

	redis, err := redisClient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = redis.Close()
		_ = db.Close()
	}
	return repository.NewTransactionReadRepository(db, redis.Client, cfg.CacheTTL, logger), cleanup, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/salesdesk/txbrowser/api-gateway/internal/config"
	"github.com/salesdesk/txbrowser/api-gateway/internal/proxy"
	"github.com/salesdesk/txbrowser/shared/logging"
	"github.com/salesdesk/txbrowser/shared/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(logger), cors.New(corsConfig(cfg)))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "api-gateway"})
	})

	guards := []gin.HandlerFunc{
		middleware.RateLimitMiddleware(middleware.NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)),
	}
	if cfg.JWTSecret != "" {
		guards = append(guards, middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	} else {
		logger.Warn("JWT_SECRET not set, transaction routes are public")
	}

	// Transaction routes
	transactions := proxy.New(cfg.TransactionServiceURL, "/api", logger)
	api := router.Group("/api/transactions", guards...)
	{
		api.GET("", transactions.Handler())
		api.GET("/*path", transactions.Handler())
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("API Gateway starting on port %s, proxying to %s", cfg.Port, cfg.TransactionServiceURL)
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
	logger.Info("API Gateway stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader}
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	c.MaxAge = time.Hour
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

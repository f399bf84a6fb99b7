package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dipika-maharjan/tripwise-backend/internal/app"
	"github.com/dipika-maharjan/tripwise-backend/internal/config"
	"github.com/dipika-maharjan/tripwise-backend/internal/db"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/logger"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	if err := logger.Init(logger.Options{
		Level:    cfg.LogLevel,
		JSON:     cfg.IsProduction,
		FilePath: cfg.LogFilePath,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, int32(cfg.DBMaxConns))
	if err != nil {
		logger.L().Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	// Assemble modules
	container, err := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
		TaxPercent:   cfg.TaxPercent,
		ServiceFee:   cfg.ServiceFee,
		LockBackend:  cfg.LockBackend,
		RedisAddr:    cfg.RedisAddr,
		LockTTL:      cfg.LockTTL,
		StoragePath:  cfg.StoragePath,
	})
	if err != nil {
		logger.L().Fatal("failed to init application", zap.Error(err))
	}
	defer container.Close()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.L().Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.L().Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Warn("server forced to shutdown", zap.Error(err))
	}

	logger.L().Info("server exited gracefully")
}

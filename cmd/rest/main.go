package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"notehub-be/internal/bootstrap"
	"notehub-be/internal/config"
	"notehub-be/internal/pkg/logger"
	"notehub-be/internal/server"
	"notehub-be/internal/tracer"
	"notehub-be/pkg/database"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		// A missing AI key only disables recommendations.
		if !errors.Is(err, config.ErrMissingAIKey) {
			log.Fatalf("Invalid configuration: %v", err)
		}
		log.Printf("Warning: %v, recommendations will fail until it is set", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger)
	defer container.Close()

	// 5. Start Background Services
	if err := container.ActivityRelayService.Consume(ctx); err != nil {
		sysLogger.Error("MAIN", "Activity relay failed to start", map[string]interface{}{"error": err})
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sysLogger.Error("MAIN", "Server shutdown failed", map[string]interface{}{"error": err})
		}
	}()

	if err := srv.Run(); err != nil {
		sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err})
	}
}

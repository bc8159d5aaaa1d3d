package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claimsketch-com/claimsketchgo/internal/config"
	"github.com/claimsketch-com/claimsketchgo/internal/database"
	"github.com/claimsketch-com/claimsketchgo/internal/handlers"
	"github.com/claimsketch-com/claimsketchgo/internal/logger"
	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/services/claims"
	"github.com/claimsketch-com/claimsketchgo/internal/store"
	"github.com/claimsketch-com/claimsketchgo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database, zlog)
	if err != nil {
		zlog.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in the shutdown handler below

	// 3. Auto-migrate schema
	zlog.Info("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Inspection{},
		&models.Room{},
		&models.Opening{},
		&models.Adjacency{},
		&models.Annotation{},
	)
	if err != nil {
		zlog.Warnf("⚠️ Migration warning: %v", err)
	} else {
		zlog.Info("✅ Schema synchronized successfully")
	}

	st := store.New(db, zlog)

	// 4. Start the sketch hub for live editing sessions
	hub := websocket.NewHub(zlog)
	go hub.Run()

	// 5. Set up HTTP router
	router := handlers.NewRouter(st, hub, cfg, zlog)

	// 6. Start the claims export bridge (background)
	var exporter *claims.ExportService
	if cfg.Claims.URL != "" {
		exporter = claims.NewExportService(st, cfg, zlog)
		exporter.Start()
		router.SetClaimsService(exporter)
	} else {
		zlog.Info("Claims export disabled: CLAIMS_URL not configured")
	}

	// 7. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		zlog.Infof("🚀 Server starting on port %s [%s]", cfg.Server.Port, cfg.NodeEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	zlog.Infof("⚠️ Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Errorf("HTTP server shutdown error: %v", err)
	}

	if exporter != nil {
		exporter.Stop()
	}

	zlog.Info("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		zlog.Errorf("Database close error: %v", err)
	}

	zlog.Info("✅ Shutdown complete")
}

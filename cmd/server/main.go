package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"avcoe-site/internal/api/routes"
	"avcoe-site/internal/background"
	"avcoe-site/internal/config"
	"avcoe-site/internal/logger"
	"avcoe-site/internal/models"
	"avcoe-site/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	configPath := os.Getenv("AVCOE_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	if err := models.InitDB(cfg); err != nil {
		lg.Fatal("failed to initialize database", zap.Error(err))
	}

	// Seed admin allow-list and the settings singleton
	authService := services.NewAuthService(cfg)
	if err := authService.SeedAdmins(); err != nil {
		lg.Fatal("failed to seed admin users", zap.Error(err))
	}

	settingsService := services.NewSettingsService()
	if err := settingsService.EnsureDefaults(); err != nil {
		lg.Fatal("failed to seed settings", zap.Error(err))
	}

	// Background sweep of expired sessions and stale throttle records
	cleaner := background.NewCleaner(authService, lg, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleaner.Start(ctx)

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	r.LoadHTMLGlob(filepath.Join(cfg.Paths.Frontend, "templates", "*.html"))

	// Setup routes
	routes.SetupRoutes(r, cfg)

	// Public frontend
	r.Static("/static", filepath.Join(cfg.Paths.Frontend, "static"))
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.Paths.Frontend, "index.html"))
	})

	// Run server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	lg.Info("starting AVCOE site server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		lg.Fatal("failed to start server", zap.Error(err))
	}
}

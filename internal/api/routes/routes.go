package routes

import (
	"avcoe-site/internal/api/handlers"
	"avcoe-site/internal/api/middleware"
	"avcoe-site/internal/config"
	"avcoe-site/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	mediaHandler := handlers.NewMediaHandler(cfg)
	settingsHandler := handlers.NewSettingsHandler()
	chatHandler := handlers.NewChatHandler(cfg)

	// Middleware
	r.Use(middleware.CORSMiddleware())

	// Public API
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "AVCOE site API is running",
			})
		})

		api.GET("/media", mediaHandler.List)
		api.GET("/settings", settingsHandler.Get)
		api.POST("/query", chatHandler.Query)
	}

	// Uploaded files (plural and singular kind forms accepted)
	r.GET("/uploads/:kind/:filename", mediaHandler.ServeUpload)

	// Admin login pages (public)
	r.GET("/admin/login", authHandler.ShowLogin)
	r.POST("/admin/login", authHandler.Login)
	r.GET("/admin/logout", authHandler.Logout)

	// Admin pages and API (session required)
	adminPages := r.Group("/admin")
	adminPages.Use(middleware.SessionMiddleware(authService, cfg))
	{
		adminPages.GET("", authHandler.AdminPanel)
	}

	adminAPI := r.Group("/api/admin")
	adminAPI.Use(middleware.SessionMiddleware(authService, cfg))
	{
		adminAPI.POST("/media/upload", mediaHandler.Upload)
		adminAPI.POST("/media/delete", mediaHandler.Delete)
		adminAPI.GET("/settings", settingsHandler.Get)
		adminAPI.POST("/settings", settingsHandler.Update)
	}
}

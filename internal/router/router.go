// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mcaportal/mca-backend/internal/config"
	"github.com/mcaportal/mca-backend/internal/handlers"
	"github.com/mcaportal/mca-backend/internal/middleware"
	"github.com/mcaportal/mca-backend/internal/services"
	"github.com/mcaportal/mca-backend/internal/store"
	"github.com/mcaportal/mca-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Data access layer
	st := store.New(db)

	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	lenderService := services.NewLenderService(st)
	appService := services.NewApplicationService(st, lenderService, notificationService)
	authService := services.NewAuthService(st, st, cfg)
	adminService := services.NewAdminService(st, st)
	storageService, err := services.NewStorageService(cfg, st)
	if err != nil {
		logrus.WithError(err).Warn("Document storage unavailable, uploads disabled")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	appHandler := handlers.NewApplicationHandler(appService, authService)
	lenderHandler := handlers.NewLenderHandler(lenderService)
	documentHandler := handlers.NewDocumentHandler(storageService, appService)
	adminHandler := handlers.NewAdminHandler(adminService, appService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/admin/login", authHandler.AdminLogin)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Lender directory (public; auth picked up when present so audit
		// entries carry the caller)
		lenders := v1.Group("/lenders")
		lenders.Use(middleware.OptionalAuth())
		{
			lenders.GET("", lenderHandler.List)
			lenders.GET("/:id", lenderHandler.Get)
		}

		// Application routes (clients; admins can read and resubmit too)
		applications := v1.Group("/applications")
		applications.Use(middleware.AuthRequired())
		{
			applications.POST("", appHandler.Submit)
			applications.GET("", appHandler.ListMine)
			applications.GET("/:id", appHandler.Get)
			applications.POST("/:id/resubmit", appHandler.Resubmit)
			applications.POST("/:id/documents/:type", middleware.UploadRateLimit(), documentHandler.Upload)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/applications", adminHandler.ListApplications)
			admin.PUT("/applications/:id/submissions/:lenderId", adminHandler.UpdateSubmission)

			admin.GET("/clients", adminHandler.ListClients)
			admin.POST("/clients", adminHandler.CreateClient)
			admin.PUT("/clients/:id", adminHandler.UpdateClient)
			admin.DELETE("/clients/:id", adminHandler.DeleteClient)

			admin.POST("/lenders", lenderHandler.Create)
			admin.PUT("/lenders/:id", lenderHandler.Update)
			admin.DELETE("/lenders/:id", lenderHandler.Delete)
		}
	}

	return r
}

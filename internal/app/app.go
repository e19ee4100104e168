package app

import (
	"fmt"
	"strings"

	"snapfeed/internal/config"
	"snapfeed/internal/handlers"
	"snapfeed/internal/imaging"
	"snapfeed/internal/logger"
	"snapfeed/internal/middleware"
	"snapfeed/internal/models"
	"snapfeed/internal/repositories"
	"snapfeed/internal/routes"
	"snapfeed/internal/services"
	"snapfeed/internal/storage"
	"snapfeed/internal/validator"
	"snapfeed/pkg/apperrors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(&models.Post{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the fully wired gin engine. Split from Run so tests
// can stand the whole HTTP surface up against their own database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.NewObjectStore(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// Dependency wiring, bottom-up
	postRepo := repositories.NewPostRepository()
	thumbnails := imaging.NewProcessor(cfg.Upload.ThumbnailWidth, cfg.Upload.ImageQuality)
	postService := services.NewPostService(postRepo, store, thumbnails)

	v := validator.New(validator.UploadRules{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	})
	postHandler := handlers.NewPostHandler(handlers.NewBaseHandler(v), postService)

	ginRouter := initializeGinRouter(cfg, gormDB)

	// When files live on local disk the API serves them itself, so the
	// URLs the pipeline returns resolve in development. Only route-style
	// base URLs can be mounted; anything absolute is some external server.
	if local, ok := store.(*storage.LocalStore); ok && strings.HasPrefix(local.BaseURL(), "/") {
		ginRouter.Static(local.BaseURL(), local.BasePath())
	}

	routes.RegisterRoutes(ginRouter, postHandler)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Panics must still answer with the uniform failure envelope
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		apperrors.HandleError(c, apperrors.ErrInternal)
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.DBMiddleware(gormDB))

	// Browser SPA talks to this API directly
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	r.Use(cors.New(corsConfig))

	return r
}

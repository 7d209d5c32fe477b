package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"craftmarket/docs"
	"craftmarket/internal/auth"
	"craftmarket/internal/cache"
	"craftmarket/internal/config"
	"craftmarket/internal/db"
	"craftmarket/internal/handler"
	"craftmarket/internal/model"
	"craftmarket/internal/repository"
	"craftmarket/internal/router"
	"craftmarket/internal/service"
	"craftmarket/internal/storage"
)

// @title Craftmarket API
// @version 1.0
// @description Handmade-goods marketplace API with catalog, orders and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheOpTimeout)
	cacheClient.StartHealthCheck(context.Background(), cfg.CachePingInterval)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)
	guard := auth.Middleware(jwtService, sessionStore, cfg.AuthAllowDegraded)

	// Initialize file storage
	var files storage.FileStore
	if cfg.S3Bucket != "" {
		files, err = storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("s3 storage init: %v", err)
		}
	} else {
		files, err = storage.NewDiskStore(cfg.UploadsDir)
		if err != nil {
			log.Fatalf("disk storage init: %v", err)
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, files)
	productHandler := handler.NewProductHandler(productService, files)
	orderHandler := handler.NewOrderHandler(orderService)

	// Register routes
	router.Register(e, cfg, guard, authHandler, productHandler, orderHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

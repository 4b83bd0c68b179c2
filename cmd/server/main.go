package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/config"
	"github.com/landhub/backoffice/internal/database"
	"github.com/landhub/backoffice/internal/handler"
	"github.com/landhub/backoffice/internal/middleware"
	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/redis"
	"github.com/landhub/backoffice/internal/repository"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()
	log.Println("database connected")

	if err := redis.Init(&cfg.Redis); err != nil {
		log.Fatalf("init redis: %v", err)
	}
	defer redis.Close()
	log.Println("redis connected")

	if err := database.AutoMigrate(
		&model.Staff{},
		&model.Permission{},
		&model.CatalogItem{},
		&model.Property{},
	); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	db := database.GetDB()
	permissionRepo := repository.NewPermissionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)

	permissionService := service.NewPermissionService(permissionRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	authService := service.NewAuthService(staffRepo)
	propertyService := service.NewPropertyService(propertyRepo, catalogRepo)
	tokenService := service.NewTokenService(&service.TokenServiceConfig{
		Secret:        cfg.JWT.Secret,
		Issuer:        cfg.JWT.Issuer,
		AccessExpiry:  cfg.JWT.AccessExpiry,
		RefreshExpiry: cfg.JWT.RefreshExpiry,
	})
	sessionService := service.NewSessionService(redis.GetClient(), nil)

	authHandler := handler.NewAuthHandler(authService, tokenService, sessionService, cfg.JWT.RefreshExpiry)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	propertyHandler := handler.NewPropertyHandler(propertyService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if err := database.Ping(); err != nil {
			dbStatus = "error"
		}

		redisStatus := "ok"
		redisClient := redis.GetClient()
		if redisClient == nil {
			redisStatus = "error"
		} else if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error"
		}

		response.Success(c, gin.H{
			"status":   "ok",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"redis":    redisStatus,
		})
	})

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		authRequired := api.Group("")
		authRequired.Use(middleware.JWTAuth(tokenService))
		{
			authRequired.POST("/auth/logout", authHandler.Logout)
			authRequired.GET("/auth/me", authHandler.Me)
			authRequired.POST("/auth/password", authHandler.ChangePassword)

			// Config module: permission matrix and catalogs. Managers and
			// admins only; the engines trust this gate.
			cfgGroup := authRequired.Group("/config")
			cfgGroup.Use(middleware.RequirePosition(model.PositionManager, model.PositionAdmin))
			{
				cfgGroup.GET("/permissions", permissionHandler.GetAll)
				cfgGroup.GET("/permissions/:position", permissionHandler.GetByPosition)
				cfgGroup.PUT("/permissions", permissionHandler.Update)

				cfgGroup.GET("/catalogs/:type", catalogHandler.GetByType)
				cfgGroup.POST("/catalogs", catalogHandler.Create)
				cfgGroup.PUT("/catalogs/:id", catalogHandler.Update)
				cfgGroup.DELETE("/catalogs/:id", catalogHandler.Delete)
				// Reorder keeps its own static prefix: a second wildcard name
				// under /catalogs/:id would not register.
				cfgGroup.PUT("/catalogs/reorder/:type", catalogHandler.Reorder)
			}

			// Property listings, gated by the matrix itself.
			properties := authRequired.Group("/properties")
			{
				properties.GET("", middleware.RequirePermission(permissionService, model.ResourceProperties, model.ActionView), propertyHandler.List)
				properties.GET("/:id", middleware.RequirePermission(permissionService, model.ResourceProperties, model.ActionView), propertyHandler.Get)
				properties.POST("", middleware.RequirePermission(permissionService, model.ResourceProperties, model.ActionAdd), propertyHandler.Create)
				properties.PUT("/:id", middleware.RequirePermission(permissionService, model.ResourceProperties, model.ActionEdit), propertyHandler.Update)
				properties.DELETE("/:id", middleware.RequirePermission(permissionService, model.ResourceProperties, model.ActionDelete), propertyHandler.Delete)
			}
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	database.Close()
	redis.Close()

	log.Println("server stopped")
}

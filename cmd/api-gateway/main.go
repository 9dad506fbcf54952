package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/opencampus/registrar-api/api/swagger"
	"github.com/opencampus/registrar-api/internal/handler"
	"github.com/opencampus/registrar-api/internal/middleware"
	"github.com/opencampus/registrar-api/internal/repository"
	"github.com/opencampus/registrar-api/internal/service"
	"github.com/opencampus/registrar-api/pkg/cache"
	"github.com/opencampus/registrar-api/pkg/config"
	"github.com/opencampus/registrar-api/pkg/database"
	"github.com/opencampus/registrar-api/pkg/logger"
	corsmiddleware "github.com/opencampus/registrar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/opencampus/registrar-api/pkg/middleware/requestid"
)

// @title Course Registry API
// @version 1.0.0
// @description Course catalogue, enrollment statistics and registration relationships
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Courses.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, course cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Courses.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()

	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	programRepo := repository.NewProgramRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	userRepo := repository.NewUserRepository(db)

	courseSvc := service.NewCourseService(courseRepo, enrollmentRepo, programRepo, sessionRepo, cacheSvc, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	courseHandler := handler.NewCourseHandler(courseSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	courses := api.Group("/courses")
	courses.Use(middleware.JWT(authSvc))
	courses.GET("", courseHandler.List)
	courses.POST("", courseHandler.Create)
	courses.GET("/:id", courseHandler.Get)
	courses.PATCH("/:id", courseHandler.Update)
	courses.DELETE("/:id", courseHandler.Delete)
	courses.GET("/:id/programs", courseHandler.Programs)
	courses.GET("/:id/sessions", courseHandler.Sessions)
	courses.GET("/:id/students", courseHandler.Students)
	courses.GET("/:id/students/export", courseHandler.ExportStudents)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lingochat/memories-backend/internal/config"
	"github.com/lingochat/memories-backend/internal/handler"
	"github.com/lingochat/memories-backend/internal/middleware"
	"github.com/lingochat/memories-backend/internal/migration"
	"github.com/lingochat/memories-backend/internal/repository"
	"github.com/lingochat/memories-backend/internal/routes"
	"github.com/lingochat/memories-backend/internal/service"
	pkgcache "github.com/lingochat/memories-backend/pkg/cache"
	"github.com/lingochat/memories-backend/pkg/database"
	"github.com/lingochat/memories-backend/pkg/i18n"
	"github.com/lingochat/memories-backend/pkg/jwt"
	pkglogger "github.com/lingochat/memories-backend/pkg/logger"
	pkgredis "github.com/lingochat/memories-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// @title           Memories API
// @version         1.0
// @description     Memories feed for the language exchange chat app
//
// @host            localhost:5001
// @BasePath        /api
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name jwt

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv(".")

	// 로거 초기화
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	// DB 연결
	db, err := database.Open(databaseOptions(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to %s", cfg.Database.Driver)
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if cfg.IsDevelopment() {
		if err := migration.Seed(db); err != nil {
			pkglogger.Warn("Seed warning: %v", err)
		}
	}

	// Redis 연결 (선택)
	redisClient := connectRedis(cfg)
	cacheService := pkgcache.WithUserTTL(pkgcache.NewService(redisClient), time.Duration(cfg.Cache.DisplayTTL)*time.Second)

	// Services
	identity := service.NewCachedIdentityProvider(
		service.NewIdentityProvider(repository.NewUserRepository(db)),
		cacheService,
	)
	memoryService := service.NewMemoryService(repository.NewMemoryRepository(db), identity, service.Options{
		PageSize:          cfg.Feed.PageSize,
		ProfileLimit:      cfg.Feed.ProfileLimit,
		EnforceVisibility: cfg.ShouldEnforceVisibility(),
	})

	// Gin 라우터 생성
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS 설정
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.SplitOrigins(),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:           12 * time.Hour,
	}))

	// i18n Bundle
	i18nBundle := i18n.NewDefaultBundle()
	if cfg.I18n.Dir != "" {
		if err := i18nBundle.LoadDir(cfg.I18n.Dir); err != nil {
			pkglogger.Warn("i18n overrides not loaded: %v", err)
		}
	}

	// Middleware
	router.Use(middleware.I18n(i18nBundle))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	routes.Setup(router,
		handler.NewMemoryHandler(memoryService, identity, cfg.Feed.PageSize),
		handler.NewHealthHandler(db, cacheService),
		routes.Options{
			JWT:             jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
			CookieName:      cfg.JWT.CookieName,
			Redis:           redisClient,
			WritesPerMinute: cfg.RateLimit.WritesPerMinute,
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	pkglogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		pkglogger.Error("Server forced to shutdown: %v", err)
	}

	closeResources(db, redisClient)
	pkglogger.Info("Server exited")
}

func databaseOptions(cfg *config.Config) database.Options {
	dsn := cfg.Database.GetDSN()
	if cfg.Database.Driver == "sqlite" {
		dsn = cfg.Database.Path
	}
	return database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             dsn,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		LogSQL:          cfg.Database.LogSQL,
	}
}

// connectRedis returns nil when Redis is disabled or unreachable; the API runs without cache and throttling
func connectRedis(cfg *config.Config) *redis.Client {
	if !cfg.Redis.Enabled {
		pkglogger.Info("Redis disabled")
		return nil
	}
	client, err := pkgredis.NewClient(context.Background(), pkgredis.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without cache)", err)
		return nil
	}
	pkglogger.Info("Connected to Redis")
	return client
}

func closeResources(db *gorm.DB, redisClient *redis.Client) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

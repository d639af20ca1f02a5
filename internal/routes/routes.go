package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lingochat/memories-backend/internal/handler"
	"github.com/lingochat/memories-backend/internal/middleware"
	"github.com/lingochat/memories-backend/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Options wiring for Setup
type Options struct {
	JWT             *jwt.Manager
	CookieName      string
	Redis           *redis.Client // nil disables write throttling
	WritesPerMinute int
}

// Setup configures all API routes
func Setup(router *gin.Engine, memoryHandler *handler.MemoryHandler, healthHandler *handler.HealthHandler, opts Options) {
	// Health / scrape
	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Memories (모든 엔드포인트 인증 필요)
	memories := router.Group("/api/memories",
		middleware.JWTAuth(opts.JWT, opts.CookieName),
		middleware.WriteRateLimit(opts.Redis, middleware.DefaultWriteRateLimitConfig(opts.WritesPerMinute)),
	)
	{
		memories.GET("", memoryHandler.ListFeed)
		memories.POST("", memoryHandler.CreateMemory)
		memories.GET("/user/:userId", memoryHandler.ListByAuthor)

		memories.PUT("/:id/like", memoryHandler.ToggleLike)
		memories.POST("/:id/comment", memoryHandler.AddComment)
		memories.DELETE("/:id", memoryHandler.DeleteMemory)
	}
}

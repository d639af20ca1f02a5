package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lingochat/memories-backend/pkg/cache"
	"gorm.io/gorm"
)

// HealthHandler reports liveness of the store and the cache
type HealthHandler struct {
	db    *gorm.DB
	cache cache.Service
}

// NewHealthHandler creates a new HealthHandler; cache may be nil
func NewHealthHandler(db *gorm.DB, c cache.Service) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Time    int64             `json:"time"`
	Checks  map[string]string `json:"checks"`
}

// Check godoc
// @Summary      헬스 체크
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:  "ok",
		Service: "memories-backend",
		Time:    time.Now().Unix(),
		Checks:  map[string]string{},
	}

	resp.Checks["database"] = "ok"
	if err := h.pingDB(ctx); err != nil {
		resp.Status = "degraded"
		resp.Checks["database"] = err.Error()
	}

	// 캐시는 선택 사항이라 실패해도 degraded 처리하지 않음
	switch {
	case h.cache == nil || !h.cache.IsAvailable():
		resp.Checks["cache"] = "disabled"
	case h.cache.Ping(ctx) != nil:
		resp.Checks["cache"] = "unreachable"
	default:
		resp.Checks["cache"] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

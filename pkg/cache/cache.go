package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLUser display fields (이름, 프로필 사진)
const TTLUser = 10 * time.Minute

// PrefixUser 캐시 키 접두사
const PrefixUser = "memories:user:"

// ErrMiss is returned when a key is absent or Redis is not configured
var ErrMiss = errors.New("cache miss")

// Service Redis 캐시 서비스 인터페이스.
// Friend sets are never cached; feed scoping reads the live graph.
type Service interface {
	// 사용자 표시 정보 캐시
	GetUser(ctx context.Context, userID string, dest interface{}) error
	SetUser(ctx context.Context, userID string, data interface{}) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client  *redis.Client
	userTTL time.Duration
}

// NewService creates a cache service. A nil client yields a cache that
// always misses and silently drops writes.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client, userTTL: TTLUser}
}

// WithUserTTL overrides the display-field TTL
func WithUserTTL(s Service, ttl time.Duration) Service {
	rc, ok := s.(*redisCache)
	if !ok || ttl <= 0 {
		return s
	}
	rc.userTTL = ttl
	return rc
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping Redis 연결 테스트
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// get 캐시에서 값 조회
func (c *redisCache) get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// set 캐시에 값 저장
func (c *redisCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // Redis 없으면 무시
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// ========================================
// 사용자 표시 정보
// ========================================

func (c *redisCache) GetUser(ctx context.Context, userID string, dest interface{}) error {
	return c.get(ctx, PrefixUser+userID, dest)
}

func (c *redisCache) SetUser(ctx context.Context, userID string, data interface{}) error {
	return c.set(ctx, PrefixUser+userID, data, c.userTTL)
}

package cachestore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"q-menu-ai-api/internal/config"
)

// RedisStore 将向量缓存整块存放在单个 Redis 键下
// 单次 SET 整体替换，读方要么拿到旧缓存要么拿到新缓存
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore 创建 Redis 缓存存储并验证连接
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = "q_menu:vector_cache"
	}
	return &RedisStore{rdb: rdb, key: key}, nil
}

// Read 读取整块缓存内容
func (s *RedisStore) Read(ctx context.Context) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("vector cache key %s not found", s.key)
		}
		return nil, fmt.Errorf("failed to read vector cache from redis: %w", err)
	}
	return data, nil
}

// Write 整体替换缓存内容，缓存不设过期
func (s *RedisStore) Write(ctx context.Context, data []byte) error {
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write vector cache to redis: %w", err)
	}
	return nil
}

// Ping 检查 Redis 连接
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

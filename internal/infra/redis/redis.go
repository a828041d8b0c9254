package redis

import (
	"context"
	"fmt"
	"time"

	"vida-fed/internal/config"
	"vida-fed/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

// NewClient 按配置构造客户端，不做连接检查
func NewClient(cfg *config.RedisConfig) *redis.Client {
	dial := time.Duration(cfg.DialTimeout) * time.Second
	if dial <= 0 {
		dial = 5 * time.Second
	}
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dial,
	})
}

// Init 连接 Redis；失败时不保留客户端，调用方按无缓存运行
func Init(cfg *config.RedisConfig) error {
	client := NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), client.Options().DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	Client = client

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)
	return nil
}

// Ping 供健康检查使用
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("redis not initialized")
	}
	return Client.Ping(ctx).Err()
}

func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

func Get() *redis.Client {
	return Client
}

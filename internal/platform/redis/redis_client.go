package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"legalai_backend/internal/platform/config"
)

// NewRedisClient は要約キャッシュ用のRedisクライアントを生成し、接続を確認します。
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr)
	return rdb, nil
}

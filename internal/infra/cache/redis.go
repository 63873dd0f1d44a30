package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheはTTL付きキー・バリューの薄いラッパー。
// usecase側はusecase.Cacheインターフェース越しにこれを使う。
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCacheはREDIS_URL形式（redis://...）の接続先からクライアントを作る。
// 起動時にPingして接続を確認する。
func NewRedisCache(url string) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{rdb: rdb}, nil
}

// Getはキーの値を返す。なければnil（エラーにしない）。
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SetはTTL付きで値を保存する。
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Delはキーを無効化する。存在しなくてもエラーにしない。
func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

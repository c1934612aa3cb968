package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"kdrama-rec-api/pkg/logger"
	"kdrama-rec-api/pkg/metrics"
)

var cacheTracer = otel.Tracer("redis.cache")

// ResultCache 推荐结果的 Read-Through 缓存
type ResultCache struct {
	client *Client
	group  singleflight.Group
}

// NewResultCache 创建结果缓存
func NewResultCache(client *Client) *ResultCache {
	return &ResultCache{client: client}
}

// GetOrLoadSafe 读取缓存，未命中时调用 loader 并写回
// 同一个键的并发未命中只会触发一次 loader；写回失败不影响返回
func (c *ResultCache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	key = c.client.Key(key)
	ctx, span := cacheTracer.Start(ctx, "cache.GetOrLoadSafe",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, err := c.client.rdb.Get(ctx, key).Bytes()
	if err == nil {
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		return nil, err
	}

	metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	span.SetAttributes(attribute.Bool("cache.hit", false))

	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		// 其他请求可能已经写回
		if val, err := c.client.rdb.Get(ctx, key).Bytes(); err == nil {
			return val, nil
		}

		data, err := loader()
		if err != nil {
			return nil, err
		}
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}

		if err := c.client.rdb.Set(ctx, key, bytes, ttl).Err(); err != nil {
			logger.Warn(ctx, "result cache write failed", "key", key, "error", err.Error())
		}
		return bytes, nil
	})
	span.SetAttributes(attribute.Bool("cache.shared", shared))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return result.([]byte), nil
}

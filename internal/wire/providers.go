package wire

import (
	"context"

	"kdrama-rec-api/internal/application/recommend"
	"kdrama-rec-api/internal/config"
	"kdrama-rec-api/internal/domain/repository"
	"kdrama-rec-api/internal/infrastructure/catalog"
	"kdrama-rec-api/internal/infrastructure/persistence/postgres"
	"kdrama-rec-api/internal/infrastructure/persistence/redis"
	"kdrama-rec-api/internal/interfaces/http/handler"
	"kdrama-rec-api/internal/interfaces/http/middleware"
	"kdrama-rec-api/pkg/logger"
)

// ProvidePostgresClientOptional 仅在目录来源为 postgres 时连接数据库
func ProvidePostgresClientOptional(cfg *config.Config) (*postgres.Client, func(), error) {
	if cfg.Catalog.Source != config.CatalogSourcePostgres {
		return nil, func() {}, nil
	}
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideCatalogSource 按配置选择目录来源
func ProvideCatalogSource(cfg *config.Config, pg *postgres.Client) repository.CatalogSource {
	if cfg.Catalog.Source == config.CatalogSourcePostgres && pg != nil {
		return postgres.NewCatalogRepository(pg, cfg.Catalog.Table, cfg.Catalog.OrderColumn)
	}
	return catalog.NewCSVSource(cfg.Catalog.Path)
}

// ProvideIndexHolder 加载目录并构建首个索引，目录为空时启动失败
func ProvideIndexHolder(ctx context.Context, source repository.CatalogSource) (*recommend.Holder, error) {
	return recommend.NewHolder(ctx, source)
}

// ProvideRedisClientOptional 提供 Redis 客户端
// 未启用或连接失败时返回 nil，服务在无缓存、无限流的情况下运行
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis unavailable, result cache and rate limiting disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideResultCache 提供结果缓存，Redis 不可用时为 nil
func ProvideResultCache(client *redis.Client) recommend.ResultCache {
	if client == nil {
		return nil
	}
	return redis.NewResultCache(client)
}

// ProvideRateLimiter 提供限流器，Redis 不可用时为 nil
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideRecommendOptions 推荐参数
func ProvideRecommendOptions(cfg *config.Config) recommend.Options {
	return recommend.Options{
		DefaultLimit: cfg.Recommend.DefaultLimit,
		SuggestLimit: cfg.Recommend.TitleSuggestions,
		CacheTTL:     cfg.Recommend.CacheTTL,
	}
}

// ProvideHealthHandler 只注册已启用的外部依赖
func ProvideHealthHandler(cfg *config.Config, svc *recommend.Service, pg *postgres.Client, redisClient *redis.Client) *handler.HealthHandler {
	var deps []handler.Dependency
	if pg != nil {
		deps = append(deps, handler.Dependency{Name: "postgres", Checker: pg})
	}
	if redisClient != nil {
		deps = append(deps, handler.Dependency{Name: "redis", Checker: redisClient})
	}
	return handler.NewHealthHandler(svc, cfg.App.Version, deps...)
}

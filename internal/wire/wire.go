//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"kdrama-rec-api/internal/application/recommend"
	"kdrama-rec-api/internal/config"
	"kdrama-rec-api/internal/interfaces/http/handler"
	"kdrama-rec-api/internal/interfaces/http/router"
)

// CatalogSet 目录来源与索引
var CatalogSet = wire.NewSet(
	ProvidePostgresClientOptional,
	ProvideCatalogSource,
	ProvideIndexHolder,
	wire.Bind(new(recommend.IndexProvider), new(*recommend.Holder)),
)

// RedisSet Redis 缓存与限流
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideResultCache,
	ProvideRateLimiter,
)

// RecommendSet 推荐服务
var RecommendSet = wire.NewSet(
	ProvideRecommendOptions,
	recommend.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewRecommendHandler,
	ProvideHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 初始化整个应用
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		CatalogSet,
		RedisSet,
		RecommendSet,
		RouterSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

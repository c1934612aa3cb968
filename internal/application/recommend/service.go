// Package recommend 基于 TF-IDF 余弦相似度的内容推荐
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"kdrama-rec-api/pkg/logger"
	"kdrama-rec-api/pkg/metrics"
	"kdrama-rec-api/pkg/tracer"
)

// Service 推荐服务
type Service struct {
	indexes IndexProvider
	cache   ResultCache
	opts    Options
}

// NewService 创建推荐服务，cache 可为 nil
func NewService(indexes IndexProvider, cache ResultCache, opts Options) *Service {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = DefaultSuggestLimit
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Service{indexes: indexes, cache: cache, opts: opts}
}

// Recommend 返回与查询标题最相似的条目
func (s *Service) Recommend(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "recommend.Recommend")
	defer span.End()

	res, err := s.recommend(ctx, req)
	status := outcome(err)
	metrics.RecommendTotal.WithLabelValues(status).Inc()
	if err != nil {
		span.SetStatus(codes.Error, status)
		return nil, err
	}
	metrics.RecommendResultSize.Observe(float64(len(res.Recommendations)))
	span.SetAttributes(attribute.Int("recommend.results", len(res.Recommendations)))
	return res, nil
}

func (s *Service) recommend(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyQuery
	}
	limit := s.opts.DefaultLimit
	if req.Limit != nil {
		if *req.Limit < 0 {
			return nil, ErrInvalidLimit
		}
		limit = *req.Limit
	}

	idx := s.indexes.Current()
	if idx == nil {
		return nil, ErrEmptyCatalog
	}
	query, ok := idx.Lookup(req.Title)
	if !ok {
		return nil, ErrTitleNotFound
	}

	opts := RankOptions{
		Limit:        limit,
		Filter:       ParsePlatformFilter(req.Platform),
		OnlyPlatform: req.OnlyPlatform,
	}
	logger.Debug(ctx, "recommend request",
		"title", req.Title,
		"item_id", query,
		"limit", limit,
		"platform_terms", opts.Filter.String(),
		"only_platform", opts.OnlyPlatform,
	)

	compute := func() *Result {
		start := time.Now()
		scores := idx.Scores(query)
		selected := rank(query, scores, idx.platformKeys, opts)
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
		return assemble(idx.Item(query), idx.items, selected, scores)
	}

	if s.cache == nil {
		return compute(), nil
	}

	key := cacheKey(idx.Fingerprint(), query, opts)
	raw, err := s.cache.GetOrLoadSafe(ctx, key, s.opts.CacheTTL, func() (interface{}, error) {
		return compute(), nil
	})
	if err != nil {
		logger.Warn(ctx, "result cache unavailable, computing directly", "key", key, "error", err.Error())
		return compute(), nil
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		logger.Warn(ctx, "discarding undecodable cached result", "key", key, "error", err.Error())
		return compute(), nil
	}
	return &res, nil
}

// SuggestTitles 标题联想
func (s *Service) SuggestTitles(ctx context.Context, q string, limit int) []string {
	idx := s.indexes.Current()
	if idx == nil {
		return []string{}
	}
	if limit <= 0 {
		limit = s.opts.SuggestLimit
	}
	return idx.SuggestTitles(q, limit)
}

// Catalog 当前目录概况，未加载时返回 false
func (s *Service) Catalog() (CatalogStats, bool) {
	idx := s.indexes.Current()
	if idx == nil {
		return CatalogStats{}, false
	}
	return CatalogStats{
		Items:       idx.Len(),
		Vocabulary:  idx.Vocabulary().Size(),
		Fingerprint: idx.Fingerprint(),
		BuiltAt:     idx.BuiltAt(),
	}, true
}

// cacheKey 指纹区分目录版本；无过滤词时 only_platform 不影响结果
func cacheKey(fingerprint string, query int, opts RankOptions) string {
	only := opts.Filter.Active() && opts.OnlyPlatform
	return fmt.Sprintf("rec:%s:%d:%d:%s:%t", fingerprint, query, opts.Limit, opts.Filter.String(), only)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyQuery):
		return "empty_query"
	case errors.Is(err, ErrInvalidLimit):
		return "invalid_limit"
	case errors.Is(err, ErrTitleNotFound):
		return "title_not_found"
	case errors.Is(err, ErrEmptyCatalog):
		return "empty_catalog"
	default:
		return "error"
	}
}

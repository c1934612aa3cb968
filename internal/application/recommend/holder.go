package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"kdrama-rec-api/internal/domain/repository"
	"kdrama-rec-api/pkg/logger"
	"kdrama-rec-api/pkg/metrics"
)

// IndexProvider 提供当前生效的索引
type IndexProvider interface {
	Current() *Index
}

// Holder 持有当前索引，重载时整体替换
// 请求在开始时取得快照，重载不会影响进行中的请求
type Holder struct {
	source  repository.CatalogSource
	current atomic.Pointer[Index]
	mu      sync.Mutex // 串行化重载
}

// NewHolder 从来源加载目录并构建首个索引
func NewHolder(ctx context.Context, source repository.CatalogSource) (*Holder, error) {
	h := &Holder{source: source}
	idx, err := h.build(ctx)
	if err != nil {
		return nil, err
	}
	h.swap(idx)

	logger.Info(ctx, "catalog index ready",
		"source", source.Name(),
		"items", idx.Len(),
		"vocabulary", idx.Vocabulary().Size(),
		"fingerprint", idx.Fingerprint(),
	)
	return h, nil
}

// NewStaticHolder 直接持有已构建的索引，不支持重载
func NewStaticHolder(idx *Index) *Holder {
	h := &Holder{}
	h.swap(idx)
	return h
}

// Current 当前索引
func (h *Holder) Current() *Index {
	return h.current.Load()
}

// Reload 重新加载目录并替换索引，失败时保留原索引
func (h *Holder) Reload(ctx context.Context) error {
	if h.source == nil {
		return fmt.Errorf("reload: no catalog source configured")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	idx, err := h.build(ctx)
	if err != nil {
		metrics.CatalogReloadTotal.WithLabelValues("error").Inc()
		logger.Error(ctx, "catalog reload failed, keeping previous index", err, "source", h.source.Name())
		return err
	}

	prev := h.Current()
	h.swap(idx)
	metrics.CatalogReloadTotal.WithLabelValues("ok").Inc()

	args := []any{"items", idx.Len(), "vocabulary", idx.Vocabulary().Size(), "fingerprint", idx.Fingerprint()}
	if prev != nil {
		args = append(args, "changed", prev.Fingerprint() != idx.Fingerprint())
	}
	logger.Info(ctx, "catalog reloaded", args...)
	return nil
}

func (h *Holder) build(ctx context.Context) (*Index, error) {
	start := time.Now()
	items, err := h.source.LoadItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", h.source.Name(), err)
	}
	idx, err := BuildIndex(items)
	if err != nil {
		return nil, err
	}
	metrics.CatalogBuildDuration.Observe(time.Since(start).Seconds())
	return idx, nil
}

func (h *Holder) swap(idx *Index) {
	h.current.Store(idx)
	metrics.CatalogItems.Set(float64(idx.Len()))
	metrics.CatalogVocabularySize.Set(float64(idx.Vocabulary().Size()))
}

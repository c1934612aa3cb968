package recommend

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// DefaultLimit 未指定 limit 时返回的推荐数量
const DefaultLimit = 6

// DefaultSuggestLimit 标题联想默认返回数量
const DefaultSuggestLimit = 5

// Request 推荐请求
type Request struct {
	Title string
	// Limit 为 nil 时使用默认值
	Limit        *int
	Platform     string
	OnlyPlatform bool
}

// ParseRequest 解析原始查询参数
// 空标题优先于 limit 错误返回
func ParseRequest(title, limit, platform, onlyPlatform string) (Request, error) {
	if strings.TrimSpace(title) == "" {
		return Request{}, ErrEmptyQuery
	}
	n, err := ParseLimit(limit)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Title:        title,
		Limit:        n,
		Platform:     platform,
		OnlyPlatform: ParseOnlyPlatform(onlyPlatform),
	}, nil
}

// ParseLimit 解析 limit，空字符串返回 nil
func ParseLimit(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, ErrInvalidLimit
	}
	return &n, nil
}

// ParseOnlyPlatform 解析布尔开关，无法识别的值视为 false
func ParseOnlyPlatform(raw string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && b
}

// ResultCache 推荐结果缓存
// loader 的返回值会被序列化为 JSON 缓存
type ResultCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
}

// CatalogStats 当前目录概况
type CatalogStats struct {
	Items       int       `json:"items"`
	Vocabulary  int       `json:"vocabulary"`
	Fingerprint string    `json:"fingerprint"`
	BuiltAt     time.Time `json:"built_at"`
}

// Options 服务参数
type Options struct {
	DefaultLimit int
	SuggestLimit int
	CacheTTL     time.Duration
}

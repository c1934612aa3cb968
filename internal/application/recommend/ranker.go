package recommend

import (
	"sort"
	"strings"
)

// PlatformFilter 平台过滤词，均已小写；为空表示不过滤
type PlatformFilter []string

// ParsePlatformFilter 按逗号拆分平台参数，去除空白并转小写，丢弃空项
func ParsePlatformFilter(raw string) PlatformFilter {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var terms PlatformFilter
	for _, part := range strings.Split(raw, ",") {
		if t := strings.ToLower(strings.TrimSpace(part)); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Active 是否存在有效过滤词
func (f PlatformFilter) Active() bool { return len(f) > 0 }

// Matches 任一过滤词是小写平台字符串的子串即命中
func (f PlatformFilter) Matches(platformKey string) bool {
	for _, t := range f {
		if strings.Contains(platformKey, t) {
			return true
		}
	}
	return false
}

// String 规范化表示，用作缓存键的一部分
func (f PlatformFilter) String() string { return strings.Join(f, ",") }

// RankOptions 排序参数
type RankOptions struct {
	Limit        int
	Filter       PlatformFilter
	OnlyPlatform bool
}

// rank 返回推荐条目下标
// 候选为除查询条目外的全部条目，按相似度降序、下标升序排列；
// 有过滤词时，only_platform 只保留命中项，否则命中项整体提前
func rank(query int, scores []float64, platformKeys []string, opts RankOptions) []int {
	if opts.Limit <= 0 {
		return []int{}
	}

	candidates := make([]int, 0, len(scores))
	for i := range scores {
		if i != query {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		sa, sb := scores[candidates[a]], scores[candidates[b]]
		if sa != sb {
			return sa > sb
		}
		return candidates[a] < candidates[b]
	})

	ordered := candidates
	if opts.Filter.Active() {
		matched := make([]int, 0, len(candidates))
		var rest []int
		for _, i := range candidates {
			if opts.Filter.Matches(platformKeys[i]) {
				matched = append(matched, i)
			} else if !opts.OnlyPlatform {
				rest = append(rest, i)
			}
		}
		ordered = append(matched, rest...)
	}

	if len(ordered) > opts.Limit {
		ordered = ordered[:opts.Limit]
	}
	return ordered
}
